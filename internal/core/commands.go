package core

import (
	"fmt"
	"strings"

	"github.com/vskvj3/idxlist/internal/datastructures"
	"github.com/vskvj3/idxlist/internal/utils"
)

type CommandHandler struct {
	List *datastructures.IndexedList
}

// Create a new CommandHandler instance
func NewCommandHandler(list *datastructures.IndexedList) *CommandHandler {
	return &CommandHandler{List: list}
}

// HandleCommand runs one decoded request against the list and returns the
// response fields.
func (h *CommandHandler) HandleCommand(request map[string]interface{}) (map[string]interface{}, error) {
	command, err := stringField(request, "command")
	if err != nil {
		return nil, err
	}

	switch strings.ToUpper(command) {
	case "PING":
		return map[string]interface{}{"status": "OK", "message": "PONG"}, nil

	case "APPEND":
		value, err := stringField(request, "value")
		if err != nil {
			return nil, fmt.Errorf("APPEND: %w", err)
		}
		if err := h.List.Append(value); err != nil {
			return nil, err
		}
		return map[string]interface{}{"status": "OK"}, nil

	case "REMOVE":
		value, err := stringField(request, "value")
		if err != nil {
			return nil, fmt.Errorf("REMOVE: %w", err)
		}
		if err := h.List.Remove(value); err != nil {
			return nil, err
		}
		return map[string]interface{}{"status": "OK"}, nil

	case "CONTAINS":
		value, err := stringField(request, "value")
		if err != nil {
			return nil, fmt.Errorf("CONTAINS: %w", err)
		}
		return map[string]interface{}{"status": "OK", "found": h.List.Contains(value)}, nil

	case "LEN":
		return map[string]interface{}{"status": "OK", "length": h.List.Len()}, nil

	case "FORWARD":
		return map[string]interface{}{"status": "OK", "values": h.List.Values()}, nil

	case "BACKWARD":
		return map[string]interface{}{"status": "OK", "values": h.List.ReverseValues()}, nil

	case "CLEAR":
		h.List.Clear()
		return map[string]interface{}{"status": "OK"}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// HandleRaw decodes a msgpack request, runs it and returns the msgpack
// encoded response. Failures are reported inside the response.
func (h *CommandHandler) HandleRaw(data []byte) ([]byte, error) {
	logger := utils.GetLogger()

	request, err := utils.DecodeRequest(data)
	if err != nil {
		logger.Debug("Failed to decode request: " + err.Error())
		return utils.EncodeResponse(errorResponse(fmt.Errorf("%w: %v", ErrMalformed, err)))
	}

	response, err := h.HandleCommand(request)
	if err != nil {
		logger.Debug("Command failed: " + err.Error())
		response = errorResponse(err)
	}
	return utils.EncodeResponse(response)
}

func errorResponse(err error) map[string]interface{} {
	return map[string]interface{}{"status": "ERROR", "code": ErrorCode(err), "message": err.Error()}
}

func stringField(request map[string]interface{}, field string) (string, error) {
	raw, ok := request[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingField, field)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string, got %T", ErrInvalidType, field, raw)
	}
	return s, nil
}
