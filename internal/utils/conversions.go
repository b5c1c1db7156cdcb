package utils

import (
	"github.com/vmihailenco/msgpack/v5"
)

// Command is a list command as typed by a user.
type Command struct {
	Command string
	Value   string
	// HasValue distinguishes an empty value from no value.
	HasValue bool
}

// ConvertCommandToRequest converts a Command to a request map
func ConvertCommandToRequest(cmd Command) map[string]interface{} {
	request := map[string]interface{}{
		"command": cmd.Command,
	}
	if cmd.HasValue {
		request["value"] = cmd.Value
	}
	return request
}

// EncodeRequest serializes a request map into a byte slice
func EncodeRequest(request map[string]interface{}) ([]byte, error) {
	return msgpack.Marshal(request)
}

// DecodeRequest deserializes a byte slice into a request map
func DecodeRequest(data []byte) (map[string]interface{}, error) {
	var request map[string]interface{}
	err := msgpack.Unmarshal(data, &request)
	return request, err
}

// EncodeResponse serializes a response map into a byte slice
func EncodeResponse(response map[string]interface{}) ([]byte, error) {
	return msgpack.Marshal(response)
}

// DecodeResponse deserializes a byte slice into a response map
func DecodeResponse(data []byte) (map[string]interface{}, error) {
	var response map[string]interface{}
	err := msgpack.Unmarshal(data, &response)
	return response, err
}
