package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vskvj3/idxlist/internal/datastructures"
)

type response struct {
	Status  string   `msgpack:"status"`
	Code    string   `msgpack:"code"`
	Message string   `msgpack:"message"`
	Values  []string `msgpack:"values"`
	Length  int      `msgpack:"length"`
	Found   bool     `msgpack:"found"`
}

// sendRaw serializes a command, passes it through HandleRaw and decodes the reply.
func sendRaw(t *testing.T, h *CommandHandler, request map[string]interface{}) response {
	t.Helper()
	data, err := msgpack.Marshal(request)
	require.NoError(t, err, "failed to serialize command")

	out, err := h.HandleRaw(data)
	require.NoError(t, err)

	var resp response
	require.NoError(t, msgpack.Unmarshal(out, &resp), "failed to deserialize response")
	return resp
}

func TestHandleCommand(t *testing.T) {
	h := NewCommandHandler(datastructures.New())

	t.Run("PING", func(t *testing.T) {
		resp, err := h.HandleCommand(map[string]interface{}{"command": "PING"})
		require.NoError(t, err)
		assert.Equal(t, "PONG", resp["message"])
	})

	t.Run("APPEND and traverse", func(t *testing.T) {
		for _, v := range []string{"Data 1", "Data 2"} {
			_, err := h.HandleCommand(map[string]interface{}{"command": "append", "value": v})
			require.NoError(t, err)
		}

		resp, err := h.HandleCommand(map[string]interface{}{"command": "FORWARD"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Data 1", "Data 2"}, resp["values"])

		resp, err = h.HandleCommand(map[string]interface{}{"command": "BACKWARD"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Data 2", "Data 1"}, resp["values"])
	})

	t.Run("REMOVE", func(t *testing.T) {
		_, err := h.HandleCommand(map[string]interface{}{"command": "REMOVE", "value": "Data 1"})
		require.NoError(t, err)

		resp, err := h.HandleCommand(map[string]interface{}{"command": "LEN"})
		require.NoError(t, err)
		assert.Equal(t, 1, resp["length"])

		resp, err = h.HandleCommand(map[string]interface{}{"command": "CONTAINS", "value": "Data 1"})
		require.NoError(t, err)
		assert.Equal(t, false, resp["found"])
	})

	t.Run("APPEND non-string value", func(t *testing.T) {
		_, err := h.HandleCommand(map[string]interface{}{"command": "APPEND", "value": 123})
		assert.ErrorIs(t, err, ErrInvalidType)
		assert.Equal(t, "TYPE", ErrorCode(err))
	})

	t.Run("REMOVE non-string value", func(t *testing.T) {
		_, err := h.HandleCommand(map[string]interface{}{"command": "REMOVE", "value": 1.5})
		assert.ErrorIs(t, err, ErrInvalidType)
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := h.HandleCommand(map[string]interface{}{"command": "APPEND"})
		assert.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("unknown command", func(t *testing.T) {
		_, err := h.HandleCommand(map[string]interface{}{"command": "LPOP"})
		assert.ErrorIs(t, err, ErrUnknownCommand)
		assert.Equal(t, "BAD_REQUEST", ErrorCode(err))
	})

	t.Run("CLEAR", func(t *testing.T) {
		_, err := h.HandleCommand(map[string]interface{}{"command": "CLEAR"})
		require.NoError(t, err)
		assert.Equal(t, 0, h.List.Len())
	})
}

func TestHandleRaw(t *testing.T) {
	h := NewCommandHandler(datastructures.New(datastructures.WithMaxSize(2)))

	t.Run("APPEND over capacity", func(t *testing.T) {
		assert.Equal(t, "OK", sendRaw(t, h, map[string]interface{}{"command": "APPEND", "value": "A"}).Status)
		assert.Equal(t, "OK", sendRaw(t, h, map[string]interface{}{"command": "APPEND", "value": "B"}).Status)

		resp := sendRaw(t, h, map[string]interface{}{"command": "APPEND", "value": "C"})
		assert.Equal(t, "ERROR", resp.Status)
		assert.Equal(t, "CAPACITY", resp.Code)
	})

	t.Run("FORWARD", func(t *testing.T) {
		resp := sendRaw(t, h, map[string]interface{}{"command": "FORWARD"})
		assert.Equal(t, "OK", resp.Status)
		assert.Equal(t, []string{"A", "B"}, resp.Values)
	})

	t.Run("LEN", func(t *testing.T) {
		assert.Equal(t, 2, sendRaw(t, h, map[string]interface{}{"command": "LEN"}).Length)
	})

	t.Run("APPEND integer over the wire", func(t *testing.T) {
		resp := sendRaw(t, h, map[string]interface{}{"command": "APPEND", "value": 123})
		assert.Equal(t, "ERROR", resp.Status)
		assert.Equal(t, "TYPE", resp.Code)
	})

	t.Run("REMOVE missing value", func(t *testing.T) {
		resp := sendRaw(t, h, map[string]interface{}{"command": "REMOVE", "value": "Z"})
		assert.Equal(t, "NOT_FOUND", resp.Code)
	})

	t.Run("DUPLICATE", func(t *testing.T) {
		require.Equal(t, "OK", sendRaw(t, h, map[string]interface{}{"command": "REMOVE", "value": "B"}).Status)
		resp := sendRaw(t, h, map[string]interface{}{"command": "APPEND", "value": "A"})
		assert.Equal(t, "DUPLICATE", resp.Code)
	})

	t.Run("value too long", func(t *testing.T) {
		resp := sendRaw(t, h, map[string]interface{}{"command": "APPEND", "value": strings.Repeat("x", 1001)})
		assert.Equal(t, "SIZE_LIMIT", resp.Code)
	})

	t.Run("REMOVE on empty list", func(t *testing.T) {
		require.Equal(t, "OK", sendRaw(t, h, map[string]interface{}{"command": "CLEAR"}).Status)
		resp := sendRaw(t, h, map[string]interface{}{"command": "REMOVE", "value": "A"})
		assert.Equal(t, "EMPTY", resp.Code)
	})

	t.Run("FORWARD on empty list", func(t *testing.T) {
		resp := sendRaw(t, h, map[string]interface{}{"command": "FORWARD"})
		assert.Equal(t, "OK", resp.Status)
		assert.Empty(t, resp.Values)
	})

	t.Run("malformed payload", func(t *testing.T) {
		out, err := h.HandleRaw([]byte{0xc1})
		require.NoError(t, err)

		var resp response
		require.NoError(t, msgpack.Unmarshal(out, &resp))
		assert.Equal(t, "ERROR", resp.Status)
		assert.Equal(t, "BAD_REQUEST", resp.Code)
	})
}
