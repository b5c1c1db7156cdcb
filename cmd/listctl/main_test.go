package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vskvj3/idxlist/internal/utils"
)

func TestArgParser(t *testing.T) {
	tests := []struct {
		input   string
		want    utils.Command
		wantErr bool
	}{
		{input: "ping", want: utils.Command{Command: "PING"}},
		{input: "FORWARD", want: utils.Command{Command: "FORWARD"}},
		{input: "append Data 1", want: utils.Command{Command: "APPEND", Value: "Data 1", HasValue: true}},
		{input: "  REMOVE   two  words ", want: utils.Command{Command: "REMOVE", Value: "two  words", HasValue: true}},
		{input: "contains x", want: utils.Command{Command: "CONTAINS", Value: "x", HasValue: true}},
		{input: "APPEND", wantErr: true},
		{input: "LEN extra", wantErr: true},
		{input: "LPOP list", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := argParser(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
