package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Sayan30092004/load-main/internal/cli"
	"github.com/Sayan30092004/load-main/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestPrintError(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{
			name: "user error",
			err:  common.NewUserError("Chart export failed", common.ErrExportFailed),
			want: "Chart export failed: chart export failed",
		},
		{
			name: "plain error",
			err:  errors.New("disk full"),
			want: "Error: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, tt.err)
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), cli.ErrorIcon)
		})
	}
}
