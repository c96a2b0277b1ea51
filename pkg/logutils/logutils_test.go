package logutils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sergeii/servermon/pkg/logutils"
)

func TestShortCallerFormatter(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"/go/src/servermon/internal/controller/controller.go", "controller.go:42"},
		{"controller.go", "controller.go:42"},
		{"internal/controller.go", "controller.go:42"},
		{"", ":42"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, logutils.ShortCallerFormatter(0, tt.file, 42))
		})
	}
}
