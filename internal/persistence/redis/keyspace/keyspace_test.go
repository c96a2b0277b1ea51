package keyspace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sergeii/servermon/internal/persistence/redis/keyspace"
)

func TestKeyspace_Key(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Laragon Server", "servermon:laragon-server:status"},
		{"  API (prod) ", "servermon:api-prod:status"},
		{"", "servermon:default:status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyspace.New(tt.name).Key("status"))
		})
	}
}
