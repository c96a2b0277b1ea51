package keyspace

import (
	"github.com/gosimple/slug"
)

const (
	rootPrefix  = "servermon"
	defaultName = "default"
)

// Keyspace namespaces redis keys by the monitor name,
// so several monitors can share the same redis.
type Keyspace struct {
	prefix string
}

func New(monitorName string) Keyspace {
	name := slug.Make(monitorName)
	if name == "" {
		name = defaultName
	}
	return Keyspace{
		prefix: rootPrefix + ":" + name,
	}
}

func (ks Keyspace) Key(suffix string) string {
	return ks.prefix + ":" + suffix
}
