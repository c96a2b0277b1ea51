// Package config lets command line flags be read from a YAML file.
//
// Keys are flag names in either the dashed or the underscored form,
// for example both "redis-url" and "redis_url" set --redis-url.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

var ErrNotScalar = errors.New("config: value must be a scalar or a list of scalars")

// YAML is a kong.ConfigurationLoader for flat YAML documents.
func YAML(r io.Reader) (kong.Resolver, error) {
	values := make(map[string]any)
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: unable to parse yaml: %w", err)
	}

	var resolver kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		raw, ok := lookup(values, flag.Name)
		if !ok || raw == nil {
			return nil, nil
		}
		value, err := stringify(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", flag.Name, err)
		}
		return value, nil
	}
	return resolver, nil
}

func lookup(values map[string]any, name string) (any, bool) {
	if v, ok := values[name]; ok {
		return v, true
	}
	v, ok := values[strings.ReplaceAll(name, "-", "_")]
	return v, ok
}

// stringify hands values to kong in their textual form,
// so that every flag type is decoded the same way as from the command line.
func stringify(raw any) (string, error) {
	switch v := raw.(type) {
	case map[string]any:
		return "", ErrNotScalar
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			switch item.(type) {
			case map[string]any, []any:
				return "", ErrNotScalar
			}
			items = append(items, fmt.Sprint(item))
		}
		return strings.Join(items, ","), nil
	default:
		return fmt.Sprint(v), nil
	}
}
