package params

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ParseOverrides splits "key=value" pairs. Nested keys use a dot,
// e.g. "initial.exposed=25".
func ParseOverrides(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid override %q: expected key=value", pair)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// ApplyOverrides decodes flat key/value overrides onto p.
// Values are weakly typed ("0.5" decodes into a float); unknown keys are rejected,
// as is a key given both as a value and as the prefix of a nested key.
func ApplyOverrides(p Parameters, overrides map[string]string) (Parameters, error) {
	if len(overrides) == 0 {
		return p, nil
	}
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	raw := make(map[string]any)
	for _, key := range keys {
		head, tail, nested := strings.Cut(key, ".")
		if !nested {
			raw[key] = overrides[key]
			continue
		}
		prev, seen := raw[head]
		sub, ok := prev.(map[string]any)
		if seen && !ok {
			return Parameters{}, fmt.Errorf("override %q conflicts with %q: a key cannot be both a value and a group", key, head)
		}
		if !ok {
			sub = make(map[string]any)
			raw[head] = sub
		}
		sub[tail] = overrides[key]
	}
	return Decode(p, raw)
}

// Decode applies a generic map (e.g. decoded JSON or frontmatter) onto p.
func Decode(p Parameters, raw map[string]any) (Parameters, error) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Parameters{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Parameters{}, fmt.Errorf("invalid parameter overrides: %w", err)
	}
	return p, nil
}
