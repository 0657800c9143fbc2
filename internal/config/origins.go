package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Origins is the list of allowed cross-origin request sources.  As an env
// value it is either a JSON array or a comma-separated string.
type Origins []string

// UnmarshalText implements encoding.TextUnmarshaler.  It never fails:
// malformed JSON degrades to a comma split.
func (o *Origins) UnmarshalText(text []byte) error {
	*o = ParseOrigins(string(text))
	return nil
}

// ParseOrigins parses the BACKEND_CORS_ORIGINS value.  Input starting with
// "[" is decoded as a JSON array whose items are stringified; if it is not
// valid JSON the whole input is split on commas instead.  Valid JSON that
// is not an array gives an empty list.
func ParseOrigins(raw string) Origins {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") {
		parsed, err := decodeJSON(raw)
		if err != nil {
			return splitOrigins(raw)
		}
		items, ok := parsed.([]interface{})
		if !ok {
			return Origins{}
		}
		origins := make(Origins, 0, len(items))
		for _, item := range items {
			origins = append(origins, stringify(item))
		}
		return origins
	}
	return splitOrigins(raw)
}

// ExtendOrigins appends the comma-separated entries of additional to a copy
// of origins.  Entries already present are skipped.  A bare host gets both
// its https:// and http:// form; an entry that already starts with "http"
// is appended as is.
func ExtendOrigins(origins []string, additional string) Origins {
	out := make(Origins, len(origins), len(origins)+4)
	copy(out, origins)
	if additional == "" {
		return out
	}
	for _, origin := range strings.Split(additional, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" || out.Contains(origin) {
			continue
		}
		if strings.HasPrefix(origin, "http") {
			out = append(out, origin)
			continue
		}
		out = append(out, "https://"+origin, "http://"+origin)
	}
	return out
}

// Contains reports whether origin is in the list.
func (o Origins) Contains(origin string) bool {
	for _, v := range o {
		if v == origin {
			return true
		}
	}
	return false
}

func splitOrigins(raw string) Origins {
	parts := strings.Split(raw, ",")
	origins := make(Origins, 0, len(parts))
	for _, p := range parts {
		origins = append(origins, strings.TrimSpace(p))
	}
	return origins
}

// decodeJSON decodes exactly one JSON document, keeping numbers as
// json.Number so their literal text survives.
func decodeJSON(raw string) (interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}
	return v, nil
}

// stringify renders one JSON array item as an origin string.  Strings are
// verbatim, numbers keep their literal text (1.0 stays "1.0"), booleans and
// null are spelled True, False and None, nested values are re-encoded.
func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "True"
		}
		return "False"
	case nil:
		return "None"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
