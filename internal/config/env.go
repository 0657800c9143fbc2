package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseBool accepts the usual spellings of on/off switches.  Anything else
// is rejected so a typo in DEBUG cannot silently fall back to a default.
func parseBool(v string) (interface{}, error) {
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "Yes", "on", "ON", "On":
		return true, nil
	case "0", "false", "FALSE", "False", "no", "NO", "No", "off", "OFF", "Off":
		return false, nil
	}
	return nil, fmt.Errorf("invalid boolean %q", v)
}

// describe rewrites decoder errors so they name the environment variable
// instead of the Go field.
func describe(err error) error {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return err
	}
	settingsType := reflect.TypeOf(Settings{})
	msgs := make([]string, 0, len(agg.Errors))
	for _, e := range agg.Errors {
		var pe env.ParseError
		if errors.As(e, &pe) {
			if f, ok := settingsType.FieldByName(pe.Name); ok {
				key, _, _ := strings.Cut(f.Tag.Get("env"), ",")
				msgs = append(msgs, fmt.Sprintf("%s: %v", key, pe.Err))
				continue
			}
		}
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("%s: %w", strings.Join(msgs, "; "), err)
}

var originsType = reflect.TypeOf(Origins(nil))

// applyEmptyValues undoes the decoder's habit of substituting the default
// for variables that are present but empty.  String fields become "",
// Origins gets the parse of "", other kinds are rejected.
func applyEmptyValues(s *Settings, merged map[string]string) error {
	v := reflect.ValueOf(s).Elem()
	t := v.Type()
	var msgs []string
	for i := 0; i < t.NumField(); i++ {
		key, _, _ := strings.Cut(t.Field(i).Tag.Get("env"), ",")
		if key == "" {
			continue
		}
		if raw, ok := merged[key]; !ok || raw != "" {
			continue
		}
		field := v.Field(i)
		switch {
		case field.Type() == originsType:
			field.Set(reflect.ValueOf(ParseOrigins("")))
		case field.Kind() == reflect.String:
			field.SetString("")
		default:
			msgs = append(msgs, fmt.Sprintf("%s: empty value is not a valid %s", key, field.Kind()))
		}
	}
	if len(msgs) > 0 {
		return errors.New(strings.Join(msgs, "; "))
	}
	return nil
}
