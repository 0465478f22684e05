// Package config loads module parameters from YAML params files and merges
// them with command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile decodes the params file at path into out. Keys that are not
// fields of out are rejected. An empty file leaves out untouched, so out can
// be pre-populated with defaults.
func LoadFile(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read params file: %w", err)
	}
	defer f.Close()

	return decode(f, out)
}

// loadBytes decodes in-memory params data the way LoadFile does.
func loadBytes(data []byte, out interface{}) error {
	return decode(bytes.NewReader(data), out)
}

func decode(r io.Reader, out interface{}) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse params: %w", err)
	}
	return nil
}

// Overlay copies into dst every field of src whose yaml key isSet reports
// true. dst and src must be pointers to the same struct type. It is used to
// let command-line flags win over params file values.
func Overlay(dst, src interface{}, isSet func(key string) bool) {
	dv := reflect.ValueOf(dst).Elem()
	sv := reflect.ValueOf(src).Elem()
	t := dv.Type()

	for i := 0; i < t.NumField(); i++ {
		key := yamlKey(t.Field(i))
		if key == "" || !isSet(key) {
			continue
		}
		dv.Field(i).Set(sv.Field(i))
	}
}

func yamlKey(f reflect.StructField) string {
	tag := f.Tag.Get("yaml")
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// FlagName maps a yaml key to its command-line flag name.
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// mergeAlias folds an alias value into its canonical field. Setting both to
// different values is an error.
func mergeAlias(canonical *string, alias *string, canonicalKey, aliasKey string) error {
	if *alias == "" {
		return nil
	}
	if *canonical != "" && *canonical != *alias {
		return fmt.Errorf("parameters are mutually exclusive: %s|%s", canonicalKey, aliasKey)
	}
	*canonical = *alias
	*alias = ""
	return nil
}
