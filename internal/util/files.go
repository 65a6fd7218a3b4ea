package util

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
)

func ReadJSONFile[T any](path string) (T, error) {
	var out T
	blob, err := os.ReadFile(path)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(blob, &out); err != nil {
		return out, err
	}
	return out, nil
}

// WriteJSONFile writes v with two-space indentation, leaving non-ASCII and
// HTML characters unescaped.
func WriteJSONFile(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// MarshalUnescaped is json.Marshal without HTML escaping, so "&" and "<"
// survive as written.
func MarshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
