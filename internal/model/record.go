package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotObject is returned when a record is decoded from JSON that is not an object.
var ErrNotObject = errors.New("record: not a JSON object")

// Record is a schema-less form submission: an ordered mapping of field names
// to raw JSON values. Fields keep the position in which they were first set;
// setting an existing field replaces its value in place.
type Record struct {
	keys   []string
	values map[string]json.RawMessage
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]json.RawMessage)}
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.keys)
}

// Keys returns the field names in order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Get returns the raw JSON value of a field.
func (r *Record) Get(key string) (json.RawMessage, bool) {
	v, ok := r.values[key]
	return v, ok
}

// GetString returns a field's value when it is a JSON string.
func (r *Record) GetString(key string) (string, bool) {
	raw, ok := r.values[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// SetRaw sets a field to an already-encoded JSON value.
func (r *Record) SetRaw(key string, raw json.RawMessage) {
	if r.values == nil {
		r.values = make(map[string]json.RawMessage)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = raw
}

// Set encodes value as JSON and stores it under key.
func (r *Record) Set(key string, value any) error {
	raw, err := encodeJSON(value)
	if err != nil {
		return fmt.Errorf("record: encode %q: %w", key, err)
	}
	r.SetRaw(key, raw)
	return nil
}

// SetString stores a string field.
func (r *Record) SetString(key, value string) {
	raw, _ := encodeJSON(value) // strings always encode
	r.SetRaw(key, raw)
}

// MarshalJSON encodes the record as a JSON object in field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := encodeJSON(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(r.values[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the order of its keys.
// Duplicate keys keep their first position and their last value.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrNotObject
	}

	r.keys = nil
	r.values = make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("record: unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		r.SetRaw(key, raw)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// encodeJSON marshals v without HTML escaping and without a trailing newline.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
