package valc

import (
	"bytes"
	"errors"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Check is a compiled validator: pure, reentrant, and safe to share
// across goroutines. It never panics; every failure mode funnels through
// a failed Result.
type Check func(v any) Result

// JSON decodes a JSON document and validates the resulting value.
// Numbers are decoded as json.Number to avoid precision loss. Malformed
// input is reported as a failure at the root with a caught detail.
func (c Check) JSON(data []byte) Result {
	return c.JSONReader(bytes.NewReader(data))
}

// JSONReader is the io.Reader variant of JSON.
func (c Check) JSONReader(r io.Reader) Result {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Fail(nil, "Malformed JSON", Caught(err))
	}
	if dec.More() {
		return Fail(nil, "Malformed JSON", Caught(errors.New("trailing content after top-level value")))
	}
	return c(v)
}

// YAML decodes a YAML document and validates the resulting value.
func (c Check) YAML(data []byte) Result {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Fail(nil, "Malformed YAML", Caught(err))
	}
	return c(v)
}
