// Package lenientjson decodes JSON blobs that may carry trailing garbage or be cut short.
//
// Pages often emit ld+json blocks that were truncated by a minifier or have
// markup glued to their end. Decode recovers the longest well-formed prefix
// that ends in '}'. Garbage at the start or in the middle is not tolerated.
package lenientjson

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrDecodeFailure is returned when no prefix of the input is valid JSON.
var ErrDecodeFailure = errors.New("lenientjson: no decodable prefix")

// Decode parses text into a generic value (map[string]any, []any, string,
// float64, bool or nil).
func Decode(text string) (any, error) {
	return DecodeInto[any](text)
}

// DecodeInto parses text into T, trimming the tail back to the previous '}'
// after every failed attempt. The number of attempts is bounded by len(text).
func DecodeInto[T any](text string) (T, error) {
	var out T
	candidate := text
	for attempt := 0; attempt <= len(text) && candidate != ""; attempt++ {
		var v T
		if err := json.Unmarshal([]byte(candidate), &v); err == nil {
			return v, nil
		}
		// The next candidate must be strictly shorter: look for a '}' before
		// the current last byte.
		cut := strings.LastIndexByte(candidate[:len(candidate)-1], '}')
		if cut < 0 {
			break
		}
		candidate = candidate[:cut+1]
	}
	return out, ErrDecodeFailure
}
