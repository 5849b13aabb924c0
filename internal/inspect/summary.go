// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Summary describes the results array of an openFDA JSON document.
type Summary struct {
	HasResults bool
	Records    int
	Fields     []string
}

// SummarizeFile opens path and calls Summarize.
func SummarizeFile(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer f.Close()

	s, err := Summarize(f)
	if err != nil {
		return Summary{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// Summarize stream-decodes an openFDA export document. When the top-level
// object has a "results" array it counts the entries and collects up to ten
// top-level keys of the first entry in document order. Entries are decoded
// one at a time, so the whole document is never held in memory.
func Summarize(r io.Reader) (Summary, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '{'); err != nil {
		return Summary{}, err
	}

	var s Summary
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return s, err
		}
		if key != "results" {
			if err := skipValue(dec); err != nil {
				return s, err
			}
			continue
		}

		tok, err := dec.Token()
		if err != nil {
			return s, err
		}
		if d, ok := tok.(json.Delim); !ok || d != '[' {
			// Not an array: the field exists but holds no records.
			if ok {
				if err := skipRest(dec); err != nil {
					return s, err
				}
			}
			s.HasResults = true
			continue
		}
		s.HasResults = true
		for dec.More() {
			if s.Records == 0 {
				fields, err := firstKeys(dec, maxFields)
				if err != nil {
					return s, err
				}
				s.Fields = fields
			} else if err := skipValue(dec); err != nil {
				return s, err
			}
			s.Records++
		}
		if err := expectDelim(dec, ']'); err != nil {
			return s, err
		}
	}
	return s, nil
}

// firstKeys consumes one value. If it is an object, up to limit of its keys
// are returned in order.
func firstKeys(dec *json.Decoder, limit int) ([]string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return nil, nil
	}
	if d != '{' {
		return nil, skipRest(dec)
	}

	var keys []string
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if len(keys) < limit {
			keys = append(keys, key)
		}
		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	return keys, expectDelim(dec, '}')
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func skipValue(dec *json.Decoder) error {
	var raw json.RawMessage
	return dec.Decode(&raw)
}

// skipRest consumes the remainder of a container whose opening delimiter has
// already been read.
func skipRest(dec *json.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
