package record

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
)

// Entry is the interchange shape of a source record.
type Entry struct {
	Type       string  `json:"type"`
	Label      string  `json:"label"`
	Properties *Record `json:"properties"`
}

// Record converts the entry into a record carrying both pseudo-fields.
func (e Entry) Record() *Record {
	r := e.Properties.Clone()
	r.Type = e.Type
	r.Label = e.Label

	return r
}

// EntryOf splits a record back into the interchange shape.
func EntryOf(r *Record) Entry {
	props := r.Clone()
	props.Type = ""
	props.Label = ""

	return Entry{Type: r.Type, Label: r.Label, Properties: props}
}

// MarshalJSON writes the ordinary fields as an object in insertion order.
// Pseudo-fields are not serialized.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	i := 0
	for k, v := range r.All() {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)

		i++
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keeping the order of its keys.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	rec, err := decodeObject(dec)
	if err != nil {
		return err
	}

	rec.Type, rec.Label = r.Type, r.Label
	*r = *rec

	return nil
}

// DecodeRecords reads a JSON array of target records.
func DecodeRecords(rd io.Reader) ([]*Record, error) {
	var recs []*Record
	if err := json.NewDecoder(rd).Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	return recs, nil
}

// DecodeEntries reads a JSON array of source entries.
func DecodeEntries(rd io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := json.NewDecoder(rd).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}

	for i := range entries {
		if entries[i].Properties == nil {
			entries[i].Properties = &Record{}
		}
	}

	return entries, nil
}

// Encode writes v as indented JSON.
func Encode(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	data = append(data, '\n')
	_, err = w.Write(data)

	return err
}

var errUnexpectedEnd = errors.New("unexpected end of JSON input")

func decodeObject(dec *json.Decoder) (*Record, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	rec := &Record{}

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errUnexpectedEnd
			}

			return nil, err
		}

		if d, ok := tok.(json.Delim); ok && d == '}' {
			return rec, nil
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}

		val, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}

		rec.Set(key, val)
	}
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errUnexpectedEnd
		}

		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			obj := map[string]any{}

			for {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}

				if d, ok := kt.(json.Delim); ok && d == '}' {
					return obj, nil
				}

				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", kt)
				}

				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}

				obj[key] = val
			}
		case '[':
			arr := []any{}

			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}

				arr = append(arr, val)
			}

			if _, err := dec.Token(); err != nil {
				return nil, err
			}

			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", v)
		}
	case json.Number:
		return numberValue(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}

		return v, nil
	default:
		return v, nil
	}
}

func numberValue(n json.Number) any {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}

	if f, err := n.Float64(); err == nil {
		return f
	}

	return s
}
