package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sgbdecode/internal/sgb"
)

// Render writes v as JSON or as indented "Key: value" text
func Render(w io.Writer, v any, format string, pretty bool) error {
	var data []byte
	var err error
	if pretty && format == FormatJSON {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	switch format {
	case FormatJSON:
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	case FormatText:
		return writeText(w, data)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// textWriter walks JSON tokens in document order, so field order follows
// the struct definitions.
type textWriter struct {
	w   io.Writer
	dec *json.Decoder
	err error
}

func writeText(w io.Writer, data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	t := &textWriter{w: w, dec: dec}
	if err := t.value(0, ""); err != nil {
		return err
	}
	return t.err
}

func (t *textWriter) value(depth int, label string) error {
	tok, err := t.dec.Token()
	if err != nil {
		return err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		t.line(depth, label, scalar(tok))
		return nil
	}

	if label != "" {
		t.printf("%s%s:\n", strings.Repeat("  ", depth), label)
		depth++
	}
	for i := 0; t.dec.More(); i++ {
		child := fmt.Sprintf("[%d]", i)
		if delim == '{' {
			key, err := t.dec.Token()
			if err != nil {
				return err
			}
			child = sgb.PrettifyKey(key.(string))
		}
		if err := t.value(depth, child); err != nil {
			return err
		}
	}
	_, err = t.dec.Token()
	return err
}

func (t *textWriter) line(depth int, label, value string) {
	indent := strings.Repeat("  ", depth)
	if label == "" {
		t.printf("%s%s\n", indent, value)
		return
	}
	t.printf("%s%s: %s\n", indent, label, value)
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func scalar(tok json.Token) string {
	switch v := tok.(type) {
	case nil:
		return "null"
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
