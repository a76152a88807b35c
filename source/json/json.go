// Package json is the encoding/json token source. It is strict about
// separators and reports byte offsets.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	eng "github.com/reoring/streamskema/internal/engine"
)

type jsonSource struct {
	dec    *json.Decoder
	keys   eng.KeyTracker
	offset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, offset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	raw, err := s.dec.Token()
	if errors.Is(err, io.EOF) {
		return eng.Token{}, io.EOF
	}
	if err != nil {
		return eng.Token{}, err
	}
	s.offset = s.dec.InputOffset()
	tok := eng.Token{Offset: s.offset}

	switch v := raw.(type) {
	case json.Delim:
		k, ok := s.keys.Delim(rune(v))
		if !ok {
			return eng.Token{}, fmt.Errorf("unexpected delimiter %q", rune(v))
		}
		tok.Kind = k
		return tok, nil
	case string:
		tok.Kind, tok.String = s.keys.Classify(), v
		return tok, nil
	case bool:
		tok.Kind, tok.Bool = eng.KindBool, v
	case json.Number:
		tok.Kind, tok.Number = eng.KindNumber, v.String()
	case float64:
		// only without UseNumber
		tok.Kind, tok.Number = eng.KindNumber, strconv.FormatFloat(v, 'g', -1, 64)
	case nil:
		tok.Kind = eng.KindNull
	default:
		return eng.Token{}, fmt.Errorf("unexpected token %T", raw)
	}
	s.keys.Value()
	return tok, nil
}

func (s *jsonSource) Location() int64 { return s.offset }
