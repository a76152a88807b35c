package gojson

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	j "github.com/goccy/go-json"

	streamskema "github.com/reoring/streamskema"
	eng "github.com/reoring/streamskema/internal/engine"
)

// Driver returns a streamskema.JSONDriver backed by goccy/go-json.
//
// The go-json tokenizer skips ',' and ':' without checking their placement,
// so this driver accepts some inputs encoding/json rejects. Nested content
// checks always use the strict encoding/json driver.
func Driver() streamskema.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) streamskema.PullReader {
	return streamskema.PullFrom(NewReader(r))
}
func (driverGoJSON) NewBytes(b []byte) streamskema.PullReader {
	return streamskema.PullFrom(NewBytes(b))
}
func (driverGoJSON) Name() string { return "go-json" }

// source adapts the go-json Decoder token stream. go-json exposes no input
// offset, so every token reports -1.
type source struct {
	dec  *j.Decoder
	keys eng.KeyTracker
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	raw, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	tok := eng.Token{Offset: -1}
	switch v := raw.(type) {
	case j.Delim:
		k, ok := s.keys.Delim(rune(v))
		if !ok {
			return eng.Token{}, fmt.Errorf("go-json: unexpected delimiter %q", rune(v))
		}
		tok.Kind = k
		return tok, nil
	case string:
		tok.Kind, tok.String = s.keys.Classify(), v
		return tok, nil
	case j.Number:
		tok.Kind, tok.Number = eng.KindNumber, string(v)
	case bool:
		tok.Kind, tok.Bool = eng.KindBool, v
	case nil:
		tok.Kind = eng.KindNull
	default:
		// go-json returns float64 only when UseNumber is off
		return eng.Token{}, fmt.Errorf("go-json: unexpected token %T", raw)
	}
	s.keys.Value()
	return tok, nil
}

func (s *source) Location() int64 { return -1 }
