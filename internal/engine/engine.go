package engine

import (
	"errors"
	"fmt"
	"io"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
	// KindEndDocument is reported by Reader.Peek once the top-level value has
	// been fully consumed. Token sources never produce it.
	KindEndDocument
)

var kindNames = [...]string{
	KindBeginObject: "begin object",
	KindEndObject:   "end object",
	KindBeginArray:  "begin array",
	KindEndArray:    "end array",
	KindKey:         "name",
	KindString:      "string",
	KindNumber:      "number",
	KindBool:        "boolean",
	KindNull:        "null",
	KindEndDocument: "end of document",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Token represents a streaming token with approximate input offset.
// Number holds the numeral exactly as it appeared in the input.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal push-shaped tokenizer. NextToken returns io.EOF
// once the input is exhausted.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// Reader is the pull contract consumed by the parser adapter. Every typed read
// fails with a *MismatchError when the next token has a different kind.
type Reader interface {
	Peek() (Kind, error)
	BeginObject() error
	EndObject() error
	BeginArray() error
	EndArray() error
	NextName() (string, error)
	NextString() (string, error)
	// NextNumber returns the numeral text without interpreting it.
	NextNumber() (string, error)
	NextBool() (bool, error)
	NextNull() error
	// Offset returns the byte offset after the last read, or -1 when unknown.
	Offset() int64
}

var (
	// ErrTrailingData reports input left over after the top-level value.
	ErrTrailingData = errors.New("unexpected data after top-level value")
	// ErrUnexpectedToken reports a token that is not allowed at its position.
	ErrUnexpectedToken = errors.New("unexpected token")
)

// MismatchError reports a typed read that does not match the next token.
type MismatchError struct {
	Want Kind
	Got  Kind
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("expected %s but was %s", e.Want, e.Got)
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

// Pull turns a TokenSource into a Reader with one token of lookahead. It also
// checks the grammar the source may not: balanced containers, names only in
// key position, a single top-level value and no trailing data.
type Pull struct {
	src    TokenSource
	peeked Token
	has    bool
	err    error
	stack  []containerKind
	// expectKey is tracked per open object.
	expectKey []bool
	done      bool
}

// NewPull wraps src as a Reader.
func NewPull(src TokenSource) *Pull { return &Pull{src: src} }

func (p *Pull) fill() error {
	if p.has {
		return nil
	}
	if p.err != nil {
		return p.err
	}
	tok, err := p.src.NextToken()
	switch {
	case errors.Is(err, io.EOF):
		if !p.done {
			p.err = io.ErrUnexpectedEOF
			return p.err
		}
		p.peeked = Token{Kind: KindEndDocument, Offset: p.src.Location()}
		p.has = true
		return nil
	case err != nil:
		p.err = err
		return err
	}
	if p.done {
		p.err = ErrTrailingData
		return p.err
	}
	if err := p.checkPosition(tok.Kind); err != nil {
		p.err = err
		return err
	}
	p.peeked = tok
	p.has = true
	return nil
}

func (p *Pull) checkPosition(k Kind) error {
	n := len(p.stack)
	if n == 0 {
		switch k {
		case KindKey, KindEndObject, KindEndArray:
			return fmt.Errorf("%w: %s at top level", ErrUnexpectedToken, k)
		}
		return nil
	}
	if p.stack[n-1] == kindObject {
		if p.expectKey[n-1] {
			if k != KindKey && k != KindEndObject {
				return fmt.Errorf("%w: %s where a name was expected", ErrUnexpectedToken, k)
			}
			return nil
		}
		if k == KindKey || k == KindEndObject || k == KindEndArray {
			return fmt.Errorf("%w: %s where a value was expected", ErrUnexpectedToken, k)
		}
		return nil
	}
	if k == KindKey || k == KindEndObject {
		return fmt.Errorf("%w: %s inside array", ErrUnexpectedToken, k)
	}
	return nil
}

// Peek reports the kind of the next token without consuming it.
func (p *Pull) Peek() (Kind, error) {
	if err := p.fill(); err != nil {
		return 0, err
	}
	return p.peeked.Kind, nil
}

func (p *Pull) take(want Kind) (Token, error) {
	if err := p.fill(); err != nil {
		return Token{}, err
	}
	if p.peeked.Kind != want {
		return Token{}, &MismatchError{Want: want, Got: p.peeked.Kind}
	}
	tok := p.peeked
	p.has = false
	n := len(p.stack)
	switch tok.Kind {
	case KindBeginObject:
		p.stack = append(p.stack, kindObject)
		p.expectKey = append(p.expectKey, true)
		return tok, nil
	case KindBeginArray:
		p.stack = append(p.stack, kindArray)
		p.expectKey = append(p.expectKey, false)
		return tok, nil
	case KindEndObject, KindEndArray:
		p.stack = p.stack[:n-1]
		p.expectKey = p.expectKey[:n-1]
	case KindKey:
		p.expectKey[n-1] = false
		return tok, nil
	}
	p.valueDone()
	return tok, nil
}

// valueDone records that a complete value has been read at the current level.
func (p *Pull) valueDone() {
	n := len(p.stack)
	if n == 0 {
		p.done = true
		return
	}
	if p.stack[n-1] == kindObject {
		p.expectKey[n-1] = true
	}
}

func (p *Pull) BeginObject() error {
	_, err := p.take(KindBeginObject)
	return err
}

func (p *Pull) EndObject() error {
	_, err := p.take(KindEndObject)
	return err
}

func (p *Pull) BeginArray() error {
	_, err := p.take(KindBeginArray)
	return err
}

func (p *Pull) EndArray() error {
	_, err := p.take(KindEndArray)
	return err
}

func (p *Pull) NextName() (string, error) {
	tok, err := p.take(KindKey)
	return tok.String, err
}

func (p *Pull) NextString() (string, error) {
	tok, err := p.take(KindString)
	return tok.String, err
}

func (p *Pull) NextNumber() (string, error) {
	tok, err := p.take(KindNumber)
	return tok.Number, err
}

func (p *Pull) NextBool() (bool, error) {
	tok, err := p.take(KindBool)
	return tok.Bool, err
}

func (p *Pull) NextNull() error {
	_, err := p.take(KindNull)
	return err
}

// Offset is approximate: after a Peek it already includes the peeked token.
func (p *Pull) Offset() int64 { return p.src.Location() }

// Depth returns the number of open containers.
func (p *Pull) Depth() int { return len(p.stack) }

// KeyTracker classifies string tokens of a decoder that does not distinguish
// object keys from string values.
type KeyTracker struct {
	stack []keyFrame
}

type keyFrame struct {
	kind         containerKind
	expectingKey bool
}

// Open records a '{' or '['.
func (t *KeyTracker) Open(object bool) {
	if object {
		t.stack = append(t.stack, keyFrame{kind: kindObject, expectingKey: true})
		return
	}
	t.stack = append(t.stack, keyFrame{kind: kindArray})
}

// Close records a '}' or ']'; the closed container counts as a value.
func (t *KeyTracker) Close() {
	if n := len(t.stack); n > 0 {
		t.stack = t.stack[:n-1]
	}
	t.Value()
}

// Value records a scalar value.
func (t *KeyTracker) Value() {
	if n := len(t.stack); n > 0 {
		top := &t.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

// Delim records a delimiter rune ('{', '}', '[' or ']') and returns its kind.
func (t *KeyTracker) Delim(r rune) (Kind, bool) {
	switch r {
	case '{':
		t.Open(true)
		return KindBeginObject, true
	case '[':
		t.Open(false)
		return KindBeginArray, true
	case '}':
		t.Close()
		return KindEndObject, true
	case ']':
		t.Close()
		return KindEndArray, true
	}
	return 0, false
}

// Classify classifies a string token, returning KindKey in key position.
func (t *KeyTracker) Classify() Kind {
	if n := len(t.stack); n > 0 {
		top := &t.stack[n-1]
		if top.kind == kindObject && top.expectingKey {
			top.expectingKey = false
			return KindKey
		}
	}
	t.Value()
	return KindString
}
