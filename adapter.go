package streamskema

import (
	"errors"
	"fmt"
	"math/big"

	eng "github.com/reoring/streamskema/internal/engine"
)

// TokenSink receives canonical tokens with their location in document order.
// A non-nil error aborts the parse and is returned unchanged by the Adapter.
type TokenSink interface {
	Consume(tok Token, loc Location) error
}

// TokenSinkFunc adapts a function to TokenSink.
type TokenSinkFunc func(tok Token, loc Location) error

func (f TokenSinkFunc) Consume(tok Token, loc Location) error { return f(tok, loc) }

type discardSink struct{}

func (discardSink) Consume(Token, Location) error { return nil }

// Discard is a TokenSink that ignores every token.
var Discard TokenSink = discardSink{}

type multiSink []TokenSink

func (m multiSink) Consume(tok Token, loc Location) error {
	for _, s := range m {
		if err := s.Consume(tok, loc); err != nil {
			return err
		}
	}
	return nil
}

// MultiSink fans every token out to sinks in order, stopping at the first
// error.
func MultiSink(sinks ...TokenSink) TokenSink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Adapter wraps a PullReader, turns every primitive read into a canonical
// Token, keeps the TraversalState up to date and forwards (Token, Location)
// pairs to its sink. Numbers are read as text and parsed exactly.
//
// Errors from the reader (malformed input, type mismatches, limits) are
// returned as *ParseError, sink errors unchanged, narrowing failures as
// *OverflowError.
type Adapter struct {
	r     PullReader
	sink  TokenSink
	state *TraversalState
}

// NewAdapter wraps r. A nil sink discards tokens.
func NewAdapter(r PullReader, sink TokenSink, opts ...ParseOpt) *Adapter {
	opt := lastParseOpt(opts)
	if sink == nil {
		sink = Discard
	}
	return &Adapter{
		r:     eng.WrapWithEnforcement(r, eng.EnforceOptions{MaxDepth: opt.MaxDepth, MaxBytes: opt.MaxBytes}),
		sink:  sink,
		state: NewTraversalState(opt.InputSourceName),
	}
}

// State exposes the traversal state of the document being parsed.
func (a *Adapter) State() *TraversalState { return a.state }

// ParseAll drains the reader to the end of the document.
func (a *Adapter) ParseAll() error {
	for {
		k, err := a.Peek()
		if err != nil {
			return err
		}
		switch k {
		case PullEndDocument:
			return nil
		case PullBeginObject:
			err = a.BeginObject()
		case PullEndObject:
			err = a.EndObject()
		case PullBeginArray:
			err = a.BeginArray()
		case PullEndArray:
			err = a.EndArray()
		case PullName:
			_, err = a.NextName()
		case PullString:
			_, err = a.NextString()
		case PullNumber:
			_, err = a.NextNumber()
		case PullBool:
			_, err = a.NextBool()
		case PullNull:
			err = a.NextNull()
		default:
			return a.parseErr(fmt.Errorf("%w: unknown kind %s", eng.ErrUnexpectedToken, k))
		}
		if err != nil {
			return err
		}
	}
}

func (a *Adapter) consume(tok Token) error {
	loc := a.state.Advance(tok)
	return a.sink.Consume(tok, loc)
}

func (a *Adapter) parseErr(err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	return &ParseError{Location: a.state.Location(), Offset: a.r.Offset(), Err: err}
}

// Peek reports the kind of the next primitive.
func (a *Adapter) Peek() (PullKind, error) {
	k, err := a.r.Peek()
	if err != nil {
		return k, a.parseErr(err)
	}
	return k, nil
}

func (a *Adapter) BeginObject() error {
	if err := a.r.BeginObject(); err != nil {
		return a.parseErr(err)
	}
	return a.consume(TokenStartObject)
}

func (a *Adapter) EndObject() error {
	if err := a.r.EndObject(); err != nil {
		return a.parseErr(err)
	}
	return a.consume(TokenEndObject)
}

func (a *Adapter) BeginArray() error {
	if err := a.r.BeginArray(); err != nil {
		return a.parseErr(err)
	}
	return a.consume(TokenStartArray)
}

func (a *Adapter) EndArray() error {
	if err := a.r.EndArray(); err != nil {
		return a.parseErr(err)
	}
	return a.consume(TokenEndArray)
}

func (a *Adapter) NextName() (string, error) {
	name, err := a.r.NextName()
	if err != nil {
		return "", a.parseErr(err)
	}
	return name, a.consume(NewFieldNameToken(name))
}

// NextString reads a string value. A number is accepted too: its numeral is
// returned as written in the input and a ValueNumber token is emitted.
func (a *Adapter) NextString() (string, error) {
	k, err := a.Peek()
	if err != nil {
		return "", err
	}
	if k == PullNumber {
		_, text, err := a.nextNumber()
		return text, err
	}
	s, err := a.r.NextString()
	if err != nil {
		return "", a.parseErr(err)
	}
	return s, a.consume(NewTextToken(s))
}

func (a *Adapter) NextBool() (bool, error) {
	b, err := a.r.NextBool()
	if err != nil {
		return false, a.parseErr(err)
	}
	return b, a.consume(NewBoolToken(b))
}

func (a *Adapter) NextNull() error {
	if err := a.r.NextNull(); err != nil {
		return a.parseErr(err)
	}
	return a.consume(TokenNull)
}

// NextNumber reads a number as an exact integer or decimal token.
func (a *Adapter) NextNumber() (Token, error) {
	tok, _, err := a.nextNumber()
	return tok, err
}

// nextNumber also returns the numeral text read from the source.
func (a *Adapter) nextNumber() (Token, string, error) {
	text, err := a.r.NextNumber()
	if err != nil {
		return Token{}, "", a.parseErr(err)
	}
	tok, err := ParseNumberToken(text)
	if err != nil {
		return Token{}, "", a.parseErr(err)
	}
	return tok, text, a.consume(tok)
}

// NextBigInt reads a number that must be an exact integer.
func (a *Adapter) NextBigInt() (*big.Int, error) {
	tok, err := a.NextNumber()
	if err != nil {
		return nil, err
	}
	return tok.BigInt()
}

// NextInt64 reads a number that must fit exactly in an int64. The token is
// emitted before the range check.
func (a *Adapter) NextInt64() (int64, error) {
	tok, err := a.NextNumber()
	if err != nil {
		return 0, err
	}
	return tok.Int64()
}

// NextInt32 reads a number that must fit exactly in an int32.
func (a *Adapter) NextInt32() (int32, error) {
	tok, err := a.NextNumber()
	if err != nil {
		return 0, err
	}
	return tok.Int32()
}

// NextFloat64 reads a number as the nearest float64.
func (a *Adapter) NextFloat64() (float64, error) {
	tok, err := a.NextNumber()
	if err != nil {
		return 0, err
	}
	return tok.Float64()
}
