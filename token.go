package streamskema

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// TokenType enumerates canonical JSON parse events.
type TokenType int

const (
	StartObject TokenType = iota
	EndObject
	StartArray
	EndArray
	FieldName
	ValueText
	ValueNumber
	ValueTrue
	ValueFalse
	ValueNull
)

var tokenTypeNames = [...]string{
	StartObject: "START_OBJECT",
	EndObject:   "END_OBJECT",
	StartArray:  "START_ARRAY",
	EndArray:    "END_ARRAY",
	FieldName:   "FIELD_NAME",
	ValueText:   "VALUE_TEXT",
	ValueNumber: "VALUE_NUMBER",
	ValueTrue:   "VALUE_TRUE",
	ValueFalse:  "VALUE_FALSE",
	ValueNull:   "VALUE_NULL",
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "UNKNOWN"
}

// IsScalar reports whether the type is a complete value on its own.
func (t TokenType) IsScalar() bool { return t >= ValueText }

// Token is one canonical parse event. Text is set for FieldName and ValueText.
// A ValueNumber token carries exactly one of Integer or Decimal. Structural
// tokens carry nothing. Use the constructors; a Token is never mutated after
// construction.
type Token struct {
	Type    TokenType
	Text    string
	Integer *big.Int
	Decimal *decimal.Decimal
}

// Payload-free tokens.
var (
	TokenStartObject = Token{Type: StartObject}
	TokenEndObject   = Token{Type: EndObject}
	TokenStartArray  = Token{Type: StartArray}
	TokenEndArray    = Token{Type: EndArray}
	TokenTrue        = Token{Type: ValueTrue}
	TokenFalse       = Token{Type: ValueFalse}
	TokenNull        = Token{Type: ValueNull}
)

// NewTextToken returns a ValueText token.
func NewTextToken(s string) Token { return Token{Type: ValueText, Text: s} }

// NewFieldNameToken returns a FieldName token.
func NewFieldNameToken(name string) Token { return Token{Type: FieldName, Text: name} }

// NewBoolToken returns ValueTrue or ValueFalse.
func NewBoolToken(b bool) Token {
	if b {
		return TokenTrue
	}
	return TokenFalse
}

// NewIntegerToken returns an integer ValueNumber token. x is copied.
func NewIntegerToken(x *big.Int) Token {
	return Token{Type: ValueNumber, Integer: new(big.Int).Set(x)}
}

// NewDecimalToken returns a decimal ValueNumber token.
func NewDecimalToken(d decimal.Decimal) Token {
	return Token{Type: ValueNumber, Decimal: &d}
}

// IsInteger reports whether the token is a number held as an integer.
func (t Token) IsInteger() bool { return t.Type == ValueNumber && t.Integer != nil }

// IsDecimal reports whether the token is a number held as a decimal.
func (t Token) IsDecimal() bool { return t.Type == ValueNumber && t.Decimal != nil }

// Equal compares type and payload; numbers compare by representation and value.
func (t Token) Equal(o Token) bool {
	if t.Type != o.Type || t.Text != o.Text {
		return false
	}
	switch {
	case t.Integer != nil || o.Integer != nil:
		return t.Integer != nil && o.Integer != nil && t.Integer.Cmp(o.Integer) == 0
	case t.Decimal != nil || o.Decimal != nil:
		if t.Decimal == nil || o.Decimal == nil {
			return false
		}
		tc, te := normalizedDecimal(*t.Decimal)
		oc, oe := normalizedDecimal(*o.Decimal)
		return tc == oc && te == oe
	}
	return true
}

func (t Token) String() string {
	switch t.Type {
	case FieldName, ValueText:
		return t.Type.String() + " " + t.Text
	case ValueNumber:
		return t.Type.String() + " " + t.compactText()
	}
	return t.Type.String()
}
