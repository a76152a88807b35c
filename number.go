package streamskema

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// maxIntegerDigits bounds the integers materialized from decimal exponents
	// such as 1e1000000000.
	maxIntegerDigits = 1 << 20
	// maxInlineExponent is the largest exponent magnitude rendered in plain
	// notation by compactText.
	maxInlineExponent = 64
)

// IsDecimalNumeral reports whether numeral text selects the decimal
// representation, i.e. contains a fraction or exponent marker.
func IsDecimalNumeral(text string) bool { return strings.ContainsAny(text, ".eE") }

// ParseNumberToken parses numeral text into a ValueNumber token without any
// floating-point intermediate.
//
// Exponents must fit in an int32; larger ones are rejected.
func ParseNumberToken(text string) (Token, error) {
	if IsDecimalNumeral(text) {
		if i := strings.IndexAny(text, "eE"); i >= 0 {
			if _, err := strconv.ParseInt(text[i+1:], 10, 32); errors.Is(err, strconv.ErrRange) {
				return Token{}, fmt.Errorf("invalid number %q: exponent outside [%d, %d]", text, math.MinInt32, math.MaxInt32)
			}
		}
		d, err := decimal.NewFromString(text)
		if err != nil {
			return Token{}, fmt.Errorf("invalid number %q: %w", text, err)
		}
		return Token{Type: ValueNumber, Decimal: &d}, nil
	}
	x, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return Token{}, fmt.Errorf("invalid number %q", text)
	}
	return Token{Type: ValueNumber, Integer: x}, nil
}

// NumberText renders the numeric payload in plain notation; empty for
// non-number tokens. The output length grows with the exponent, so use it
// only on values known to be reasonably scaled.
func (t Token) NumberText() string {
	switch {
	case t.Integer != nil:
		return t.Integer.String()
	case t.Decimal != nil:
		return t.Decimal.String()
	}
	return ""
}

// compactText renders the number for messages. Decimals with large exponents
// are written as coefficient and exponent instead of being expanded.
func (t Token) compactText() string {
	if t.Decimal != nil {
		if exp := t.Decimal.Exponent(); exp > maxInlineExponent || exp < -maxInlineExponent {
			return t.Decimal.Coefficient().String() + "e" + strconv.Itoa(int(exp))
		}
	}
	return t.NumberText()
}

// BigInt returns the exact integer value. Decimals qualify only when they
// have no fractional part.
func (t Token) BigInt() (*big.Int, error) {
	return t.exactInt("big.Int", maxIntegerDigits)
}

// Int64 returns the value if it fits exactly in an int64.
func (t Token) Int64() (int64, error) {
	x, err := t.exactInt("int64", 20)
	if err != nil {
		return 0, err
	}
	if !x.IsInt64() {
		return 0, &OverflowError{Value: t.compactText(), Target: "int64"}
	}
	return x.Int64(), nil
}

// Int32 returns the value if it fits exactly in an int32.
func (t Token) Int32() (int32, error) {
	x, err := t.exactInt("int32", 11)
	if err != nil {
		return 0, err
	}
	if !x.IsInt64() || x.Int64() < math.MinInt32 || x.Int64() > math.MaxInt32 {
		return 0, &OverflowError{Value: t.compactText(), Target: "int32"}
	}
	return int32(x.Int64()), nil
}

// Float64 converts the value to the nearest float64. The conversion may lose
// precision.
func (t Token) Float64() (float64, error) {
	switch {
	case t.Integer != nil:
		f, _ := new(big.Float).SetInt(t.Integer).Float64()
		return f, nil
	case t.Decimal != nil:
		// ParseFloat rounds correctly and saturates to ±Inf or 0 instead of
		// expanding the exponent.
		f, err := strconv.ParseFloat(t.Decimal.Coefficient().String()+"e"+strconv.Itoa(int(t.Decimal.Exponent())), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, err
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrNotNumber, t.Type)
}

// exactInt materializes the integer value, refusing results longer than
// maxDigits.
func (t Token) exactInt(target string, maxDigits int) (*big.Int, error) {
	switch {
	case t.Integer != nil:
		return new(big.Int).Set(t.Integer), nil
	case t.Decimal == nil:
		return nil, fmt.Errorf("%w: %s", ErrNotNumber, t.Type)
	}
	coef := t.Decimal.Coefficient()
	exp := int64(t.Decimal.Exponent())
	if coef.Sign() == 0 {
		return new(big.Int), nil
	}
	digits := int64(len(new(big.Int).Abs(coef).String()))
	switch {
	case exp > 0:
		if digits+exp > int64(maxDigits) {
			return nil, &OverflowError{Value: t.compactText(), Target: target}
		}
		return coef.Mul(coef, pow10(exp)), nil
	case exp < 0:
		if -exp >= digits {
			return nil, &OverflowError{Value: t.compactText(), Target: target, Reason: "has a fractional part"}
		}
		q, r := new(big.Int).QuoRem(coef, pow10(-exp), new(big.Int))
		if r.Sign() != 0 {
			return nil, &OverflowError{Value: t.compactText(), Target: target, Reason: "has a fractional part"}
		}
		return q, nil
	}
	return coef, nil
}

func pow10(n int64) *big.Int { return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil) }

// normalizedDecimal returns d's coefficient without trailing zeros and the
// matching exponent, so equal values compare equal without rescaling.
func normalizedDecimal(d decimal.Decimal) (coef string, exp int64) {
	coef = d.Coefficient().String()
	exp = int64(d.Exponent())
	if coef == "0" {
		return coef, 0
	}
	trimmed := strings.TrimRight(coef, "0")
	return trimmed, exp + int64(len(coef)-len(trimmed))
}
