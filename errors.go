package streamskema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/streamskema/i18n"
)

// Rule names reported in FailedResult.Rule.
const (
	RuleContentEncoding  = "contentEncoding"
	RuleContentMediaType = "contentMediaType"
	RuleMaxProperties    = "maxProperties"
	RuleDuplicateKey     = "duplicateKey"
)

var (
	// ErrOverflow matches every *OverflowError.
	ErrOverflow = errors.New("numeric overflow")
	// ErrNotNumber reports a numeric accessor used on a non-number token.
	ErrNotNumber = errors.New("not a number")
)

// ValidationFailures is the document-level failure collection. It implements
// error so a whole-document run can surface it as a single condition.
type ValidationFailures []*FailedResult

// Error summarizes the first few failures.
func (fs ValidationFailures) Error() string {
	if len(fs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(fs)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		f := fs[i]
		// e.g. contentEncoding at /data
		fmt.Fprintf(b, "%s at %s", f.Rule, f.Location.Pointer.displayPath())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsValidationFailures extracts ValidationFailures from an error using
// errors.As internally.
func AsValidationFailures(err error) (ValidationFailures, bool) {
	if err == nil {
		return nil, false
	}
	var fs ValidationFailures
	if errors.As(err, &fs) {
		return fs, true
	}
	return nil, false
}

// ParseError reports that the token source could not produce a well-formed
// token stream. It is fatal to the document and never a validation failure.
type ParseError struct {
	// Location of the last token successfully consumed.
	Location Location
	// Offset is the byte offset in the input (-1 when unknown).
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %s: %v", i18n.T("parse_error", nil), e.Location, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// OverflowError reports a narrowing numeric read whose exact value does not
// fit the requested type. The value is never truncated.
type OverflowError struct {
	Value  string
	Target string
	// Reason is set when the value is not an integer at all.
	Reason string
}

func (e *OverflowError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s %s and cannot be read as %s", i18n.T("overflow", nil), e.Value, e.Reason, e.Target)
	}
	return fmt.Sprintf("%s: %s does not fit in %s", i18n.T("overflow", nil), e.Value, e.Target)
}

func (e *OverflowError) Is(target error) bool { return target == ErrOverflow }
