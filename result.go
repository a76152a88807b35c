package streamskema

import "fmt"

// ValidationResult is the verdict of one validator for one token: Ok or a
// *FailedResult. Validators return a nil ValidationResult when they have no
// opinion about the token.
type ValidationResult interface {
	Valid() bool
}

type okResult struct{}

func (okResult) Valid() bool    { return true }
func (okResult) String() string { return "OK" }

// Ok is the successful verdict.
var Ok ValidationResult = okResult{}

// FailedResult is a schema rule violation at a location.
type FailedResult struct {
	Rule     string
	Message  string
	Location Location
}

func (*FailedResult) Valid() bool { return false }

func (f *FailedResult) String() string {
	return fmt.Sprintf("%s: %s %s", f.Rule, f.Message, f.Location)
}

// Failed builds a FailedResult.
func Failed(rule, message string, loc Location) *FailedResult {
	return &FailedResult{Rule: rule, Message: message, Location: loc}
}

type decodingKind int

const (
	_ decodingKind = iota
	decodedBytes
	decodedString
	decodingFailed
)

// DecodingResult holds exactly one of decoded bytes, a literal string or a
// failure. Only the constructors produce valid values.
type DecodingResult struct {
	kind    decodingKind
	bytes   []byte
	str     string
	failure *FailedResult
}

// DecodedBytes wraps bytes produced by a content decoder.
func DecodedBytes(b []byte) DecodingResult { return DecodingResult{kind: decodedBytes, bytes: b} }

// DecodedString wraps a string passed through without decoding.
func DecodedString(s string) DecodingResult { return DecodingResult{kind: decodedString, str: s} }

// DecodingFailed wraps a decoding failure. f must not be nil.
func DecodingFailed(f *FailedResult) DecodingResult {
	if f == nil {
		panic("streamskema.DecodingFailed: nil failure")
	}
	return DecodingResult{kind: decodingFailed, failure: f}
}

// Bytes returns the decoded bytes and whether the result holds bytes.
func (r DecodingResult) Bytes() ([]byte, bool) { return r.bytes, r.kind == decodedBytes }

// Failure returns the failure, or nil.
func (r DecodingResult) Failure() *FailedResult { return r.failure }

// Text returns the payload as text; decoded bytes are read as UTF-8.
func (r DecodingResult) Text() (string, bool) {
	switch r.kind {
	case decodedBytes:
		return string(r.bytes), true
	case decodedString:
		return r.str, true
	}
	return "", false
}
