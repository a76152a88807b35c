package engine

// Enforcement wrapper for Reader to apply max depth checks and max bytes
// truncation in a streaming fashion.

// EnforceOptions controls runtime enforcement behavior. Zero values disable
// the corresponding limit.
type EnforceOptions struct {
	MaxDepth int
	MaxBytes int64
	// IssueSink is an optional callback to receive issues before the
	// corresponding error is returned.
	IssueSink func(SimpleIssue)
}

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Message string
	Offset  int64
}

// Issue codes produced by the enforcement wrapper.
const (
	CodeMaxDepth  = "max_depth"
	CodeTruncated = "truncated"
)

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// Enabled reports whether any limit is configured.
func (o EnforceOptions) Enabled() bool { return o.MaxDepth > 0 || o.MaxBytes > 0 }

// WrapWithEnforcement returns a Reader that enforces maximum nesting depth
// and maximum consumed bytes. It returns inner unchanged when no limit is set.
func WrapWithEnforcement(inner Reader, opt EnforceOptions) Reader {
	if !opt.Enabled() {
		return inner
	}
	return &enforcingReader{inner: inner, opt: opt}
}

type enforcingReader struct {
	inner Reader
	opt   EnforceOptions
	depth int
}

func (e *enforcingReader) fail(si SimpleIssue) error {
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
	return IssueError{si}
}

// check runs after every read.
func (e *enforcingReader) check(err error) error {
	if err != nil {
		return err
	}
	if e.opt.MaxBytes > 0 {
		if off := e.inner.Offset(); off >= 0 && off > e.opt.MaxBytes {
			return e.fail(SimpleIssue{Code: CodeTruncated, Message: "max bytes exceeded", Offset: off})
		}
	}
	return nil
}

func (e *enforcingReader) open(err error) error {
	if err != nil {
		return err
	}
	e.depth++
	if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
		return e.fail(SimpleIssue{Code: CodeMaxDepth, Message: "max depth exceeded", Offset: e.inner.Offset()})
	}
	return e.check(nil)
}

func (e *enforcingReader) close(err error) error {
	if err != nil {
		return err
	}
	if e.depth > 0 {
		e.depth--
	}
	return e.check(nil)
}

func (e *enforcingReader) Peek() (Kind, error) { return e.inner.Peek() }
func (e *enforcingReader) BeginObject() error  { return e.open(e.inner.BeginObject()) }
func (e *enforcingReader) EndObject() error    { return e.close(e.inner.EndObject()) }
func (e *enforcingReader) BeginArray() error   { return e.open(e.inner.BeginArray()) }
func (e *enforcingReader) EndArray() error     { return e.close(e.inner.EndArray()) }
func (e *enforcingReader) NextNull() error     { return e.check(e.inner.NextNull()) }
func (e *enforcingReader) Offset() int64       { return e.inner.Offset() }

func (e *enforcingReader) NextName() (string, error) {
	s, err := e.inner.NextName()
	return s, e.check(err)
}

func (e *enforcingReader) NextString() (string, error) {
	s, err := e.inner.NextString()
	return s, e.check(err)
}

func (e *enforcingReader) NextNumber() (string, error) {
	s, err := e.inner.NextNumber()
	return s, e.check(err)
}

func (e *enforcingReader) NextBool() (bool, error) {
	b, err := e.inner.NextBool()
	return b, e.check(err)
}
