package streamskema

import (
	"context"
	"net/url"
)

// SchemaValidator is a compiled schema keyword (or a composite of keywords).
// A compiled validator is immutable and may be shared by concurrent runs.
type SchemaValidator interface {
	// CreateInstance returns the instance evaluating a value that starts at
	// startLevel. Stateless validators may return themselves; validators
	// with per-run state must return a fresh instance.
	CreateInstance(startLevel int) Instance
	// RecordUnknownRefs adds the schema references this validator could not
	// resolve at compile time.
	RecordUnknownRefs(refs *RefSet)
}

// ContextValidator is implemented by validators whose instances do blocking
// work of their own, such as parsing embedded documents. Validate passes its
// context through CreateInstanceContext.
type ContextValidator interface {
	SchemaValidator
	CreateInstanceContext(ctx context.Context, startLevel int) Instance
}

// NewInstance creates an instance of v, passing ctx when v accepts one.
func NewInstance(ctx context.Context, v SchemaValidator, startLevel int) Instance {
	if cv, ok := v.(ContextValidator); ok {
		return cv.CreateInstanceContext(ctx, startLevel)
	}
	return v.CreateInstance(startLevel)
}

// Instance evaluates tokens in document order.
type Instance interface {
	// Validate returns Ok, a *FailedResult, or nil for "no opinion". Token
	// types the keyword does not apply to yield Ok.
	Validate(tok Token, loc Location) ValidationResult
}

// InstanceFunc adapts a function to Instance.
type InstanceFunc func(tok Token, loc Location) ValidationResult

func (f InstanceFunc) Validate(tok Token, loc Location) ValidationResult { return f(tok, loc) }

// RefSet collects unresolved schema references, deduplicated, in insertion
// order.
type RefSet struct {
	refs []*url.URL
	seen map[string]struct{}
}

// Add records ref; nil and repeated references are ignored.
func (s *RefSet) Add(ref *url.URL) {
	if ref == nil {
		return
	}
	key := ref.String()
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.refs = append(s.refs, ref)
}

// Refs returns the recorded references.
func (s *RefSet) Refs() []*url.URL { return append([]*url.URL(nil), s.refs...) }

// Len returns the number of recorded references.
func (s *RefSet) Len() int { return len(s.refs) }
