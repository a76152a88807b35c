package streamskema

import (
	"fmt"
	"strconv"
	"strings"
)

// Pointer is an immutable RFC 6901 JSON Pointer. The zero value addresses the
// document root.
type Pointer struct {
	tokens []string
}

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// ParsePointer parses the string form of a pointer ("" or "/a/0").
func ParsePointer(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}
	if s[0] != '/' {
		return Pointer{}, fmt.Errorf("invalid JSON pointer %q: must start with '/'", s)
	}
	parts := strings.Split(s[1:], "/")
	for i, p := range parts {
		if err := checkEscapes(p); err != nil {
			return Pointer{}, fmt.Errorf("invalid JSON pointer %q: %w", s, err)
		}
		parts[i] = pointerUnescaper.Replace(p)
	}
	return Pointer{tokens: parts}, nil
}

func checkEscapes(p string) error {
	for i := 0; i < len(p); i++ {
		if p[i] != '~' {
			continue
		}
		if i+1 >= len(p) || (p[i+1] != '0' && p[i+1] != '1') {
			return fmt.Errorf("bad escape at %d", i)
		}
	}
	return nil
}

// Field returns a pointer extended by an object member name.
func (p Pointer) Field(name string) Pointer {
	return Pointer{tokens: append(append(make([]string, 0, len(p.tokens)+1), p.tokens...), name)}
}

// Index returns a pointer extended by an array index.
func (p Pointer) Index(i int) Pointer { return p.Field(strconv.Itoa(i)) }

// Tokens returns the unescaped reference tokens.
func (p Pointer) Tokens() []string { return append([]string(nil), p.tokens...) }

// IsRoot reports whether p addresses the whole document.
func (p Pointer) IsRoot() bool { return len(p.tokens) == 0 }

// Parent returns the pointer without its last token; the root is its own parent.
func (p Pointer) Parent() Pointer {
	if len(p.tokens) == 0 {
		return p
	}
	return Pointer{tokens: p.tokens[:len(p.tokens)-1:len(p.tokens)-1]}
}

// Equal reports whether both pointers address the same location.
func (p Pointer) Equal(o Pointer) bool {
	if len(p.tokens) != len(o.tokens) {
		return false
	}
	for i := range p.tokens {
		if p.tokens[i] != o.tokens[i] {
			return false
		}
	}
	return true
}

// String renders p per RFC 6901; the root renders as "".
func (p Pointer) String() string {
	if len(p.tokens) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for _, t := range p.tokens {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(t))
	}
	return b.String()
}

// displayPath renders the root as "/" for messages, matching issue paths.
func (p Pointer) displayPath() string {
	if len(p.tokens) == 0 {
		return "/"
	}
	return p.String()
}
