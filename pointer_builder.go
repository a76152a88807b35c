package streamskema

import "strconv"

type pointerFrame struct {
	array bool
	// index is -1 until the first element starts.
	index   int
	name    string
	hasName bool
}

// PointerBuilder derives the JSON Pointer of each token from the token
// stream. Consume must see every token in document order; Pointer then
// addresses the value the last token belongs to. Start and end tokens of a
// container address the container itself.
type PointerBuilder struct {
	stack []pointerFrame
}

// NewPointerBuilder returns a builder positioned at the document root.
func NewPointerBuilder() *PointerBuilder { return &PointerBuilder{} }

// Consume advances the builder past tok.
func (b *PointerBuilder) Consume(tok Token) {
	switch tok.Type {
	case FieldName:
		if n := len(b.stack); n > 0 && !b.stack[n-1].array {
			b.stack[n-1].name = tok.Text
			b.stack[n-1].hasName = true
		}
	case EndObject, EndArray:
		if n := len(b.stack); n > 0 {
			b.stack = b.stack[:n-1]
		}
	case StartObject:
		b.advance()
		b.stack = append(b.stack, pointerFrame{index: -1})
	case StartArray:
		b.advance()
		b.stack = append(b.stack, pointerFrame{array: true, index: -1})
	default:
		b.advance()
	}
}

// advance moves an enclosing array to the element that is starting.
func (b *PointerBuilder) advance() {
	if n := len(b.stack); n > 0 && b.stack[n-1].array {
		b.stack[n-1].index++
	}
}

// Depth returns the number of open containers.
func (b *PointerBuilder) Depth() int { return len(b.stack) }

// Pointer renders the current position.
func (b *PointerBuilder) Pointer() Pointer {
	tokens := make([]string, 0, len(b.stack))
	for _, f := range b.stack {
		switch {
		case f.array && f.index >= 0:
			tokens = append(tokens, strconv.Itoa(f.index))
		case !f.array && f.hasName:
			tokens = append(tokens, f.name)
		}
	}
	return Pointer{tokens: tokens}
}
