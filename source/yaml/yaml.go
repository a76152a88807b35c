package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/streamskema/internal/engine"
)

// Decoder reads a multi-document YAML stream and replays every document as
// JSON tokens.
type Decoder struct {
	dec *yaml.Decoder
}

// NewDecoder constructs a Decoder over r.
func NewDecoder(r io.Reader) *Decoder { return &Decoder{dec: yaml.NewDecoder(r)} }

// Next returns a TokenSource for the next document, or io.EOF when the stream
// is exhausted.
func (d *Decoder) Next() (eng.TokenSource, error) {
	var root yaml.Node
	if err := d.dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	w := &walker{visiting: map[*yaml.Node]bool{}}
	if len(root.Content) == 0 {
		w.out = append(w.out, eng.Token{Kind: eng.KindNull, Offset: -1})
	} else if err := w.node(root.Content[0]); err != nil {
		return nil, err
	}
	return &source{tokens: w.out}, nil
}

// NewReader returns a TokenSource for the first document of r. Decoding
// errors surface on the first NextToken call.
func NewReader(r io.Reader) eng.TokenSource {
	src, err := NewDecoder(r).Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return &source{err: err}
	}
	return src
}

// NewBytes returns a TokenSource for the first YAML document in b.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

// source materializes tokens from a decoded node tree.
type source struct {
	tokens []eng.Token
	idx    int
	err    error
}

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.idx >= len(s.tokens) {
		return eng.Token{}, io.EOF
	}
	t := s.tokens[s.idx]
	s.idx++
	return t, nil
}

func (s *source) Location() int64 { return -1 }

type walker struct {
	out      []eng.Token
	visiting map[*yaml.Node]bool
}

func (w *walker) emit(t eng.Token) {
	t.Offset = -1
	w.out = append(w.out, t)
}

func (w *walker) node(n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			w.emit(eng.Token{Kind: eng.KindNull})
			return nil
		}
		return w.node(n.Content[0])
	case yaml.AliasNode:
		if w.visiting[n.Alias] {
			return fmt.Errorf("yaml: recursive alias at line %d", n.Line)
		}
		w.visiting[n.Alias] = true
		defer delete(w.visiting, n.Alias)
		return w.node(n.Alias)
	case yaml.MappingNode:
		w.emit(eng.Token{Kind: eng.KindBeginObject})
		if err := w.pairs(n); err != nil {
			return err
		}
		w.emit(eng.Token{Kind: eng.KindEndObject})
		return nil
	case yaml.SequenceNode:
		w.emit(eng.Token{Kind: eng.KindBeginArray})
		for _, c := range n.Content {
			if err := w.node(c); err != nil {
				return err
			}
		}
		w.emit(eng.Token{Kind: eng.KindEndArray})
		return nil
	case yaml.ScalarNode:
		return w.scalar(n)
	}
	return fmt.Errorf("yaml: unsupported node kind %d at line %d", n.Kind, n.Line)
}

func (w *walker) pairs(n *yaml.Node) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			if err := w.merge(v); err != nil {
				return err
			}
			continue
		}
		key, err := scalarKey(k)
		if err != nil {
			return err
		}
		w.emit(eng.Token{Kind: eng.KindKey, String: key})
		if err := w.node(v); err != nil {
			return err
		}
	}
	return nil
}

// merge inlines the pairs of a '<<' value (a mapping or a sequence of them).
func (w *walker) merge(v *yaml.Node) error {
	if v.Kind == yaml.AliasNode {
		v = v.Alias
	}
	switch v.Kind {
	case yaml.MappingNode:
		return w.pairs(v)
	case yaml.SequenceNode:
		for _, c := range v.Content {
			if err := w.merge(c); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("yaml: merge value must be a mapping at line %d", v.Line)
}

func scalarKey(k *yaml.Node) (string, error) {
	if k.Kind == yaml.AliasNode {
		k = k.Alias
	}
	if k.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("yaml: non-scalar mapping key at line %d", k.Line)
	}
	return k.Value, nil
}

func (w *walker) scalar(n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		w.emit(eng.Token{Kind: eng.KindNull})
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		w.emit(eng.Token{Kind: eng.KindBool, Bool: b})
	case "!!int":
		num, err := intText(n.Value)
		if err != nil {
			return fmt.Errorf("yaml: line %d: %w", n.Line, err)
		}
		w.emit(eng.Token{Kind: eng.KindNumber, Number: num})
	case "!!float":
		num, err := floatText(n.Value)
		if err != nil {
			return fmt.Errorf("yaml: line %d: %w", n.Line, err)
		}
		w.emit(eng.Token{Kind: eng.KindNumber, Number: num})
	default:
		w.emit(eng.Token{Kind: eng.KindString, String: n.Value})
	}
	return nil
}

// intText renders a YAML integer (hex, octal, binary, underscores) as a JSON
// numeral.
func intText(s string) (string, error) {
	x, ok := new(big.Int).SetString(strings.ReplaceAll(s, "_", ""), 0)
	if !ok {
		return "", fmt.Errorf("invalid integer %q", s)
	}
	return x.String(), nil
}

var jsonNumeral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// floatText keeps the written digits when they already form a JSON numeral.
func floatText(s string) (string, error) {
	t := strings.TrimPrefix(strings.ReplaceAll(s, "_", ""), "+")
	if jsonNumeral.MatchString(t) {
		return t, nil
	}
	switch strings.ToLower(strings.TrimPrefix(t, "-")) {
	case ".inf", ".nan":
		return "", fmt.Errorf("%s is not representable in JSON", s)
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return "", fmt.Errorf("invalid float %q", s)
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}
