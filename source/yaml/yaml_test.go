package yaml

import (
	"errors"
	"io"
	"strings"
	"testing"

	eng "github.com/reoring/streamskema/internal/engine"
)

func all(t *testing.T, src eng.TokenSource) []eng.Token {
	t.Helper()
	var out []eng.Token
	for {
		tok, err := src.NextToken()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("NextToken: %v", err)
		}
		out = append(out, tok)
	}
}

func TestScalars(t *testing.T) {
	toks := all(t, NewBytes([]byte("a: 0x1F\nb: 1_000\nc: 2.50\nd: 1e3\ne: yes\nf: true\ng: ~\nh: '12'\n")))
	type kv struct {
		kind eng.Kind
		text string
	}
	want := []kv{
		{eng.KindNumber, "31"},
		{eng.KindNumber, "1000"},
		{eng.KindNumber, "2.50"},
		{eng.KindNumber, "1e3"},
		{eng.KindString, "yes"},
		{eng.KindBool, ""},
		{eng.KindNull, ""},
		{eng.KindString, "12"},
	}
	// skip the object start and every key
	var vals []eng.Token
	for i := 2; i < len(toks); i += 2 {
		vals = append(vals, toks[i])
	}
	for i, w := range want {
		v := vals[i]
		if v.Kind != w.kind {
			t.Fatalf("value %d: want %s, got %s", i, w.kind, v.Kind)
		}
		switch v.Kind {
		case eng.KindNumber:
			if v.Number != w.text {
				t.Fatalf("value %d: want %q, got %q", i, w.text, v.Number)
			}
		case eng.KindString:
			if v.String != w.text {
				t.Fatalf("value %d: want %q, got %q", i, w.text, v.String)
			}
		case eng.KindBool:
			if !v.Bool {
				t.Fatalf("value %d: want true", i)
			}
		}
	}
}

func TestAnchorsAndMerge(t *testing.T) {
	doc := "base: &b {x: 1}\nother:\n  <<: *b\n  y: 2\nref: *b\n"
	var keys []string
	for _, tok := range all(t, NewBytes([]byte(doc))) {
		if tok.Kind == eng.KindKey {
			keys = append(keys, tok.String)
		}
	}
	if got := strings.Join(keys, ","); got != "base,x,other,x,y,ref,x" {
		t.Fatalf("keys = %s", got)
	}
}

func TestNonFiniteFloat(t *testing.T) {
	src := NewBytes([]byte("v: .inf\n"))
	if _, err := src.NextToken(); err == nil {
		t.Fatalf(".inf must be rejected")
	}
}

func TestDecoder_Documents(t *testing.T) {
	dec := NewDecoder(strings.NewReader("a: 1\n---\n[1, 2]\n---\n"))
	var n int
	for {
		src, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("doc %d: %v", n, err)
		}
		if len(all(t, src)) == 0 {
			t.Fatalf("doc %d produced no tokens", n)
		}
		n++
	}
	if n < 2 {
		t.Fatalf("want at least 2 documents, got %d", n)
	}
}

func TestEmptyInput(t *testing.T) {
	if _, err := NewBytes(nil).NextToken(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("want unexpected EOF, got %v", err)
	}
}
