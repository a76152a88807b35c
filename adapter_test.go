package streamskema_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	streamskema "github.com/reoring/streamskema"
	eng "github.com/reoring/streamskema/internal/engine"
)

type recorded struct {
	tok streamskema.Token
	loc streamskema.Location
}

func record(out *[]recorded) streamskema.TokenSink {
	return streamskema.TokenSinkFunc(func(tok streamskema.Token, loc streamskema.Location) error {
		*out = append(*out, recorded{tok, loc})
		return nil
	})
}

func TestAdapter_ParseAllLevelsAndPointers(t *testing.T) {
	var got []recorded
	a := streamskema.NewAdapter(streamskema.StrictJSONDriver().NewBytes([]byte(`{"a":[1,{"b":null}],"c":{}}`)), record(&got))
	if err := a.ParseAll(); err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	want := []struct {
		typ   streamskema.TokenType
		ptr   string
		level int
	}{
		{streamskema.StartObject, "", 0},
		{streamskema.FieldName, "/a", 1},
		{streamskema.StartArray, "/a", 1},
		{streamskema.ValueNumber, "/a/0", 2},
		{streamskema.StartObject, "/a/1", 2},
		{streamskema.FieldName, "/a/1/b", 3},
		{streamskema.ValueNull, "/a/1/b", 3},
		{streamskema.EndObject, "/a/1", 2},
		{streamskema.EndArray, "/a", 1},
		{streamskema.FieldName, "/c", 1},
		{streamskema.StartObject, "/c", 1},
		{streamskema.EndObject, "/c", 1},
		{streamskema.EndObject, "", 0},
	}
	if len(got) != len(want) {
		t.Fatalf("want %d tokens, got %d", len(want), len(got))
	}
	for i, w := range want {
		g := got[i]
		if g.tok.Type != w.typ || g.loc.Pointer.String() != w.ptr || g.loc.Level != w.level {
			t.Fatalf("token %d: want %s %q level %d, got %s %q level %d",
				i, w.typ, w.ptr, w.level, g.tok.Type, g.loc.Pointer, g.loc.Level)
		}
	}
	if !a.State().AtRoot() || a.State().Level() != 0 {
		t.Fatalf("state not balanced after the document")
	}
}

func TestAdapter_FieldNameTracking(t *testing.T) {
	var got []recorded
	a := streamskema.NewAdapter(streamskema.StrictJSONDriver().NewBytes([]byte(`{"a":1,"b":2}`)), record(&got))
	if err := a.BeginObject(); err != nil {
		t.Fatal(err)
	}
	if n, err := a.NextName(); err != nil || n != "a" {
		t.Fatalf("NextName = %q, %v", n, err)
	}
	if v, err := a.NextInt64(); err != nil || v != 1 {
		t.Fatalf("NextInt64 = %d, %v", v, err)
	}
	if _, err := a.NextName(); err != nil {
		t.Fatal(err)
	}
	if _, err := a.NextInt32(); err != nil {
		t.Fatal(err)
	}
	if names := a.State().PropertyNames().Sorted(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("PropertyNames = %v", names)
	}
	if err := a.EndObject(); err != nil {
		t.Fatal(err)
	}

	// FieldName "b" sees only the names before it; its value sees both.
	fieldB, valueB, end := got[3], got[4], got[5]
	if fieldB.tok.Type != streamskema.FieldName || fieldB.loc.PropertyNames.Has("b") || !fieldB.loc.PropertyNames.Has("a") {
		t.Fatalf("field b saw %v", fieldB.loc.PropertyNames.Names())
	}
	if valueB.loc.PropertyNames.Len() != 2 {
		t.Fatalf("value 2 saw %v", valueB.loc.PropertyNames.Names())
	}
	if end.tok.Type != streamskema.EndObject || end.loc.PropertyNames.Len() != 2 {
		t.Fatalf("end object saw %v", end.loc.PropertyNames.Names())
	}
	// Earlier snapshots are not changed by later names.
	if got[1].loc.PropertyNames.Len() != 0 {
		t.Fatalf("field a snapshot mutated: %v", got[1].loc.PropertyNames.Names())
	}
}

func TestAdapter_ParseErrorCarriesLocation(t *testing.T) {
	a := streamskema.NewAdapter(streamskema.StrictJSONDriver().NewBytes([]byte(`{"a":}`)), nil)
	err := a.ParseAll()
	var pe *streamskema.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want *ParseError, got %T %v", err, err)
	}
	if pe.Location.Pointer.String() != "/a" {
		t.Fatalf("want error at /a, got %q", pe.Location.Pointer)
	}
}

func TestAdapter_TruncatedInput(t *testing.T) {
	err := streamskema.NewAdapter(streamskema.StrictJSONDriver().NewBytes([]byte(`[1,2`)), nil).ParseAll()
	var pe *streamskema.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want *ParseError, got %v", err)
	}
}

func TestAdapter_TrailingData(t *testing.T) {
	err := streamskema.NewAdapter(streamskema.StrictJSONDriver().NewBytes([]byte(`1 2`)), nil).ParseAll()
	if !errors.Is(err, eng.ErrTrailingData) {
		t.Fatalf("want trailing data error, got %v", err)
	}
}

func TestAdapter_TypeMismatchIsParseError(t *testing.T) {
	a := streamskema.NewAdapter(streamskema.StrictJSONDriver().NewBytes([]byte(`"x"`)), nil)
	_, err := a.NextInt64()
	var pe *streamskema.ParseError
	var me *streamskema.MismatchError
	if !errors.As(err, &pe) || !errors.As(err, &me) {
		t.Fatalf("want ParseError wrapping MismatchError, got %T %v", err, err)
	}
	if me.Want != streamskema.PullNumber || me.Got != streamskema.PullString {
		t.Fatalf("mismatch = %v", me)
	}
}

func TestAdapter_OverflowAfterTokenEmitted(t *testing.T) {
	var got []recorded
	a := streamskema.NewAdapter(streamskema.StrictJSONDriver().NewBytes([]byte(`[99999999999999999999]`)), record(&got))
	if err := a.BeginArray(); err != nil {
		t.Fatal(err)
	}
	_, err := a.NextInt64()
	if !errors.Is(err, streamskema.ErrOverflow) {
		t.Fatalf("want overflow, got %v", err)
	}
	var pe *streamskema.ParseError
	if errors.As(err, &pe) {
		t.Fatalf("overflow must not be a parse error")
	}
	last := got[len(got)-1]
	if last.tok.Type != streamskema.ValueNumber || last.tok.NumberText() != "99999999999999999999" {
		t.Fatalf("number token not emitted before the range check: %v", last.tok)
	}
	big, err := last.tok.BigInt()
	if err != nil || big.String() != "99999999999999999999" {
		t.Fatalf("exact value lost: %v %v", big, err)
	}
}

func TestAdapter_SinkErrorReturnedUnchanged(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	sink := streamskema.TokenSinkFunc(func(streamskema.Token, streamskema.Location) error {
		calls++
		if calls == 2 {
			return stop
		}
		return nil
	})
	err := streamskema.NewAdapter(streamskema.StrictJSONDriver().NewBytes([]byte(`[1,2,3]`)), sink).ParseAll()
	if err != stop {
		t.Fatalf("want sink error unchanged, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("parse continued after sink error: %d calls", calls)
	}
}

func TestMultiSink_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	var first, third int
	s := streamskema.MultiSink(
		streamskema.TokenSinkFunc(func(streamskema.Token, streamskema.Location) error { first++; return nil }),
		nil,
		streamskema.TokenSinkFunc(func(streamskema.Token, streamskema.Location) error { return boom }),
		streamskema.TokenSinkFunc(func(streamskema.Token, streamskema.Location) error { third++; return nil }),
	)
	if err := s.Consume(streamskema.TokenNull, streamskema.Location{}); err != boom {
		t.Fatalf("want boom, got %v", err)
	}
	if first != 1 || third != 0 {
		t.Fatalf("first=%d third=%d", first, third)
	}
}

func TestAdapter_NextStringAcceptsNumber(t *testing.T) {
	for _, text := range []string{"12.50", "1E+2", "1.0e-3", "-0", "99999999999999999999"} {
		var got []recorded
		a := streamskema.NewAdapter(streamskema.StrictJSONDriver().NewBytes([]byte(text)), record(&got))
		s, err := a.NextString()
		if err != nil {
			t.Fatalf("%s: %v", text, err)
		}
		if s != text {
			t.Fatalf("NextString = %q, want the numeral as written %q", s, text)
		}
		want := mustNumber(t, text)
		if len(got) != 1 || got[0].tok.Type != streamskema.ValueNumber || !got[0].tok.Equal(want) {
			t.Fatalf("want one number token %v, got %v", want, got)
		}
	}
}

// kindReader reports a kind no reader defines.
type kindReader struct{ streamskema.PullReader }

func (kindReader) Peek() (streamskema.PullKind, error) { return streamskema.PullKind(99), nil }
func (kindReader) Offset() int64                        { return -1 }

func TestAdapter_UnknownKindIsParseError(t *testing.T) {
	err := streamskema.NewAdapter(kindReader{}, nil).ParseAll()
	var pe *streamskema.ParseError
	if !errors.As(err, &pe) || !errors.Is(err, eng.ErrUnexpectedToken) {
		t.Fatalf("want parse error for unknown kind, got %v", err)
	}
}

func TestAdapter_MaxDepth(t *testing.T) {
	a := streamskema.NewAdapter(streamskema.StrictJSONDriver().NewBytes([]byte(`[[[1]]]`)), nil, streamskema.ParseOpt{MaxDepth: 2})
	err := a.ParseAll()
	var ie eng.IssueError
	if !errors.As(err, &ie) || ie.Code != eng.CodeMaxDepth {
		t.Fatalf("want max depth issue, got %v", err)
	}
	var pe *streamskema.ParseError
	if !errors.As(err, &pe) || pe.Location.Pointer.String() != "/0" {
		t.Fatalf("want parse error at /0, got %v", err)
	}

	if err := streamskema.NewAdapter(streamskema.StrictJSONDriver().NewBytes([]byte(`[[1]]`)), nil, streamskema.ParseOpt{MaxDepth: 2}).ParseAll(); err != nil {
		t.Fatalf("depth 2 must pass: %v", err)
	}
}

func TestAdapter_InputSourceName(t *testing.T) {
	var got []recorded
	a := streamskema.NewAdapter(streamskema.JSONReader(strings.NewReader(`{"k":true}`)), record(&got),
		streamskema.ParseOpt{}, streamskema.ParseOpt{InputSourceName: "cfg.json"})
	if err := a.ParseAll(); err != nil {
		t.Fatal(err)
	}
	if s := got[2].loc.String(); s != "at /k in cfg.json" {
		t.Fatalf("Location.String = %q", s)
	}
	if s := got[0].loc.String(); s != "at / in cfg.json" {
		t.Fatalf("root Location.String = %q", s)
	}
}

func TestAdapter_EmptyInput(t *testing.T) {
	err := streamskema.NewAdapter(streamskema.StrictJSONDriver().NewBytes(nil), nil).ParseAll()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("want unexpected EOF, got %v", err)
	}
}
