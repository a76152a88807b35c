package gojson

import (
	"context"
	"testing"

	streamskema "github.com/reoring/streamskema"
)

func TestDriver_TokensMatchDefault(t *testing.T) {
	doc := []byte(`{"id":12345678901234567890,"price":19.990,"tags":["a","b"],"ok":true,"none":null,"nested":{"k":"v"}}`)
	collect := func(r streamskema.PullReader) []streamskema.Token {
		var out []streamskema.Token
		sink := streamskema.TokenSinkFunc(func(tok streamskema.Token, _ streamskema.Location) error {
			out = append(out, tok)
			return nil
		})
		if err := streamskema.NewAdapter(r, sink).ParseAll(); err != nil {
			t.Fatalf("ParseAll: %v", err)
		}
		return out
	}
	got := collect(Driver().NewBytes(doc))
	want := collect(streamskema.StrictJSONDriver().NewBytes(doc))
	if len(got) != len(want) {
		t.Fatalf("token count %d vs %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("token %d: go-json %v, encoding/json %v", i, got[i], want[i])
		}
	}
}

func TestDriver_AsGlobal(t *testing.T) {
	streamskema.SetJSONDriver(Driver())
	defer streamskema.UseDefaultJSONDriver()
	if name := streamskema.CurrentJSONDriver().Name(); name != "go-json" {
		t.Fatalf("current driver %q", name)
	}
	err := streamskema.ValidateJSON(context.Background(), streamskema.MaxProperties{Limit: 1}, []byte(`{"a":1,"b":2}`))
	if fs, ok := streamskema.AsValidationFailures(err); !ok || fs[0].Rule != streamskema.RuleMaxProperties {
		t.Fatalf("want maxProperties failure, got %v", err)
	}
}

func TestDriver_Truncated(t *testing.T) {
	err := streamskema.NewAdapter(Driver().NewBytes([]byte(`{"a":[1,2`)), nil).ParseAll()
	if err == nil {
		t.Fatalf("truncated input accepted")
	}
}
