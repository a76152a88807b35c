package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("contentEncoding", map[string]string{"reason": "bad"}); msg != "Invalid base64 data: bad" {
		t.Fatalf("unexpected message %q", msg)
	}

	SetLanguage("ja")
	defer SetLanguage("en")
	if msg := T("contentMediaType", map[string]string{"reason": "x"}); msg != "不正なJSONです: x" {
		t.Fatalf("expected japanese message, got %q", msg)
	}
}

func TestTranslator_UnknownCodeEchoesCode(t *testing.T) {
	if msg := T("no_such_rule", nil); msg != "no_such_rule" {
		t.Fatalf("want code echoed, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X-" + code }

func TestSetTranslator_ReplacesAndResets(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("maxProperties", nil); msg != "X-maxProperties" {
		t.Fatalf("custom translator not used: %q", msg)
	}
	SetTranslator(nil)
	if msg := T("maxProperties", map[string]string{"limit": "2"}); msg != "Object has more than 2 properties" {
		t.Fatalf("want default translator after reset, got %q", msg)
	}
}
