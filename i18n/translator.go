package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for rule names.
// data provides optional values for the {placeholders} of a message (for
// example, "reason", "limit" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"contentEncoding":  "Invalid base64 data: {reason}",
		"contentMediaType": "Invalid JSON: {reason}",
		"maxProperties":    "Object has more than {limit} properties",
		"duplicateKey":     "Duplicate key '{key}'",
		"parse_error":      "parse error",
		"overflow":         "numeric overflow",
	},
	"ja": {
		"contentEncoding":  "不正なbase64データです: {reason}",
		"contentMediaType": "不正なJSONです: {reason}",
		"maxProperties":    "プロパティ数が{limit}を超えています",
		"duplicateKey":     "キー'{key}'が重複しています",
		"parse_error":      "解析エラー",
		"overflow":         "数値がオーバーフローしました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		msg, ok = dictionaries["en"][code]
	}
	if !ok {
		return code
	}
	return expand(msg, data)
}

func expand(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
