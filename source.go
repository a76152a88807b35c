package streamskema

import (
	"io"
	"sync"

	eng "github.com/reoring/streamskema/internal/engine"
	jsonsrc "github.com/reoring/streamskema/source/json"
	yamlsrc "github.com/reoring/streamskema/source/yaml"
)

// PullReader is the pull parser contract the Adapter wraps. Numerals are
// returned as text by NextNumber.
type PullReader = eng.Reader

// PullKind enumerates what PullReader.Peek reports.
type PullKind = eng.Kind

const (
	PullBeginObject = eng.KindBeginObject
	PullEndObject   = eng.KindEndObject
	PullBeginArray  = eng.KindBeginArray
	PullEndArray    = eng.KindEndArray
	PullName        = eng.KindKey
	PullString      = eng.KindString
	PullNumber      = eng.KindNumber
	PullBool        = eng.KindBool
	PullNull        = eng.KindNull
	PullEndDocument = eng.KindEndDocument
)

// TokenSource is a push-shaped tokenizer; PullFrom adapts it to a PullReader.
type TokenSource = eng.TokenSource

// SourceToken is the token type produced by a TokenSource.
type SourceToken = eng.Token

// MismatchError reports a typed read on a token of another kind.
type MismatchError = eng.MismatchError

// PullFrom wraps a TokenSource as a PullReader, adding lookahead and grammar
// checks.
func PullFrom(src TokenSource) PullReader { return eng.NewPull(src) }

// JSONDriver converts JSON input into a PullReader via a pluggable SPI. The
// default implementation is based on encoding/json and may be swapped with
// SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) PullReader
	NewBytes(b []byte) PullReader
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default encoding/json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

// CurrentJSONDriver returns the driver used by JSONReader and JSONBytes.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// defaultJSONDriver wraps the encoding/json implementation.
type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) PullReader { return eng.NewPull(jsonsrc.NewReader(r)) }
func (defaultJSONDriver) NewBytes(b []byte) PullReader     { return eng.NewPull(jsonsrc.NewBytes(b)) }
func (defaultJSONDriver) Name() string                     { return "encoding/json" }

// StrictJSONDriver returns the encoding/json driver regardless of the global
// selection.
func StrictJSONDriver() JSONDriver { return defaultJSONDriver{} }

// JSONReader wraps an io.Reader as a JSON PullReader.
func JSONReader(r io.Reader) PullReader { return CurrentJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON PullReader.
func JSONBytes(b []byte) PullReader { return CurrentJSONDriver().NewBytes(b) }

// YAMLReader reads the first YAML document of r as JSON tokens.
func YAMLReader(r io.Reader) PullReader { return eng.NewPull(yamlsrc.NewReader(r)) }

// YAMLBytes reads the first YAML document in b as JSON tokens.
func YAMLBytes(b []byte) PullReader { return eng.NewPull(yamlsrc.NewBytes(b)) }

// YAMLDocuments reads every document of a YAML stream, calling fn with a
// PullReader per document until fn returns an error or the stream ends.
func YAMLDocuments(r io.Reader, fn func(doc int, pr PullReader) error) error {
	dec := yamlsrc.NewDecoder(r)
	for i := 0; ; i++ {
		src, err := dec.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &ParseError{Offset: -1, Err: err}
		}
		if err := fn(i, eng.NewPull(src)); err != nil {
			return err
		}
	}
}
