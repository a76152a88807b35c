package streamskema

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/reoring/streamskema/i18n"
)

// Recognized content options, compared after lower-casing.
const (
	EncodingBase64       = "base64"
	MediaTypeJSON        = "application/json"
	maxContentParseDepth = 512
)

// ContentOptions configures a ContentValidator. Empty strings mean the
// keyword is absent.
type ContentOptions struct {
	Encoding  string
	MediaType string
	// Schema optionally validates the decoded document when MediaType is
	// application/json.
	Schema SchemaValidator
}

// ContentValidator checks string values against contentEncoding and
// contentMediaType: the text is decoded first, then the decoded payload is
// parsed as the declared media type. It is stateless and safe for concurrent
// use.
type ContentValidator struct {
	encoding  string
	mediaType string
	schema    SchemaValidator
}

// NewContentValidator returns the validator, or ok=false when neither
// keyword is present and no validator is needed.
func NewContentValidator(opt ContentOptions) (v *ContentValidator, ok bool) {
	if opt.Encoding == "" && opt.MediaType == "" {
		return nil, false
	}
	return &ContentValidator{
		encoding:  strings.ToLower(opt.Encoding),
		mediaType: strings.ToLower(opt.MediaType),
		schema:    opt.Schema,
	}, true
}

// Encoding returns the normalized contentEncoding.
func (v *ContentValidator) Encoding() string { return v.encoding }

// MediaType returns the normalized contentMediaType.
func (v *ContentValidator) MediaType() string { return v.mediaType }

func (v *ContentValidator) CreateInstance(int) Instance { return v }

// CreateInstanceContext returns an instance whose nested parses stop when ctx
// is done.
func (v *ContentValidator) CreateInstanceContext(ctx context.Context, _ int) Instance {
	return InstanceFunc(func(tok Token, loc Location) ValidationResult {
		return v.validate(ctx, tok, loc)
	})
}

func (v *ContentValidator) RecordUnknownRefs(refs *RefSet) {
	if v.schema != nil {
		v.schema.RecordUnknownRefs(refs)
	}
}

// Validate checks tok without a caller context.
func (v *ContentValidator) Validate(tok Token, loc Location) ValidationResult {
	return v.validate(context.Background(), tok, loc)
}

func (v *ContentValidator) validate(ctx context.Context, tok Token, loc Location) ValidationResult {
	if tok.Type != ValueText {
		return Ok
	}
	decoded := v.decode(tok.Text, loc)
	if f := decoded.Failure(); f != nil {
		return f
	}
	return v.checkMediaType(ctx, decoded, loc)
}

func (v *ContentValidator) decode(s string, loc Location) DecodingResult {
	switch v.encoding {
	case EncodingBase64:
		b, err := decodeBase64(s)
		if err != nil {
			return DecodingFailed(Failed(RuleContentEncoding,
				i18n.T(RuleContentEncoding, map[string]string{"reason": err.Error()}), loc))
		}
		return DecodedBytes(b)
	default:
		return DecodedString(s)
	}
}

// decodeBase64 accepts the standard and URL-safe alphabets, with or without
// padding, and ignores ASCII whitespace such as MIME line breaks.
func decodeBase64(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
	enc := base64.StdEncoding
	if strings.ContainsAny(clean, "-_") {
		enc = base64.URLEncoding
	}
	if !strings.HasSuffix(clean, "=") {
		enc = enc.WithPadding(base64.NoPadding)
	}
	return enc.DecodeString(clean)
}

// checkMediaType parses the decoded payload. A canceled ctx yields no opinion;
// the caller's run reports the cancellation.
func (v *ContentValidator) checkMediaType(ctx context.Context, decoded DecodingResult, loc Location) ValidationResult {
	if v.mediaType != MediaTypeJSON {
		return Ok
	}
	text, _ := decoded.Text()
	r := StrictJSONDriver().NewBytes([]byte(text))
	opt := ParseOpt{InputSourceName: "content " + loc.String(), MaxDepth: maxContentParseDepth}

	var schema SchemaValidator = AllOf{}
	if v.schema != nil {
		schema = v.schema
	}
	err := Validate(ctx, schema, r, ValidateOpt{Parse: opt, FailFast: true})
	if err == nil {
		return Ok
	}
	if ctx.Err() != nil {
		return nil
	}
	if fs, ok := AsValidationFailures(err); ok && len(fs) > 0 {
		return fs[0]
	}
	reason := err.Error()
	var pe *ParseError
	if errors.As(err, &pe) {
		reason = pe.Err.Error()
	}
	return Failed(RuleContentMediaType, i18n.T(RuleContentMediaType, map[string]string{"reason": reason}), loc)
}
