// Package streamskema is the streaming core of a JSON Schema validator.
//
// - An Adapter wraps a pull parser (PullReader), turns every primitive read
//   into a canonical Token and tracks the document position (Location:
//   JSON Pointer, nesting level, sibling field names)
// - Numbers are kept exact: integers as *big.Int, decimals as
//   decimal.Decimal; narrowing reads fail with *OverflowError instead of
//   truncating
// - Schema keywords implement SchemaValidator/Instance and return Ok, a
//   *FailedResult, or nil per token; ContentValidator shows the decode then
//   re-parse shape
//
// Design policy:
// - Keep public APIs in the root package; the token source contract and the
//   enforcement wrapper live under internal/engine.
// - Drivers live under source/: encoding/json (default), goccy/go-json
//   (import _ "github.com/reoring/streamskema/source" to make it the
//   default) and YAML via gopkg.in/yaml.v3.
//
// Typical usage:
//
//	v, _ := streamskema.NewContentValidator(streamskema.ContentOptions{
//		Encoding:  "base64",
//		MediaType: "application/json",
//	})
//	err := streamskema.Validate(ctx, v, streamskema.JSONBytes(data))
//	if fs, ok := streamskema.AsValidationFailures(err); ok {
//		for _, f := range fs {
//			fmt.Println(f.Rule, f.Message, f.Location)
//		}
//	}
package streamskema
