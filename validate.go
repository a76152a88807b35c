package streamskema

import (
	"context"
	"fmt"
)

// Validate runs v over the document read from r. It creates one instance at
// level 0, feeds it every token and returns ValidationFailures when any
// token failed. Parse errors are returned as *ParseError. ctx is checked
// around every token and reaches instances of a ContextValidator.
func Validate(ctx context.Context, v SchemaValidator, r PullReader, opts ...ValidateOpt) error {
	var opt ValidateOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	inst := NewInstance(ctx, v, 0)
	var failures ValidationFailures
	sink := TokenSinkFunc(func(tok Token, loc Location) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		res := inst.Validate(tok, loc)
		if err := ctx.Err(); err != nil {
			return err
		}
		if res == nil || res.Valid() {
			return nil
		}
		f, ok := res.(*FailedResult)
		if !ok {
			f = Failed("unknown", fmt.Sprint(res), loc)
		}
		failures = append(failures, f)
		if opt.FailFast {
			return failures
		}
		return nil
	})
	if err := NewAdapter(r, sink, opt.Parse).ParseAll(); err != nil {
		return err
	}
	if len(failures) > 0 {
		return failures
	}
	return nil
}

// ValidateJSON validates a JSON document held in memory using the current
// JSON driver.
func ValidateJSON(ctx context.Context, v SchemaValidator, data []byte, opts ...ValidateOpt) error {
	return Validate(ctx, v, JSONBytes(data), opts...)
}
