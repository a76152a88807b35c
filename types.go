package streamskema

// ParseOpt bundles parser adapter options.
type ParseOpt struct {
	// InputSourceName is reported in every Location.
	InputSourceName string
	// MaxDepth limits container nesting (0 = unlimited).
	MaxDepth int
	// MaxBytes limits consumed input when the driver reports offsets
	// (0 = unlimited).
	MaxBytes int64
}

// ValidateOpt configures a whole-document validation run.
type ValidateOpt struct {
	Parse ParseOpt
	// FailFast stops at the first failure instead of collecting all of them.
	FailFast bool
}

func lastParseOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}
