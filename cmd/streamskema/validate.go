package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	streamskema "github.com/reoring/streamskema"
)

type validateFlags struct {
	contentEncoding  string
	contentMediaType string
	maxProperties    int
	noDuplicateKeys  bool
	failFast         bool
	maxDepth         int
}

func newValidateCmd(g *globalFlags) *cobra.Command {
	f := &validateFlags{}
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate documents; content keywords apply to every string value",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := f.validator()
			g.logf(cmd, "validate: files=%d encoding=%q mediaType=%q", len(args), f.contentEncoding, f.contentMediaType)
			invalid := false
			for _, name := range args {
				in, err := g.open(cmd, name)
				if err != nil {
					return err
				}
				err = in.each(func(docName string, r streamskema.PullReader) error {
					return f.check(cmd, g, v, docName, r)
				})
				closeErr := in.done()
				var ce *codeError
				switch {
				case errors.As(err, &ce) && ce.code == exitInvalid:
					invalid = true
				case err != nil:
					return err
				case closeErr != nil:
					return &codeError{code: exitError, err: closeErr}
				}
			}
			if invalid {
				return &codeError{code: exitInvalid, err: errors.New("validation failed")}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.contentEncoding, "content-encoding", "", "contentEncoding keyword (base64)")
	cmd.Flags().StringVar(&f.contentMediaType, "content-media-type", "", "contentMediaType keyword (application/json)")
	cmd.Flags().IntVar(&f.maxProperties, "max-properties", -1, "maxProperties of the root object (-1 disables)")
	cmd.Flags().BoolVar(&f.noDuplicateKeys, "no-duplicate-keys", false, "reject repeated member names")
	cmd.Flags().BoolVar(&f.failFast, "fail-fast", false, "stop each document at its first failure")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "maximum nesting depth (0 = unlimited)")
	return cmd
}

func (f *validateFlags) validator() streamskema.SchemaValidator {
	var all streamskema.AllOf
	if cv, ok := streamskema.NewContentValidator(streamskema.ContentOptions{
		Encoding:  f.contentEncoding,
		MediaType: f.contentMediaType,
	}); ok {
		all = append(all, cv)
	}
	if f.maxProperties >= 0 {
		all = append(all, streamskema.MaxProperties{Limit: f.maxProperties})
	}
	if f.noDuplicateKeys {
		all = append(all, streamskema.NoDuplicateKeys{})
	}
	return all
}

func (f *validateFlags) check(cmd *cobra.Command, g *globalFlags, v streamskema.SchemaValidator, name string, r streamskema.PullReader) error {
	err := streamskema.Validate(cmd.Context(), v, r, streamskema.ValidateOpt{
		Parse:    streamskema.ParseOpt{InputSourceName: name, MaxDepth: f.maxDepth},
		FailFast: f.failFast,
	})
	out := cmd.OutOrStdout()
	if err == nil {
		g.logf(cmd, "%s: ok", name)
		return nil
	}
	if fs, ok := streamskema.AsValidationFailures(err); ok {
		for _, fr := range fs {
			fmt.Fprintf(out, "%s: %s %s\n", fr.Rule, fr.Message, fr.Location)
		}
		return &codeError{code: exitInvalid, err: err}
	}
	fmt.Fprintln(cmd.ErrOrStderr(), err)
	return &codeError{code: exitError, err: err}
}
