package main

import (
	"fmt"

	"github.com/spf13/cobra"

	streamskema "github.com/reoring/streamskema"
)

func newTokensCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [FILE]",
		Short: "Print every token with its JSON Pointer and nesting level",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}
			in, err := g.open(cmd, name)
			if err != nil {
				return err
			}
			defer in.done()
			out := cmd.OutOrStdout()
			sink := streamskema.TokenSinkFunc(func(tok streamskema.Token, loc streamskema.Location) error {
				_, err := fmt.Fprintf(out, "%q\t%d\t%s\n", loc.Pointer.String(), loc.Level, tok)
				return err
			})
			err = in.each(func(docName string, r streamskema.PullReader) error {
				g.logf(cmd, "tokens: %s", docName)
				return streamskema.NewAdapter(r, sink, streamskema.ParseOpt{InputSourceName: docName}).ParseAll()
			})
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return &codeError{code: exitError, err: err}
			}
			return nil
		},
	}
}
