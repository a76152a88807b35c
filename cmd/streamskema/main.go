package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	streamskema "github.com/reoring/streamskema"
	"github.com/reoring/streamskema/i18n"
	drvgojson "github.com/reoring/streamskema/source/gojson"
)

// Exit codes.
const (
	exitOK      = 0
	exitInvalid = 1
	exitError   = 2
)

// codeError carries the process exit code through cobra's RunE.
type codeError struct {
	code int
	err  error
}

func (e *codeError) Error() string { return e.err.Error() }
func (e *codeError) Unwrap() error { return e.err }

type globalFlags struct {
	verbose bool
	goJSON  bool
	lang    string
	format  string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	if err == nil {
		return exitOK
	}
	var ce *codeError
	if errors.As(err, &ce) {
		return ce.code
	}
	fmt.Fprintln(stderr, "error:", err)
	return exitError
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "streamskema",
		Short:         "Stream JSON and YAML documents through schema keyword validators",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			i18n.SetLanguage(g.lang)
			if g.goJSON {
				streamskema.SetJSONDriver(drvgojson.Driver())
			} else {
				streamskema.UseDefaultJSONDriver()
			}
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logs")
	root.PersistentFlags().BoolVar(&g.goJSON, "go-json", false, "tokenize JSON with goccy/go-json")
	root.PersistentFlags().StringVar(&g.lang, "lang", "en", "message language (en, ja)")
	root.PersistentFlags().StringVar(&g.format, "format", "", "input format: json or yaml (default: by file extension)")

	root.AddCommand(newValidateCmd(g), newTokensCmd(g))
	return root
}

func (g *globalFlags) logf(cmd *cobra.Command, format string, a ...any) {
	if g.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", a...)
	}
}

// input is one document source named on the command line.
type input struct {
	name string
	r    io.Reader
	yaml bool
	done func() error
}

func (g *globalFlags) open(cmd *cobra.Command, name string) (*input, error) {
	in := &input{name: name, done: func() error { return nil }}
	if name == "-" {
		in.name = "<stdin>"
		in.r = cmd.InOrStdin()
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, &codeError{code: exitError, err: err}
		}
		in.r, in.done = f, f.Close
	}
	switch strings.ToLower(g.format) {
	case "yaml", "yml":
		in.yaml = true
	case "json":
	case "":
		ext := strings.ToLower(filepath.Ext(name))
		in.yaml = ext == ".yaml" || ext == ".yml"
	default:
		return nil, &codeError{code: exitError, err: fmt.Errorf("unknown format %q", g.format)}
	}
	return in, nil
}

// each calls fn with a reader per document: one for JSON, one per document
// of a YAML stream.
func (in *input) each(fn func(name string, r streamskema.PullReader) error) error {
	if !in.yaml {
		return fn(in.name, streamskema.JSONReader(in.r))
	}
	return streamskema.YAMLDocuments(in.r, func(doc int, r streamskema.PullReader) error {
		name := in.name
		if doc > 0 {
			name = fmt.Sprintf("%s#%d", in.name, doc)
		}
		return fn(name, r)
	})
}
