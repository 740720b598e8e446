package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/q0jt/go-samd/samd"
)

// ResolveOptions configures the resolve command.
type ResolveOptions struct {
	layout layoutOptions
	Format string
	Output string
}

var writers = map[string]func(io.Writer, *samd.LayoutPlan) error{
	"text":   samd.WriteText,
	"json":   samd.WriteJSON,
	"yaml":   samd.WriteYAML,
	"ld":     samd.WriteLinkerScript,
	"header": samd.WriteHeader,
	"pb": func(w io.Writer, p *samd.LayoutPlan) error {
		_, err := w.Write(samd.MarshalPlan(p))
		return err
	},
}

// RunResolve runs the resolve command.
func RunResolve(args []string, stdout, stderr io.Writer) int {
	var opts ResolveOptions
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts.layout.register(fs)
	fs.StringVar(&opts.Format, "format", "text", "output format: text, json, yaml, ld, header, pb")
	fs.StringVar(&opts.Output, "o", "", "write to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}

	write, ok := writers[opts.Format]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown format %q\n", opts.Format)
		return exitCommandError
	}

	logger := newLogger(stderr, opts.layout.verbose)
	plan, err := opts.layout.resolve(context.Background(), logger)
	if err != nil {
		return fail(stderr, err)
	}

	if opts.Output == "" {
		err = write(stdout, plan)
	} else {
		err = writeFile(opts.Output, func(w io.Writer) error {
			return write(w, plan)
		})
	}
	if err != nil {
		return fail(stderr, err)
	}
	logger.Debug("wrote layout", "format", opts.Format, "output", opts.Output)
	return exitSuccess
}
