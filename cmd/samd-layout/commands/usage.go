package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/q0jt/go-samd/samd"
)

// RunUsage runs the usage command. It reads binutils size output from
// stdin unless -size-file is given.
func RunUsage(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		layout   layoutOptions
		sizeFile string
	)
	fs := flag.NewFlagSet("usage", flag.ContinueOnError)
	fs.SetOutput(stderr)
	layout.register(fs)
	fs.StringVar(&sizeFile, "size-file", "", "file holding the output of size (default stdin)")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}

	plan, err := layout.resolve(context.Background(), newLogger(stderr, layout.verbose))
	if err != nil {
		return fail(stderr, err)
	}

	in := stdin
	if sizeFile != "" {
		f, err := os.Open(sizeFile)
		if err != nil {
			return fail(stderr, err)
		}
		defer f.Close()
		in = f
	}
	u, err := samd.ParseSizeOutput(in)
	if err != nil {
		return fail(stderr, err)
	}

	info, err := samd.Report(plan, u)
	fmt.Fprintf(stdout, "\n%s\n\n", info)
	if errors.Is(err, samd.ErrFlashOverflow) {
		fmt.Fprintln(stderr, "Too little flash!!!")
	}
	if err != nil {
		return fail(stderr, err)
	}
	return exitSuccess
}
