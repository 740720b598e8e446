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

// RunCheck runs the check command.
func RunCheck(args []string, stdout, stderr io.Writer) int {
	var (
		layout layoutOptions
		image  string
		region string
	)
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	layout.register(fs)
	fs.StringVar(&image, "hex", "", "Intel HEX image to check")
	fs.StringVar(&region, "region", string(samd.Firmware), "region the image must fit in")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if image == "" {
		return fail(stderr, errors.New("-hex is required"))
	}

	name, err := samd.ParseRegionName(region)
	if err != nil {
		return fail(stderr, err)
	}
	plan, err := layout.resolve(context.Background(), newLogger(stderr, layout.verbose))
	if err != nil {
		return fail(stderr, err)
	}
	r, err := plan.Region(name)
	if err != nil {
		return fail(stderr, err)
	}

	f, err := os.Open(image)
	if err != nil {
		return fail(stderr, err)
	}
	defer f.Close()
	if err := samd.CheckHexImage(f, r); err != nil {
		return fail(stderr, fmt.Errorf("%s: %w", image, err))
	}
	fmt.Fprintf(stdout, "%s fits %s\n", image, r)
	return exitSuccess
}
