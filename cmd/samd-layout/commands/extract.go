package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/q0jt/go-samd/samd"
)

// RunExtract runs the extract command. An output name ending in .hex is
// written as Intel HEX placed at the region's address.
func RunExtract(args []string, stdout, stderr io.Writer) int {
	var (
		layout layoutOptions
		dump   string
		region string
		output string
	)
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(stderr)
	layout.register(fs)
	fs.StringVar(&dump, "dump", "", "flash dump (.bin or .hex)")
	fs.StringVar(&region, "region", string(samd.Firmware), "region to extract")
	fs.StringVar(&output, "o", "", "output file (.bin or .hex)")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if dump == "" || output == "" {
		return fail(stderr, errors.New("-dump and -o are required"))
	}

	name, err := samd.ParseRegionName(region)
	if err != nil {
		return fail(stderr, err)
	}
	logger := newLogger(stderr, layout.verbose)
	plan, err := layout.resolve(context.Background(), logger)
	if err != nil {
		return fail(stderr, err)
	}
	r, err := plan.Region(name)
	if err != nil {
		return fail(stderr, err)
	}
	fd, err := samd.OpenFlashDump(dump, plan)
	if err != nil {
		return fail(stderr, err)
	}
	b, err := fd.Extract(name)
	if err != nil {
		return fail(stderr, err)
	}
	erased, err := fd.IsErased(name)
	if err != nil {
		return fail(stderr, err)
	}
	if erased {
		logger.Warn("region is erased", "region", name)
	}

	if strings.EqualFold(filepath.Ext(output), ".hex") {
		err = writeFile(output, func(w io.Writer) error {
			return samd.WriteRegionHex(w, r, b)
		})
	} else {
		err = os.WriteFile(output, b, 0o644)
	}
	if err != nil {
		return fail(stderr, err)
	}
	fmt.Fprintf(stdout, "wrote %d bytes of %s to %s\n", len(b), name, output)
	return exitSuccess
}
