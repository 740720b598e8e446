package commands

import (
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/q0jt/go-samd/samd"
)

// RunChips lists the known parts.
func RunChips(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("chips", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CHIP\tFAMILY\tFLASH\tRAM\tPAGE\tBOOTLOADER\tNVM")
	for _, c := range samd.Chips() {
		p, err := samd.ProfileForChip(c)
		if err != nil {
			return fail(stderr, err)
		}
		fmt.Fprintf(tw, "%s\t%s\t%dK\t%dK\t%d\t%dK\t%d\n",
			c, p.Family, p.FlashSize/1024, p.RAMSize/1024, p.PageSize,
			p.Family.BootloaderSize()/1024, p.DefaultNVMSize)
	}
	if err := tw.Flush(); err != nil {
		return fail(stderr, err)
	}
	return exitSuccess
}
