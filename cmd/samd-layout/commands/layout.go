package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/q0jt/go-samd/samd"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

// sizeFlag is an optional byte count. Sizes may carry a K or M suffix.
type sizeFlag struct {
	v *uint32
}

func (s *sizeFlag) String() string {
	if s == nil || s.v == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*s.v), 10)
}

func (s *sizeFlag) Set(v string) error {
	n, err := parseSize(v)
	if err != nil {
		return err
	}
	s.v = samd.Size(n)
	return nil
}

func parseSize(s string) (uint32, error) {
	mult := uint64(1)
	switch {
	case strings.HasSuffix(s, "K"), strings.HasSuffix(s, "k"):
		mult, s = 1024, s[:len(s)-1]
	case strings.HasSuffix(s, "M"), strings.HasSuffix(s, "m"):
		mult, s = 1024*1024, s[:len(s)-1]
	}
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	n *= mult
	if n > 1<<32-1 {
		return 0, fmt.Errorf("size %d does not fit in 32 bits", n)
	}
	return uint32(n), nil
}

// layoutOptions selects a chip profile and feature flags from the command line.
type layoutOptions struct {
	chip      string
	family    string
	boards    string
	board     string
	fs        bool
	calibrate bool
	nvmSize   sizeFlag
	fsSize    sizeFlag
	cfgSize   sizeFlag
	verbose   bool

	set *flag.FlagSet
}

// boardConflicts are flags that a board definition already decides.
var boardConflicts = map[string]bool{
	"chip":        true,
	"family":      true,
	"fs":          true,
	"calibrate":   true,
	"nvm-size":    true,
	"fs-size":     true,
	"config-size": true,
}

func (o *layoutOptions) register(fs *flag.FlagSet) {
	o.set = fs
	fs.StringVar(&o.chip, "chip", "", "part number, e.g. samd21g18a")
	fs.StringVar(&o.family, "family", "", "chip family reference profile: samd21 or samd51")
	fs.StringVar(&o.boards, "boards", "", "board definition file (.pkl, .yaml)")
	fs.StringVar(&o.board, "board", "", "board name in the -boards file")
	fs.BoolVar(&o.fs, "fs", false, "keep the filesystem in internal flash")
	fs.BoolVar(&o.calibrate, "calibrate", false, "reserve a page for crystalless calibration data")
	fs.Var(&o.nvmSize, "nvm-size", "override the NVM size")
	fs.Var(&o.fsSize, "fs-size", "override the filesystem size")
	fs.Var(&o.cfgSize, "config-size", "override the calibration config size")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")
}

func (o *layoutOptions) flags() samd.FeatureFlags {
	return samd.FeatureFlags{
		InternalFilesystem:   o.fs,
		CalibrateCrystalless: o.calibrate,
		NVMSize:              o.nvmSize.v,
		FilesystemSize:       o.fsSize.v,
		ConfigSize:           o.cfgSize.v,
	}
}

func (o *layoutOptions) resolve(ctx context.Context, logger *slog.Logger) (*samd.LayoutPlan, error) {
	if o.boards != "" || o.board != "" {
		return o.resolveBoard(ctx, logger)
	}

	var (
		profile samd.ChipProfile
		err     error
	)
	switch {
	case o.chip != "" && o.family != "":
		return nil, errors.New("-chip and -family are mutually exclusive")
	case o.chip != "":
		c, perr := samd.ParseChip(o.chip)
		if perr != nil {
			return nil, perr
		}
		profile, err = samd.ProfileForChip(c)
	case o.family != "":
		f, perr := samd.ParseFamily(o.family)
		if perr != nil {
			return nil, perr
		}
		profile, err = samd.ProfileFor(f)
	default:
		return nil, errors.New("one of -chip, -family or -boards/-board is required")
	}
	if err != nil {
		return nil, err
	}

	flags := o.flags()
	logger.Debug("resolving layout",
		"chip", profile.Name,
		"flash", profile.FlashSize,
		"page", profile.PageSize,
		"filesystem", flags.InternalFilesystem,
		"calibrate", flags.CalibrateCrystalless)
	return samd.Resolve(profile, flags)
}

func (o *layoutOptions) resolveBoard(ctx context.Context, logger *slog.Logger) (*samd.LayoutPlan, error) {
	if o.boards == "" || o.board == "" {
		return nil, errors.New("-boards and -board must be given together")
	}
	var conflicts []string
	if o.set != nil {
		o.set.Visit(func(f *flag.Flag) {
			if boardConflicts[f.Name] {
				conflicts = append(conflicts, "-"+f.Name)
			}
		})
	}
	if len(conflicts) > 0 {
		return nil, fmt.Errorf("%s cannot be combined with -board; set them in the board file",
			strings.Join(conflicts, ", "))
	}
	boards, err := samd.LoadBoards(ctx, o.boards, samd.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	b, err := samd.FindBoard(boards, o.board)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolving board layout", "board", b.Name, "chip", b.Chip)
	return b.Resolve()
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// exitCodeFor maps layout rule violations to exitValidation and everything
// else to exitCommandError.
func exitCodeFor(err error) int {
	var (
		misaligned *samd.MisalignedRegionError
		negative   *samd.NegativeFirmwareSizeError
		overlap    *samd.OverlappingRegionsError
		tiling     *samd.TilingError
		outside    *samd.ImageOutOfRegionError
	)
	switch {
	case errors.As(err, &misaligned),
		errors.As(err, &negative),
		errors.As(err, &overlap),
		errors.As(err, &tiling),
		errors.As(err, &outside),
		errors.Is(err, samd.ErrFlashOverflow):
		return exitValidation
	}
	return exitCommandError
}

// writeFile creates name, writes it with write and reports the close error,
// so a truncated file never passes as success.
func writeFile(name string, write func(io.Writer) error) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitCodeFor(err)
}
