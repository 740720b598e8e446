package samd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Usage is the section footprint of a linked firmware image as printed by
// binutils size.
type Usage struct {
	Text uint32
	Data uint32
	BSS  uint32
}

// ParseSizeOutput reads the Berkeley format output of size. The last data
// line wins.
func ParseSizeOutput(r io.Reader) (Usage, error) {
	var (
		u     Usage
		found bool
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "text") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return Usage{}, fmt.Errorf("malformed size line %q", line)
		}
		var vals [3]uint32
		for i := range vals {
			v, err := strconv.ParseUint(fields[i], 10, 32)
			if err != nil {
				return Usage{}, fmt.Errorf("malformed size line %q: %w", line, err)
			}
			vals[i] = uint32(v)
		}
		u = Usage{Text: vals[0], Data: vals[1], BSS: vals[2]}
		found = true
	}
	if err := sc.Err(); err != nil {
		return Usage{}, err
	}
	if !found {
		return Usage{}, errors.New("no size data")
	}
	return u, nil
}

type MemoryInfo struct {
	FirmwareSize uint32
	FreeFlash    int64
	RAMSize      uint32
	FreeRAM      int64
}

func (m MemoryInfo) String() string {
	return fmt.Sprintf("%d bytes free in flash firmware space out of %d bytes (%.1fkB).\n"+
		"%d bytes free in ram for heap out of %d bytes (%.1fkB).",
		m.FreeFlash, m.FirmwareSize, float64(m.FirmwareSize)/1024,
		m.FreeRAM, m.RAMSize, float64(m.RAMSize)/1024)
}

// Report compares a firmware footprint with the plan. Initialised data is
// stored in flash and copied to RAM, so it counts against both. The linker
// does not fail when text and data overrun the firmware region, so
// ErrFlashOverflow is returned along with the info.
func Report(plan *LayoutPlan, u Usage) (MemoryInfo, error) {
	info := MemoryInfo{
		FirmwareSize: plan.Firmware.Size,
		FreeFlash:    int64(plan.Firmware.Size) - int64(u.Text) - int64(u.Data),
		RAMSize:      plan.Profile.RAMSize,
		FreeRAM:      int64(plan.Profile.RAMSize) - int64(u.Data) - int64(u.BSS),
	}
	if info.FreeFlash < 0 {
		return info, fmt.Errorf("%w: firmware needs %d more bytes", ErrFlashOverflow, -info.FreeFlash)
	}
	return info, nil
}
