package samd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FlashDump is a full image of on-chip flash read back from a device.
type FlashDump struct {
	r    io.ReaderAt
	plan *LayoutPlan
}

// OpenFlashDump reads a raw (.bin) or Intel HEX (.hex) flash dump. Dumps
// shorter than flash are treated as erased past their end.
func OpenFlashDump(name string, plan *LayoutPlan) (*FlashDump, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if isHexFile(name) {
		mem, err := parseIntelHex(bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		flash := Region{Start: 0, Size: plan.Profile.FlashSize}
		if err := checkSegments(mem, flash); err != nil {
			return nil, err
		}
		b = mem.ToBinary(0, plan.Profile.FlashSize, erasedByte)
	}
	return NewFlashDump(b, plan)
}

func isHexFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".hex")
}

func NewFlashDump(b []byte, plan *LayoutPlan) (*FlashDump, error) {
	flash := int(plan.Profile.FlashSize)
	if len(b) > flash {
		return nil, fmt.Errorf("flash dump is %d bytes, %s has %d", len(b), plan.Profile.Name, flash)
	}
	if len(b) < flash {
		img := bytes.Repeat([]byte{erasedByte}, flash)
		copy(img, b)
		b = img
	}
	return &FlashDump{r: bytes.NewReader(b), plan: plan}, nil
}

// Extract returns a copy of the bytes stored in the named region.
func (f *FlashDump) Extract(name RegionName) ([]byte, error) {
	region, err := f.plan.Region(name)
	if err != nil {
		return nil, err
	}
	out := make([]byte, region.Size)
	if region.Size == 0 {
		return out, nil
	}
	if _, err := f.r.ReadAt(out, int64(region.Start)); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *FlashDump) ExtractBootloader() ([]byte, error) {
	return f.Extract(Bootloader)
}

func (f *FlashDump) ExtractFirmware() ([]byte, error) {
	return f.Extract(Firmware)
}

// IsErased reports whether every byte of the region reads as erased flash.
func (f *FlashDump) IsErased(name RegionName) (bool, error) {
	b, err := f.Extract(name)
	if err != nil {
		return false, err
	}
	return bytes.Equal(b, bytes.Repeat([]byte{erasedByte}, len(b))), nil
}
