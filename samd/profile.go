package samd

import (
	"fmt"
	"strings"

	"github.com/q0jt/go-samd/samd/config/chip"
)

const (
	kib = 1024

	// SRAM base shared by both families.
	RAMStart = 0x20000000
)

// Family selects one of the supported SAMD chip families. Every constant the
// layout depends on hangs off the family; nothing else branches on the part.
type Family int

const (
	SAMD21 Family = iota + 1
	SAMD51
)

type familyInfo struct {
	name           string
	bootloaderSize uint32
	defaultNVMSize uint32
	pageSize       uint32
	// reference part used by ProfileFor
	flashSize uint32
	ramSize   uint32
}

var families = map[Family]familyInfo{
	SAMD21: {
		name:           "samd21",
		bootloaderSize: 8 * kib,
		defaultNVMSize: 256,
		pageSize:       256,
		flashSize:      256 * kib,
		ramSize:        32 * kib,
	},
	SAMD51: {
		name:           "samd51",
		bootloaderSize: 16 * kib,
		defaultNVMSize: 8 * kib,
		pageSize:       512,
		flashSize:      512 * kib,
		ramSize:        192 * kib,
	},
}

func (f Family) String() string {
	if info, ok := families[f]; ok {
		return info.name
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

func (f Family) BootloaderSize() uint32 {
	return families[f].bootloaderSize
}

func (f Family) DefaultNVMSize() uint32 {
	return families[f].defaultNVMSize
}

// FilesystemSize returns the size of the internal filesystem when it is
// enabled without an explicit size.
func (f Family) FilesystemSize(flashSize uint32) uint32 {
	if f == SAMD51 {
		return flashSize / 2
	}
	return 64 * kib
}

func ParseFamily(s string) (Family, error) {
	for f, info := range families {
		if strings.EqualFold(s, info.name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFamily, s)
}

// ChipProfile holds the flash geometry of one part.
type ChipProfile struct {
	Family         Family
	Name           string
	FlashSize      uint32
	PageSize       uint32
	RAMSize        uint32
	DefaultNVMSize uint32
}

func (p ChipProfile) Validate() error {
	if _, ok := families[p.Family]; !ok {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, p.Family)
	}
	if p.PageSize == 0 {
		return fmt.Errorf("%w: zero page size", ErrInvalidProfile)
	}
	if p.FlashSize == 0 {
		return fmt.Errorf("%w: zero flash size", ErrInvalidProfile)
	}
	return nil
}

// ProfileFor returns the reference profile of a family.
func ProfileFor(f Family) (ChipProfile, error) {
	info, ok := families[f]
	if !ok {
		return ChipProfile{}, fmt.Errorf("%w: %v", ErrUnknownFamily, f)
	}
	return ChipProfile{
		Family:         f,
		Name:           info.name,
		FlashSize:      info.flashSize,
		PageSize:       info.pageSize,
		RAMSize:        info.ramSize,
		DefaultNVMSize: info.defaultNVMSize,
	}, nil
}

type part struct {
	family    Family
	flashSize uint32
	ramSize   uint32
}

var parts = map[chip.Chip]part{
	chip.Samd21e18a: {SAMD21, 256 * kib, 32 * kib},
	chip.Samd21g18a: {SAMD21, 256 * kib, 32 * kib},
	chip.Samd21j18a: {SAMD21, 256 * kib, 32 * kib},
	chip.Samd51g19a: {SAMD51, 512 * kib, 192 * kib},
	chip.Samd51j19a: {SAMD51, 512 * kib, 192 * kib},
	chip.Samd51j20a: {SAMD51, 1024 * kib, 256 * kib},
	chip.Samd51p20a: {SAMD51, 1024 * kib, 256 * kib},
}

// ProfileForChip returns the profile of a concrete part.
func ProfileForChip(c chip.Chip) (ChipProfile, error) {
	pt, ok := parts[c]
	if !ok {
		return ChipProfile{}, fmt.Errorf("%w: %q", ErrUnknownChip, c)
	}
	p, err := ProfileFor(pt.family)
	if err != nil {
		return ChipProfile{}, err
	}
	p.Name = c.String()
	p.FlashSize = pt.flashSize
	p.RAMSize = pt.ramSize
	return p, nil
}

// Chips returns every known part in name order.
func Chips() []chip.Chip {
	return []chip.Chip{
		chip.Samd21e18a,
		chip.Samd21g18a,
		chip.Samd21j18a,
		chip.Samd51g19a,
		chip.Samd51j19a,
		chip.Samd51j20a,
		chip.Samd51p20a,
	}
}

// ParseChip accepts a part number in any case.
func ParseChip(s string) (chip.Chip, error) {
	var c chip.Chip
	if err := c.UnmarshalBinary([]byte(strings.ToLower(s))); err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownChip, s)
	}
	return c, nil
}
