package samd

import (
	"fmt"
	"strings"
)

type RegionName string

const (
	Bootloader        RegionName = "bootloader"
	Firmware          RegionName = "firmware"
	Filesystem        RegionName = "filesystem"
	CalibrationConfig RegionName = "config"
	NVM               RegionName = "nvm"
)

// RegionNames lists the regions in ascending address order.
var RegionNames = []RegionName{Bootloader, Firmware, Filesystem, CalibrationConfig, NVM}

func ParseRegionName(s string) (RegionName, error) {
	for _, name := range RegionNames {
		if strings.EqualFold(s, string(name)) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRegion, s)
}

// Region is a contiguous byte range of flash reserved for one purpose.
type Region struct {
	Name  RegionName `json:"name" yaml:"name"`
	Start uint32     `json:"start" yaml:"start"`
	Size  uint32     `json:"size" yaml:"size"`
}

// End returns the first address past the region.
func (r Region) End() uint32 {
	return r.Start + r.Size
}

func (r Region) Contains(addr uint32) bool {
	return addr >= r.Start && uint64(addr) < uint64(r.Start)+uint64(r.Size)
}

func (r Region) overlaps(o Region) bool {
	if r.Size == 0 || o.Size == 0 {
		return false
	}
	return uint64(r.Start) < uint64(o.Start)+uint64(o.Size) &&
		uint64(o.Start) < uint64(r.Start)+uint64(r.Size)
}

func (r Region) String() string {
	return fmt.Sprintf("%s [%#08x, %#08x) %d bytes", r.Name, r.Start, r.End(), r.Size)
}

// LayoutPlan is the resolved flash layout of one build configuration.
type LayoutPlan struct {
	Profile ChipProfile

	Bootloader        Region
	Firmware          Region
	Filesystem        Region
	CalibrationConfig Region
	NVM               Region
}

// Regions returns the five regions in ascending address order.
func (p *LayoutPlan) Regions() []Region {
	return []Region{p.Bootloader, p.Firmware, p.Filesystem, p.CalibrationConfig, p.NVM}
}

func (p *LayoutPlan) Region(name RegionName) (Region, error) {
	for _, r := range p.Regions() {
		if r.Name == name {
			return r, nil
		}
	}
	return Region{}, fmt.Errorf("%w: %q", ErrUnknownRegion, name)
}

// Validate checks that the plan is page aligned and that its regions tile
// [0, FlashSize) without gaps or overlaps.
func (p *LayoutPlan) Validate() error {
	if err := p.Profile.Validate(); err != nil {
		return err
	}
	page := p.Profile.PageSize
	for _, r := range []Region{p.Bootloader, p.NVM, p.CalibrationConfig, p.Filesystem, p.Firmware} {
		if r.Start%page != 0 {
			return &MisalignedRegionError{Region: r.Name, Boundary: BoundaryStart, Value: int64(r.Start), PageSize: page}
		}
		if r.Size%page != 0 {
			return &MisalignedRegionError{Region: r.Name, Boundary: BoundarySize, Value: int64(r.Size), PageSize: page}
		}
	}

	regions := p.Regions()
	for i := range regions {
		for j := i + 1; j < len(regions); j++ {
			if regions[i].overlaps(regions[j]) {
				return &OverlappingRegionsError{A: regions[i], B: regions[j]}
			}
		}
	}

	var next uint64
	for _, r := range regions {
		if uint64(r.Start) != next {
			return &TilingError{Region: r.Name, Got: uint64(r.Start), Want: next}
		}
		next += uint64(r.Size)
	}
	if next != uint64(p.Profile.FlashSize) {
		return &TilingError{Got: next, Want: uint64(p.Profile.FlashSize)}
	}
	return nil
}
