package samd

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidProfile = errors.New("samd: invalid chip profile")
	ErrUnknownFamily  = errors.New("samd: unknown chip family")
	ErrUnknownChip    = errors.New("samd: unknown chip")
	ErrUnknownBoard   = errors.New("samd: unknown board")
	ErrUnknownRegion  = errors.New("samd: unknown region")
	ErrFlashOverflow  = errors.New("samd: too little flash")
)

// Boundary names the edge of a region that broke the page alignment rule.
type Boundary int

const (
	BoundaryStart Boundary = iota
	BoundarySize
)

func (b Boundary) String() string {
	if b == BoundarySize {
		return "size"
	}
	return "start"
}

// MisalignedRegionError reports a region whose start address or size is not
// a multiple of the flash page size.
type MisalignedRegionError struct {
	Region   RegionName
	Boundary Boundary
	Value    int64
	PageSize uint32
}

func (e *MisalignedRegionError) Error() string {
	return fmt.Sprintf("%s %s %#x is not a multiple of the %d byte flash page",
		e.Region, e.Boundary, e.Value, e.PageSize)
}

// NegativeFirmwareSizeError reports that the regions growing down from the
// top of flash reach below the end of the bootloader.
type NegativeFirmwareSizeError struct {
	Size int64
}

func (e *NegativeFirmwareSizeError) Error() string {
	return fmt.Sprintf("no space left in flash for firmware after specifying other regions: computed size %d bytes",
		e.Size)
}

type OverlappingRegionsError struct {
	A Region
	B Region
}

func (e *OverlappingRegionsError) Error() string {
	return fmt.Sprintf("%s [%#08x, %#08x) overlaps %s [%#08x, %#08x)",
		e.A.Name, e.A.Start, e.A.End(), e.B.Name, e.B.Start, e.B.End())
}

// TilingError reports a plan whose regions leave a hole in flash or do not
// end exactly at the top of flash. An empty Region refers to the flash end.
type TilingError struct {
	Region RegionName
	Got    uint64
	Want   uint64
}

func (e *TilingError) Error() string {
	if e.Region == "" {
		return fmt.Sprintf("regions end at %#x, flash ends at %#x", e.Got, e.Want)
	}
	return fmt.Sprintf("%s starts at %#x, want %#x", e.Region, e.Got, e.Want)
}

// ImageOutOfRegionError reports image data placed outside the region it
// was checked against.
type ImageOutOfRegionError struct {
	Region  Region
	Address uint32
	Size    uint32
}

func (e *ImageOutOfRegionError) Error() string {
	return fmt.Sprintf("image data [%#08x, %#08x) lies outside %s [%#08x, %#08x)",
		e.Address, uint64(e.Address)+uint64(e.Size), e.Region.Name, e.Region.Start, e.Region.End())
}
