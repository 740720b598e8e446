package samd

import (
	"bytes"
	"errors"
	"io"

	"github.com/marcinbor85/gohex"
)

const erasedByte = 0xFF

func HexFileToBinary(b []byte) ([]byte, error) {
	mem, err := parseIntelHex(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	var size uint32
	for _, segment := range mem.GetDataSegments() {
		if end := segment.Address + uint32(len(segment.Data)); end > size {
			size = end
		}
	}
	return mem.ToBinary(0, size, erasedByte), nil
}

func parseIntelHex(r io.Reader) (*gohex.Memory, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, err
	}
	if len(mem.GetDataSegments()) == 0 {
		return nil, errors.New("intel hex image has no data")
	}
	return mem, nil
}

func checkSegments(mem *gohex.Memory, region Region) error {
	for _, segment := range mem.GetDataSegments() {
		size := uint32(len(segment.Data))
		end := uint64(segment.Address) + uint64(size)
		if segment.Address < region.Start || end > uint64(region.Start)+uint64(region.Size) {
			return &ImageOutOfRegionError{Region: region, Address: segment.Address, Size: size}
		}
	}
	return nil
}

// CheckHexImage reports an ImageOutOfRegionError if any data of the Intel
// HEX image falls outside region.
func CheckHexImage(r io.Reader, region Region) error {
	mem, err := parseIntelHex(r)
	if err != nil {
		return err
	}
	return checkSegments(mem, region)
}

// RegionBinary returns the contents of region taken from an Intel HEX
// image, padded with erased flash bytes. Data outside the region is
// ignored, so a full flash image yields just the region's window.
func RegionBinary(b []byte, region Region) ([]byte, error) {
	mem, err := parseIntelHex(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return mem.ToBinary(region.Start, region.Size, erasedByte), nil
}

// WriteRegionHex writes data as an Intel HEX image placed at the start of
// region.
func WriteRegionHex(w io.Writer, region Region, data []byte) error {
	if uint64(len(data)) > uint64(region.Size) {
		return &ImageOutOfRegionError{Region: region, Address: region.Start, Size: uint32(len(data))}
	}
	mem := gohex.NewMemory()
	if err := mem.AddBinary(region.Start, data); err != nil {
		return err
	}
	return mem.DumpIntelHex(w, 16)
}
