package samd

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of proto/layout.proto.
const (
	planFamilyField    protowire.Number = 1
	planChipField      protowire.Number = 2
	planFlashSizeField protowire.Number = 3
	planPageSizeField  protowire.Number = 4
	planRAMSizeField   protowire.Number = 5
	planNVMSizeField   protowire.Number = 6
	planRegionField    protowire.Number = 7

	regionNameField  protowire.Number = 1
	regionStartField protowire.Number = 2
	regionSizeField  protowire.Number = 3
)

// MarshalPlan encodes the plan as a LayoutPlan protobuf message.
func MarshalPlan(p *LayoutPlan) []byte {
	var b []byte
	b = protowire.AppendTag(b, planFamilyField, protowire.BytesType)
	b = protowire.AppendString(b, p.Profile.Family.String())
	b = protowire.AppendTag(b, planChipField, protowire.BytesType)
	b = protowire.AppendString(b, p.Profile.Name)
	b = appendUint32(b, planFlashSizeField, p.Profile.FlashSize)
	b = appendUint32(b, planPageSizeField, p.Profile.PageSize)
	b = appendUint32(b, planRAMSizeField, p.Profile.RAMSize)
	b = appendUint32(b, planNVMSizeField, p.Profile.DefaultNVMSize)
	for _, r := range p.Regions() {
		var rb []byte
		rb = protowire.AppendTag(rb, regionNameField, protowire.BytesType)
		rb = protowire.AppendString(rb, string(r.Name))
		rb = appendUint32(rb, regionStartField, r.Start)
		rb = appendUint32(rb, regionSizeField, r.Size)
		b = protowire.AppendTag(b, planRegionField, protowire.BytesType)
		b = protowire.AppendBytes(b, rb)
	}
	return b
}

func appendUint32(b []byte, num protowire.Number, v uint32) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

// UnmarshalPlan decodes a LayoutPlan message and validates it.
func UnmarshalPlan(b []byte) (*LayoutPlan, error) {
	var (
		p    LayoutPlan
		seen = make(map[RegionName]bool)
	)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == planFamilyField && typ == protowire.BytesType:
			var s string
			s, n = protowire.ConsumeString(b)
			if n >= 0 {
				f, err := ParseFamily(s)
				if err != nil {
					return nil, err
				}
				p.Profile.Family = f
			}
		case num == planChipField && typ == protowire.BytesType:
			p.Profile.Name, n = protowire.ConsumeString(b)
		case num == planRegionField && typ == protowire.BytesType:
			var rb []byte
			rb, n = protowire.ConsumeBytes(b)
			if n >= 0 {
				r, err := unmarshalRegion(rb)
				if err != nil {
					return nil, err
				}
				if seen[r.Name] {
					return nil, fmt.Errorf("duplicate region %s", r.Name)
				}
				seen[r.Name] = true
				p.setRegion(r)
			}
		case typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			if n >= 0 {
				p.Profile.setField(num, uint32(v))
			}
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
	}
	for _, name := range RegionNames {
		if !seen[name] {
			return nil, fmt.Errorf("missing region %s", name)
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func unmarshalRegion(b []byte) (Region, error) {
	var r Region
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Region{}, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == regionNameField && typ == protowire.BytesType:
			var s string
			s, n = protowire.ConsumeString(b)
			if n >= 0 {
				name, err := ParseRegionName(s)
				if err != nil {
					return Region{}, err
				}
				r.Name = name
			}
		case num == regionStartField && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			r.Start = uint32(v)
		case num == regionSizeField && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			r.Size = uint32(v)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return Region{}, protowire.ParseError(n)
		}
		b = b[n:]
	}
	if r.Name == "" {
		return Region{}, errors.New("region without a name")
	}
	return r, nil
}

func (p *ChipProfile) setField(num protowire.Number, v uint32) {
	switch num {
	case planFlashSizeField:
		p.FlashSize = v
	case planPageSizeField:
		p.PageSize = v
	case planRAMSizeField:
		p.RAMSize = v
	case planNVMSizeField:
		p.DefaultNVMSize = v
	}
}

func (p *LayoutPlan) setRegion(r Region) {
	switch r.Name {
	case Bootloader:
		p.Bootloader = r
	case Firmware:
		p.Firmware = r
	case Filesystem:
		p.Filesystem = r
	case CalibrationConfig:
		p.CalibrationConfig = r
	case NVM:
		p.NVM = r
	}
}
