// Package samd derives the flash layout of SAMD21 and SAMD51 builds.
//
// Flash is split into five page-aligned regions. The bootloader and the
// firmware grow up from address 0; the NVM block, the calibration config
// block and the internal filesystem grow down from the top of flash. The
// firmware gets whatever is left between the two groups.
package samd

type bound struct {
	name  RegionName
	start int64
	size  int64
}

// Resolve computes the layout for a chip profile and a set of feature flags.
// It fails closed: an unaligned region or a firmware region that would have
// to shrink below zero is an error, never a clamped value.
func Resolve(profile ChipProfile, flags FeatureFlags) (*LayoutPlan, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	page := int64(profile.PageSize)
	flash := int64(profile.FlashSize)

	boot := bound{name: Bootloader, start: 0, size: int64(profile.Family.BootloaderSize())}
	fw := bound{name: Firmware, start: boot.start + boot.size}

	nvm := bound{name: NVM, size: int64(profile.DefaultNVMSize)}
	if flags.NVMSize != nil {
		nvm.size = int64(*flags.NVMSize)
	}
	nvm.start = flash - nvm.size

	cfg := bound{name: CalibrationConfig}
	switch {
	case flags.ConfigSize != nil:
		cfg.size = int64(*flags.ConfigSize)
	case flags.CalibrateCrystalless:
		cfg.size = page
	}
	cfg.start = nvm.start - cfg.size

	fs := bound{name: Filesystem, size: filesystemSize(profile, flags)}
	fs.start = cfg.start - fs.size

	fw.size = fs.start - fw.start

	for _, b := range []bound{boot, nvm, cfg, fs, fw} {
		if b.start%page != 0 {
			return nil, &MisalignedRegionError{Region: b.name, Boundary: BoundaryStart, Value: b.start, PageSize: profile.PageSize}
		}
		if b.size%page != 0 {
			return nil, &MisalignedRegionError{Region: b.name, Boundary: BoundarySize, Value: b.size, PageSize: profile.PageSize}
		}
	}
	// fw.size >= 0 keeps every start above zero, so the conversions below
	// cannot wrap.
	if fw.size < 0 {
		return nil, &NegativeFirmwareSizeError{Size: fw.size}
	}

	return &LayoutPlan{
		Profile:           profile,
		Bootloader:        boot.region(),
		Firmware:          fw.region(),
		Filesystem:        fs.region(),
		CalibrationConfig: cfg.region(),
		NVM:               nvm.region(),
	}, nil
}

func filesystemSize(profile ChipProfile, flags FeatureFlags) int64 {
	if !flags.InternalFilesystem {
		return 0
	}
	if flags.FilesystemSize != nil {
		return int64(*flags.FilesystemSize)
	}
	return int64(profile.Family.FilesystemSize(profile.FlashSize))
}

func (b bound) region() Region {
	return Region{Name: b.name, Start: uint32(b.start), Size: uint32(b.size)}
}
