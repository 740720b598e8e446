package samd

// FeatureFlags are the build options that shape the layout. A nil size
// keeps the family default; a non-nil size always wins.
type FeatureFlags struct {
	InternalFilesystem   bool
	CalibrateCrystalless bool

	NVMSize        *uint32
	FilesystemSize *uint32
	ConfigSize     *uint32
}

// Size returns a pointer to v for use as a size override.
func Size(v uint32) *uint32 {
	return &v
}
