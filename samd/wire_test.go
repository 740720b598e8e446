package samd_test

import (
	"testing"

	"github.com/q0jt/go-samd/samd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestMarshalPlan_RoundTrip(t *testing.T) {
	profile, err := samd.ProfileForChip("samd51p20a")
	require.NoError(t, err)
	plan, err := samd.Resolve(profile, samd.FeatureFlags{InternalFilesystem: true, CalibrateCrystalless: true})
	require.NoError(t, err)

	got, err := samd.UnmarshalPlan(samd.MarshalPlan(plan))
	require.NoError(t, err)
	assert.Equal(t, plan, got)
}

func TestUnmarshalPlan_Truncated(t *testing.T) {
	b := samd.MarshalPlan(resolved(t, samd.FeatureFlags{}))

	_, err := samd.UnmarshalPlan(b[:len(b)-3])
	assert.Error(t, err)
}

func TestUnmarshalPlan_Validates(t *testing.T) {
	plan := resolved(t, samd.FeatureFlags{InternalFilesystem: true})
	plan.Firmware.Size += plan.Profile.PageSize

	_, err := samd.UnmarshalPlan(samd.MarshalPlan(plan))

	var overlapErr *samd.OverlappingRegionsError
	assert.ErrorAs(t, err, &overlapErr)
}

func TestUnmarshalPlan_MissingRegion(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, "samd21")

	_, err := samd.UnmarshalPlan(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing region bootloader")
}

func TestUnmarshalPlan_SkipsUnknownFields(t *testing.T) {
	plan := resolved(t, samd.FeatureFlags{})
	b := samd.MarshalPlan(plan)
	b = protowire.AppendTag(b, 99, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, 0xdeadbeef)

	got, err := samd.UnmarshalPlan(b)
	require.NoError(t, err)
	assert.Equal(t, plan, got)
}
