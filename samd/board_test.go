package samd_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/q0jt/go-samd/samd"
	"github.com/q0jt/go-samd/samd/config/chip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBoards_YAML(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	boards, err := samd.LoadBoards(context.Background(), "../pkl/boards.yaml", samd.WithLogger(logger))
	require.NoError(t, err)
	assert.Len(t, boards, 6)
	assert.Contains(t, logs.String(), "loaded board definitions")

	trinket, err := samd.FindBoard(boards, "trinket_m0")
	require.NoError(t, err)
	assert.Equal(t, chip.Samd21e18a, trinket.Chip)
	assert.True(t, trinket.InternalFilesystem)
	assert.True(t, trinket.CalibrateCrystalless)
	assert.Nil(t, trinket.NVMSize)

	plan, err := trinket.Resolve()
	require.NoError(t, err)
	assert.Equal(t, uint32(262144-256-256-65536-8192), plan.Firmware.Size)

	itsy, err := samd.FindBoard(boards, "itsybitsy_m4_internal")
	require.NoError(t, err)
	require.NotNil(t, itsy.NVMSize)
	assert.Equal(t, uint32(16384), *itsy.NVMSize)

	plan, err = itsy.Resolve()
	require.NoError(t, err)
	assert.Equal(t, uint32(16384), plan.NVM.Size)
	assert.Equal(t, uint32(262144), plan.Filesystem.Size)
}

func TestLoadBoards_EveryBoardResolves(t *testing.T) {
	boards, err := samd.LoadBoards(context.Background(), "../pkl/boards.yaml")
	require.NoError(t, err)

	for _, name := range samd.BoardNames(boards) {
		plan, err := boards[name].Resolve()
		require.NoError(t, err, name)
		assert.NoError(t, plan.Validate(), name)
	}
}

func TestLoadBoards_Pkl(t *testing.T) {
	if _, err := exec.LookPath("pkl"); err != nil {
		t.Skip("pkl binary not installed")
	}

	fromPkl, err := samd.LoadBoards(context.Background(), "../pkl/boards.pkl")
	require.NoError(t, err)
	fromYAML, err := samd.LoadBoards(context.Background(), "../pkl/boards.yaml")
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromPkl)
}

func TestLoadBoards_UnsupportedExtension(t *testing.T) {
	_, err := samd.LoadBoards(context.Background(), "boards.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported board file extension")
}

func TestLoadBoards_UnknownChip(t *testing.T) {
	name := filepath.Join(t.TempDir(), "boards.yml")
	require.NoError(t, os.WriteFile(name, []byte("boards:\n  pico:\n    chip: rp2040\n"), 0o644))

	_, err := samd.LoadBoards(context.Background(), name)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "board pico")
	assert.Contains(t, err.Error(), "rp2040")
}

func TestFindBoard_Unknown(t *testing.T) {
	_, err := samd.FindBoard(map[string]samd.Board{}, "metro_m4")
	assert.ErrorIs(t, err, samd.ErrUnknownBoard)
}

func TestBoard_ResolveFailureNamesBoard(t *testing.T) {
	b := samd.Board{
		Name:               "overfull",
		Chip:               chip.Samd21g18a,
		InternalFilesystem: true,
		FilesystemSize:     samd.Size(512 * 1024),
	}

	_, err := b.Resolve()

	var negErr *samd.NegativeFirmwareSizeError
	require.ErrorAs(t, err, &negErr)
	assert.Contains(t, err.Error(), "board overfull")
}

func TestBoardNames(t *testing.T) {
	boards, err := samd.ParseYAMLBoards([]byte("boards:\n  b:\n    chip: samd21g18a\n  a:\n    chip: samd51j19a\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, samd.BoardNames(boards))
}

func TestLoadBoards_UpperCaseExtension(t *testing.T) {
	name := filepath.Join(t.TempDir(), "BOARDS.YAML")
	require.NoError(t, os.WriteFile(name, []byte("boards:\n  metro:\n    chip: samd21g18a\n"), 0o644))

	boards, err := samd.LoadBoards(context.Background(), name)
	require.NoError(t, err)
	assert.Equal(t, []string{"metro"}, samd.BoardNames(boards))
}
