package samd_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/q0jt/go-samd/samd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteLinkerScript(t *testing.T) {
	plan := resolved(t, samd.FeatureFlags{InternalFilesystem: true})
	var buf bytes.Buffer

	require.NoError(t, samd.WriteLinkerScript(&buf, plan))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "/* Flash layout for samd21. */\nMEMORY\n{\n"))
	assert.Contains(t, out, "FLASH_BOOTLOADER")
	assert.Contains(t, out, "ORIGIN = 0x00002000, LENGTH = 0x0002DF00")
	assert.Contains(t, out, "ORIGIN = 0x0002FF00, LENGTH = 0x00010000")
	assert.Contains(t, out, "ORIGIN = 0x20000000, LENGTH = 0x00008000")
	assert.NotContains(t, out, "FLASH_CONFIG", "empty regions are left out")
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestWriteHeader(t *testing.T) {
	plan := resolved(t, samd.FeatureFlags{InternalFilesystem: true})
	var buf bytes.Buffer

	require.NoError(t, samd.WriteHeader(&buf, plan))

	out := buf.String()
	assert.Contains(t, out, "#define SAMD_FLASH_PAGE_SIZE 0x00000100\n")
	assert.Contains(t, out, "#define SAMD_FIRMWARE_START 0x00002000\n")
	assert.Contains(t, out, "#define SAMD_FIRMWARE_SIZE  0x0002DF00\n")
	assert.Contains(t, out, "#define SAMD_NVM_START 0x0003FF00\n")
	assert.Contains(t, out, "#define SAMD_CONFIG_SIZE  0x00000000\n")
	assert.True(t, strings.HasSuffix(out, "#endif\n"))
}

func TestWriteJSON(t *testing.T) {
	plan := resolved(t, samd.FeatureFlags{InternalFilesystem: true})
	var buf bytes.Buffer

	require.NoError(t, samd.WriteJSON(&buf, plan))

	var doc struct {
		Family    string        `json:"family"`
		FlashSize uint32        `json:"flashSize"`
		Regions   []samd.Region `json:"regions"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "samd21", doc.Family)
	assert.Equal(t, uint32(262144), doc.FlashSize)
	assert.Equal(t, plan.Regions(), doc.Regions)
}

func TestWriteYAML(t *testing.T) {
	plan := resolved(t, samd.FeatureFlags{CalibrateCrystalless: true})
	var buf bytes.Buffer

	require.NoError(t, samd.WriteYAML(&buf, plan))

	var doc struct {
		Chip     string        `yaml:"chip"`
		PageSize uint32        `yaml:"pageSize"`
		Regions  []samd.Region `yaml:"regions"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "samd21", doc.Chip)
	assert.Equal(t, uint32(256), doc.PageSize)
	assert.Equal(t, plan.Regions(), doc.Regions)
}

func TestWriteText(t *testing.T) {
	plan := resolved(t, samd.FeatureFlags{})
	var buf bytes.Buffer

	require.NoError(t, samd.WriteText(&buf, plan))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "samd21: 262144 bytes flash, 256 byte pages", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "REGION"))
	assert.True(t, strings.HasPrefix(lines[2], "bootloader"))
	assert.True(t, strings.HasPrefix(lines[6], "nvm"))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteText_WriteError(t *testing.T) {
	err := samd.WriteText(failingWriter{}, resolved(t, samd.FeatureFlags{}))
	assert.EqualError(t, err, "disk full")
}
