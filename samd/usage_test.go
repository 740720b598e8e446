package samd_test

import (
	"strings"
	"testing"

	"github.com/q0jt/go-samd/samd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sizeOutput = `   text	   data	    bss	    dec	    hex	filename
 150000	    800	  12000	 162800	  27bf0	build-trinket_m0/firmware.elf
`

func TestParseSizeOutput(t *testing.T) {
	u, err := samd.ParseSizeOutput(strings.NewReader(sizeOutput))
	require.NoError(t, err)
	assert.Equal(t, samd.Usage{Text: 150000, Data: 800, BSS: 12000}, u)
}

func TestParseSizeOutput_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "header only", input: "text data bss dec hex filename\n"},
		{name: "short line", input: "1 2\n"},
		{name: "not a number", input: "1 x 3 4 5 f.elf\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := samd.ParseSizeOutput(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestReport(t *testing.T) {
	plan := resolved(t, samd.FeatureFlags{InternalFilesystem: true})

	info, err := samd.Report(plan, samd.Usage{Text: 150000, Data: 800, BSS: 12000})
	require.NoError(t, err)

	assert.Equal(t, int64(188160-150000-800), info.FreeFlash)
	assert.Equal(t, int64(32768-800-12000), info.FreeRAM)
	assert.Equal(t, "37360 bytes free in flash firmware space out of 188160 bytes (183.8kB).\n"+
		"19968 bytes free in ram for heap out of 32768 bytes (32.0kB).", info.String())
}

func TestReport_FlashOverflow(t *testing.T) {
	plan := resolved(t, samd.FeatureFlags{InternalFilesystem: true})

	info, err := samd.Report(plan, samd.Usage{Text: 188000, Data: 400})
	require.ErrorIs(t, err, samd.ErrFlashOverflow)
	assert.Equal(t, int64(-240), info.FreeFlash)
	assert.Contains(t, err.Error(), "240 more bytes")
}
