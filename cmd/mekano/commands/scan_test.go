package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corpustools/mekano/config"
)

func TestScanOptions(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scan.Format = config.FormatSmart
	cfg.Scan.Sections = []string{"W"}

	tests := []struct {
		name         string
		flagFormat   string
		flagSections []string
		wantFormat   string
		wantSections []string
	}{
		{"config fallback", "", nil, config.FormatSmart, []string{"W"}},
		{"flag format wins", config.FormatTrec, nil, config.FormatTrec, []string{"W"}},
		{"flag sections win", "", []string{"T", "W"}, config.FormatSmart, []string{"T", "W"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanFormat = tt.flagFormat
			scanSections = tt.flagSections
			t.Cleanup(func() {
				scanFormat = ""
				scanSections = nil
			})

			format, sections := scanOptions(cfg)
			assert.Equal(t, tt.wantFormat, format)
			assert.Equal(t, tt.wantSections, sections)
		})
	}
}

func TestScanOptionsEmptySectionsMeansAll(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scan.Format = config.FormatTrec

	scanFormat = ""
	scanSections = nil
	format, sections := scanOptions(cfg)

	assert.Equal(t, config.FormatTrec, format)
	assert.Nil(t, sections)
}
