package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeScanName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "kitchen", "kitchen"},
		{"digits and dashes", "scan-2024.1", "scan-2024.1"},
		{"spaces collapse", "living  room", "living_room"},
		{"parens and slash", "office (north)/desk", "office_north_desk"},
		{"special chars removed", "a:b*c?d", "abcd"},
		{"leading separators ignored", " /garage", "garage"},
		{"trailing separators trimmed", "garage / ", "garage"},
		{"db extension dropped", "garage.db", "garage"},
		{"only special chars", "!@#$", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeScanName(tt.input))
		})
	}
}

func TestValidateScanName(t *testing.T) {
	name, err := ValidateScanName("my scan")
	require.NoError(t, err)
	assert.Equal(t, "my_scan", name)

	_, err = ValidateScanName("***")
	assert.ErrorIs(t, err, ErrInvalidScanName)

	_, err = ValidateScanName("rtabmap.tmp")
	assert.ErrorIs(t, err, ErrReservedScanName)

	_, err = ValidateScanName("rtabmap.tmp.recovery")
	assert.ErrorIs(t, err, ErrReservedScanName)
}

func TestIsReservedDatabase(t *testing.T) {
	tests := []struct {
		file     string
		reserved bool
	}{
		{"rtabmap.tmp.db", true},
		{"/data/scans/rtabmap.tmp.db", true},
		{"rtabmap.tmp.recovery.db", true},
		{"other.tmp.db", true},
		{"kitchen.db", false},
		{"tmp.db", false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.reserved, IsReservedDatabase(tt.file))
		})
	}
}

func TestRecoveredScanName(t *testing.T) {
	at := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
	assert.Equal(t, "240305-140709", RecoveredScanName(at))
	assert.Equal(t, "kitchen", ScanNameFromPath("/data/kitchen.db"))
}
