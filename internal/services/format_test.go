package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{-1, "0 Bytes"},
		{-1048576, "0 Bytes"},
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{500, "500 Bytes"},
		{1024, "1 KB"},
		{1500, "1.46 KB"},
		{1048576, "1 MB"},
		{1572864, "1.5 MB"},
		{3670016, "3.5 MB"},
		{1073741824, "1 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatFileSize(tt.bytes), "bytes=%d", tt.bytes)
	}
}

func TestFormatFileSize_ClampsToLargestUnit(t *testing.T) {
	// Beyond GB the largest known unit is reused.
	assert.Equal(t, "1024 GB", FormatFileSize(1<<40))
}

func TestFormatSpeed(t *testing.T) {
	assert.Equal(t, "1 MB/s", FormatSpeed(1048576))
	assert.Equal(t, "512 KB/s", FormatSpeed(524288))
}

func TestFormatTimeRemaining(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "0s"},
		{30, "30s"},
		{59.4, "59s"},
		{60, "1m"},
		{90, "2m"},
		{3599, "60m"},
		{3600, "1h"},
		{7200, "2h"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatTimeRemaining(tt.seconds), "seconds=%f", tt.seconds)
	}
}
