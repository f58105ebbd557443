package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "bare host", input: "example.com", want: "https://example.com"},
		{name: "keeps http", input: "http://example.com/a?b=c", want: "http://example.com/a?b=c"},
		{name: "trims spaces", input: "  https://example.com  ", want: "https://example.com"},
		{name: "empty", input: "   ", wantErr: true},
		{name: "ftp scheme", input: "ftp://example.com", wantErr: true},
		{name: "no host", input: "https://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeURL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractDomain(t *testing.T) {
	assert.Equal(t, "www_example_com", ExtractDomain("https://www.example.com/path"))
	assert.Equal(t, "example_org", ExtractDomain("example.org:8080"))
	assert.Equal(t, "screenshot", ExtractDomain("https://"))
}

func TestAutoFilename(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "example_com_20240309_140507.png", AutoFilename("https://example.com", "png", now))
}

func TestBatchFilename(t *testing.T) {
	assert.Equal(t, "001_example_com.jpg", BatchFilename(0, "example.com", "jpg"))
	assert.Equal(t, "012_a_b_c.png", BatchFilename(11, "https://a.b.c/x", "png"))
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "500 B", FormatFileSize(500))
	assert.Equal(t, "1.0 KiB", FormatFileSize(1024))
	assert.Equal(t, "1.0 MiB", FormatFileSize(1024*1024))
	assert.Equal(t, "2.5 GiB", FormatFileSize(5*1024*1024*1024/2))
	assert.Equal(t, "-2.0 KiB", FormatFileSize(-2048))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500ms", FormatDuration(500*time.Millisecond))
	assert.Equal(t, "1.5s", FormatDuration(1500*time.Millisecond))
	assert.Equal(t, "1m5s", FormatDuration(65*time.Second))
	assert.Equal(t, "0s", FormatDuration(0))
}
