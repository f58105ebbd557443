package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNewCaptureRequest_Defaults(t *testing.T) {
	req, err := NewCaptureRequest(CaptureOptions{URL: "example.com"})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", req.URL)
	assert.Equal(t, DefaultDevice, req.Device)
	assert.Nil(t, req.Viewport)
	assert.Equal(t, FormatPNG, req.Format)
	assert.Equal(t, "png", req.Extension())
}

func TestNewCaptureRequest_ConfigDefaults(t *testing.T) {
	req, err := NewCaptureRequest(CaptureOptions{
		URL:           "example.com",
		DefaultDevice: "iphone-14",
		DefaultFormat: "jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, "iPhone 14", req.Device)
	assert.Equal(t, FormatJPEG, req.Format)
	assert.Equal(t, "jpg", req.Extension())
}

func TestNewCaptureRequest_Viewport(t *testing.T) {
	req, err := NewCaptureRequest(CaptureOptions{URL: "example.com", Width: 800, DefaultDevice: "Laptop"})
	require.NoError(t, err)

	assert.Empty(t, req.Device)
	require.NotNil(t, req.Viewport)
	assert.Equal(t, Viewport{Width: 800, Height: 1080}, *req.Viewport)
}

func TestNewCaptureRequest_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		opts   CaptureOptions
		option string
	}{
		{name: "quality zero", opts: CaptureOptions{Quality: intPtr(0)}, option: "quality"},
		{name: "quality too high", opts: CaptureOptions{Quality: intPtr(101)}, option: "quality"},
		{name: "unknown device", opts: CaptureOptions{Device: "Nokia 3310"}, option: "device"},
		{name: "device with width", opts: CaptureOptions{Device: "Laptop", Width: 100}, option: "device"},
		{name: "negative width", opts: CaptureOptions{Width: -1}, option: "width"},
		{name: "bad format", opts: CaptureOptions{Format: "bmp"}, option: "format"},
		{name: "negative delay", opts: CaptureOptions{DelayMs: -5}, option: "delay"},
		{name: "delay too long", opts: CaptureOptions{DelayMs: MaxDelayMs + 1}, option: "delay"},
		{name: "bad wait until", opts: CaptureOptions{WaitUntil: "forever"}, option: "wait-until"},
		{name: "bad block level", opts: CaptureOptions{BlockLevel: "max"}, option: "block-level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.URL = "example.com"
			_, err := NewCaptureRequest(tt.opts)
			require.Error(t, err)

			var optErr *InvalidOptionError
			require.True(t, errors.As(err, &optErr), "expected InvalidOptionError, got %T", err)
			assert.Equal(t, tt.option, optErr.Option)
		})
	}
}

func TestNewCaptureRequest_InvalidURL(t *testing.T) {
	_, err := NewCaptureRequest(CaptureOptions{URL: "ftp://example.com"})
	var optErr *InvalidOptionError
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, "url", optErr.Option)
}

func TestCaptureRequest_JSONBody(t *testing.T) {
	req, err := NewCaptureRequest(CaptureOptions{
		URL:          "example.com",
		Quality:      intPtr(80),
		Format:       "webp",
		FullPage:     true,
		BlockCookies: true,
		WaitUntil:    "NetworkIdle",
	})
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "https://example.com", body["url"])
	assert.Equal(t, "webp", body["format"])
	assert.Equal(t, float64(80), body["quality"])
	assert.Equal(t, true, body["fullPage"])
	assert.Equal(t, true, body["blockCookieBanners"])
	assert.Equal(t, "networkidle", body["waitUntil"])
	assert.NotContains(t, body, "viewport")
	assert.NotContains(t, body, "darkMode")
}
