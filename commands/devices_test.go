package commands

import (
	"testing"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevicesCommand(t *testing.T) {
	rt, _ := newTestRuntime(t, "http://127.0.0.1:0")

	resp := DevicesCommand(rt)
	require.NoError(t, resp.Err())

	out := rt.Out.(interface{ String() string }).String()
	for _, category := range types.DeviceCategories() {
		assert.Contains(t, out, string(category))
	}
	assert.Contains(t, out, "iPhone 14")
	assert.Contains(t, out, "1920x1080")
}
