package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGalleryCommand_LocalDir(t *testing.T) {
	rt, renderer := newTestRuntime(t, "http://127.0.0.1:0")
	dir := t.TempDir()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"old.png", "mid.png", "new.png"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, testPNG(t, 4, 4), 0644))
		mod := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(path, mod, mod))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	resp := GalleryCommand(context.Background(), rt, GalleryRequest{Dir: dir, Limit: 2, Size: "medium"})
	require.NoError(t, resp.Err())

	result := resp.Data.(*GalleryResult)
	assert.Equal(t, 3, result.Total)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "new.png", result.Items[0].Label)
	assert.Equal(t, "mid.png", result.Items[1].Label)
	assert.Equal(t, filepath.Join(dir, "new.png"), result.Items[0].Path)
	assert.True(t, result.Items[0].Displayed)
	assert.Equal(t, 2, renderer.Calls())
	assert.Equal(t, [][2]int{{60, 15}}, renderer.sizes)
}

func TestGalleryCommand_Remote(t *testing.T) {
	svc, server := newFakeService(t)
	svc.jobs = []types.Job{
		{ID: "job-1", Status: types.JobDone, URL: "https://example.com"},
		{ID: "job-2", Status: types.JobFailed},
	}
	rt, renderer := newTestRuntime(t, server.URL)

	resp := GalleryCommand(context.Background(), rt, GalleryRequest{})
	require.NoError(t, resp.Err())

	result := resp.Data.(*GalleryResult)
	assert.Equal(t, 1, result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "job-1", result.Items[0].JobID)
	assert.True(t, result.Items[0].Displayed)
	assert.Equal(t, 1, renderer.Calls())
	assert.Equal(t, [][2]int{{40, 10}}, renderer.sizes)
}

func TestGalleryCommand_BadSize(t *testing.T) {
	rt, _ := newTestRuntime(t, "http://127.0.0.1:0")
	resp := GalleryCommand(context.Background(), rt, GalleryRequest{Size: "huge"})
	var optErr *types.InvalidOptionError
	assert.ErrorAs(t, resp.Err(), &optErr)
}

func TestGalleryCommand_NoDisplay(t *testing.T) {
	rt, renderer := newTestRuntime(t, "http://127.0.0.1:0")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shot.png"), testPNG(t, 4, 4), 0644))

	resp := GalleryCommand(context.Background(), rt, GalleryRequest{
		Dir:     dir,
		Display: OutputOptions{NoDisplay: true},
	})
	require.NoError(t, resp.Err())

	result := resp.Data.(*GalleryResult)
	require.Len(t, result.Items, 1)
	assert.False(t, result.Items[0].Displayed)
	assert.Empty(t, result.Items[0].Error)
	assert.Zero(t, renderer.Calls())
	assert.Contains(t, rt.Out.(interface{ String() string }).String(), "shot.png")
}

func TestGalleryCommand_RemoteNoDisplay(t *testing.T) {
	svc, server := newFakeService(t)
	svc.jobs = []types.Job{{ID: "job-1", Status: types.JobDone, URL: "https://example.com"}}
	rt, renderer := newTestRuntime(t, server.URL)

	resp := GalleryCommand(context.Background(), rt, GalleryRequest{Display: OutputOptions{NoDisplay: true}})
	require.NoError(t, resp.Err())

	result := resp.Data.(*GalleryResult)
	require.Len(t, result.Items, 1)
	assert.False(t, result.Items[0].Displayed)
	assert.Equal(t, int64(len(svc.image)), result.Items[0].Size)
	assert.Zero(t, renderer.Calls())
}

func TestGalleryCommand_MissingDir(t *testing.T) {
	rt, renderer := newTestRuntime(t, "http://127.0.0.1:0")

	resp := GalleryCommand(context.Background(), rt, GalleryRequest{Dir: filepath.Join(t.TempDir(), "nope")})
	var ioErr *types.IOError
	assert.ErrorAs(t, resp.Err(), &ioErr)
	assert.Zero(t, renderer.Calls())
}
