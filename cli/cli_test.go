package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	paths := [][]string{
		{"capture"}, {"async"}, {"batch"}, {"compose"}, {"usage"}, {"gallery"},
		{"watch"}, {"devices"}, {"completions"},
		{"config", "add-authtoken"}, {"config", "show"}, {"config", "path"},
		{"config", "remove-authtoken"}, {"config", "set"}, {"config", "get"},
		{"jobs", "list"}, {"jobs", "get"}, {"jobs", "cancel"}, {"jobs", "result"}, {"jobs", "wait"},
		{"schedule", "list"}, {"schedule", "create"}, {"schedule", "get"}, {"schedule", "update"},
		{"schedule", "delete"}, {"schedule", "pause"}, {"schedule", "resume"},
		{"schedule", "trigger"}, {"schedule", "history"}, {"schedule", "run"},
	}

	for _, p := range paths {
		cmd, _, err := rootCmd.Find(p)
		require.NoError(t, err, p)
		assert.Equal(t, p[len(p)-1], cmd.Name())
	}
}

func TestCaptureOptions_QualityOnlyWhenGiven(t *testing.T) {
	opts := captureOptions(captureCmd, "example.com")
	assert.Equal(t, "example.com", opts.URL)
	assert.Nil(t, opts.Quality)

	require.NoError(t, captureCmd.Flags().Set("quality", "0"))
	t.Cleanup(func() {
		quality = 0
		captureCmd.Flags().Lookup("quality").Changed = false
	})

	opts = captureOptions(captureCmd, "example.com")
	require.NotNil(t, opts.Quality)
	assert.Equal(t, 0, *opts.Quality)
}

func TestCompleteDevice(t *testing.T) {
	names, _ := completeDevice(rootCmd, nil, "iphone_14_p")
	assert.Equal(t, []string{"iphone_14_pro_max\tiPhone 14 Pro Max", "iphone_14_pro\tiPhone 14 Pro"}, names)
}

func TestCompletions(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"completions", "bash"}, "bash completion V2 for allscreenshots"},
		{[]string{"completions", "fish"}, "complete -c allscreenshots"},
		{[]string{"completions", "--instructions"}, "To load completions"},
	}

	for _, tt := range tests {
		t.Run(tt.args[len(tt.args)-1], func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(tt.args)
			t.Cleanup(func() {
				rootCmd.SetOut(nil)
				rootCmd.SetArgs(nil)
				showInstructions = false
			})

			require.NoError(t, rootCmd.Execute())
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestCompletions_UnknownShell(t *testing.T) {
	rootCmd.SetArgs([]string{"completions", "tcsh"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.Error(t, rootCmd.Execute())
}
