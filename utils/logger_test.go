package utils

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetVerbose_And_IsVerbose(t *testing.T) {
	// save original state and restore after test
	original := IsVerbose()
	defer SetVerbose(original)

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected IsVerbose() = true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected IsVerbose() = false after SetVerbose(false)")
	}
}

func TestVerbose_OnlyLoggedWhenEnabled(t *testing.T) {
	original := IsVerbose()
	defer SetVerbose(original)

	var buf bytes.Buffer
	Logger().SetOutput(&buf)
	defer Logger().SetOutput(os.Stderr)

	SetVerbose(false)
	Verbose("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("expected no output with verbose disabled, got %q", buf.String())
	}

	SetVerbose(true)
	Verbose("shown %s", "message")
	if !strings.Contains(buf.String(), "shown message") {
		t.Errorf("expected verbose line in output, got %q", buf.String())
	}
}

func TestInfo_WritesMessage(t *testing.T) {
	var buf bytes.Buffer
	Logger().SetOutput(&buf)
	defer Logger().SetOutput(os.Stderr)

	Info("test info %s", "message")
	if !strings.Contains(buf.String(), "test info message") {
		t.Errorf("expected info line in output, got %q", buf.String())
	}
}

func TestLogger_Fields(t *testing.T) {
	original := IsVerbose()
	defer SetVerbose(original)

	var buf bytes.Buffer
	Logger().SetOutput(&buf)
	defer Logger().SetOutput(os.Stderr)

	SetVerbose(true)
	Logger().WithFields(logrus.Fields{"status": 200, "path": "/v1/usage"}).Debug("api response")

	out := buf.String()
	for _, want := range []string{"api response", "status=200", "path=/v1/usage", "level=debug"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}
