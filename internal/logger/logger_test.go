package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUserFacingMessages(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWithOutput(false, "", true, &out, &errOut)

	l.InfoToUser("writing %q", "HI")
	l.Success("done")
	l.WarningToUser("clipped")
	l.StatusMessage("plain status")

	stdout := out.String()
	for _, want := range []string{"ℹ️  writing \"HI\"", "✅ done", "⚠️  clipped", "plain status"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q, got:\n%s", want, stdout)
		}
	}
	if errOut.Len() != 0 {
		t.Errorf("Expected nothing on stderr, got %q", errOut.String())
	}
}

func TestErrorGoesToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWithOutput(false, "", false, &out, &errOut)

	l.Error("broken: %v", os.ErrNotExist)

	if !strings.Contains(errOut.String(), "❌ broken") {
		t.Errorf("stderr missing error message, got %q", errOut.String())
	}
	if strings.Contains(out.String(), "broken") {
		t.Error("Error message should not appear on stdout")
	}
}

func TestWarningRespectsVerbose(t *testing.T) {
	var quietOut, quietErr bytes.Buffer
	quiet := NewWithOutput(false, "", false, &quietOut, &quietErr)
	quiet.Warning("hidden")
	if strings.Contains(quietOut.String(), "hidden") {
		t.Error("Warning should be hidden when verbose is off")
	}

	var verboseOut, verboseErr bytes.Buffer
	verbose := NewWithOutput(false, "", true, &verboseOut, &verboseErr)
	verbose.Warning("shown")
	if !strings.Contains(verboseOut.String(), "shown") {
		t.Error("Warning should be shown when verbose is on")
	}
}

func TestInfoIsFileOnly(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWithOutput(false, "", true, &out, &errOut)

	l.Info("internal detail")

	if strings.Contains(out.String(), "internal detail") {
		t.Error("Info should not reach stdout when file logging is disabled")
	}
}

func TestFileLogging(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "test.log")

	var out, errOut bytes.Buffer
	l := NewWithOutput(true, logFile, false, &out, &errOut)

	l.Info("logged line %d", 1)
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "logged line 1") {
		t.Errorf("Log file missing entry, got:\n%s", data)
	}
}

func TestCloseWithoutFile(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWithOutput(false, "", false, &out, &errOut)

	if err := l.Close(); err != nil {
		t.Errorf("Close without a log file should be a no-op, got %v", err)
	}
}
