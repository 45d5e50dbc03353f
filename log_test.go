package quizforge

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestVerboseLogGatedAndPrefixed(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	SetVerbose(false)
	VerboseLog("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("logged while verbose off: %q", buf.String())
	}

	SetVerbose(true)
	defer SetVerbose(false)
	VerboseLog("visible %d", 2)

	out := buf.String()
	if !strings.Contains(out, "visible 2") {
		t.Errorf("message missing from output: %q", out)
	}
	if !strings.HasPrefix(out, "quizforge: ") {
		t.Errorf("output missing package prefix: %q", out)
	}
}
