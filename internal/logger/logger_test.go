package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Errorf("failed: %s", "boom")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written without verbose:\n%s", out)
	}
	for _, want := range []string{"[INFO] shown 2", "[ERROR] failed: boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestLogger_Verbose(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Debugf("tree has %d nodes", 7)
	if !strings.Contains(buf.String(), "[DEBUG] tree has 7 nodes") {
		t.Errorf("wrong output: %q", buf.String())
	}
}
