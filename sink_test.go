package reqtrace

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSinkFiltersBelowMinimumLevel(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf, LevelError)
	sink.Infof("dropped")
	sink.Errorf("kept")
	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info line emitted despite error-level minimum: %q", out)
	}
	if !strings.Contains(out, "ERROR kept") {
		t.Errorf("error line missing: %q", out)
	}
}

func TestSinkTagsLines(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf, LevelInfo)
	sink.Infof("hello %s", "world")
	if !strings.Contains(buf.String(), "INFO  hello world") {
		t.Errorf("unexpected line: %q", buf.String())
	}
}

func TestPlainSinkStripsDecoration(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf, LevelInfo).Plain()
	sink.Infof("a %s b", DefaultPalette.Pair(7).decorate("tok"))
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("plain sink leaked escape sequences: %q", out)
	}
	if !strings.Contains(out, "a tok b") {
		t.Errorf("plain sink lost content: %q", out)
	}
}

func TestOpenAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.log")
	sink, err := Open(path, LevelInfo)
	if err != nil {
		t.Fatal(err)
	}
	sink.Infof("first")
	sink.Errorf("second")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Errorf("file missing lines: %q", string(data))
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("error") != LevelError {
		t.Error(`ParseLevel("error") != LevelError`)
	}
	if ParseLevel("info") != LevelInfo {
		t.Error(`ParseLevel("info") != LevelInfo`)
	}
	if ParseLevel("nonsense") != LevelInfo {
		t.Error("unrecognized level should default to info")
	}
}
