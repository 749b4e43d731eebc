package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveLogFilePathFallsBackToWorkDir(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}
	if filepath.Base(got) != defaultLogFilename {
		t.Fatalf("unexpected log filename: %s", filepath.Base(got))
	}
	if filepath.Base(filepath.Dir(got)) != defaultLogDirName {
		t.Fatalf("unexpected log dir: %s", filepath.Dir(got))
	}
	if _, err := os.Stat(got); err != nil {
		t.Fatalf("expected log file to be created: %v", err)
	}
}

func TestReleaseModeWritesJSONWithServiceField(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "scan.log"})
	log.Sugar().Infow("visitor_checked_in", "visitor_id", 42)
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "scan.log"))
	if err != nil {
		t.Fatalf("read release log failed: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "visitor_checked_in") {
		t.Fatalf("expected event in log, got=%s", text)
	}
	if !strings.Contains(text, `"service":"vms"`) {
		t.Fatalf("expected service field in log, got=%s", text)
	}
	if !strings.Contains(text, `"visitor_id":42`) {
		t.Fatalf("expected visitor_id field in log, got=%s", text)
	}
}

func TestDebugModeDoesNotCreateFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{Dir: tmpDir, Filename: "debug.log"})
	log.Info("debug-log-test")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestComponentWithoutInitUsesFallback(t *testing.T) {
	if Component("scan") == nil {
		t.Fatalf("component logger should never be nil")
	}
	if Component("  ") == nil {
		t.Fatalf("blank component should fall back to base logger")
	}
}

func TestLevelOptionAndSetLevel(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "level.log", Level: "warn"})
	log.Info("hidden-info")
	log.Warn("shown-warn")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "level.log"))
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	if strings.Contains(string(content), "hidden-info") || !strings.Contains(string(content), "shown-warn") {
		t.Fatalf("warn level not applied: %s", content)
	}

	if err := SetLevel("debug"); err != nil || Level().String() != "debug" {
		t.Fatalf("set level failed: %v %s", err, Level())
	}
	if err := SetLevel("loud"); err == nil {
		t.Fatalf("unknown level should be rejected")
	}
}
