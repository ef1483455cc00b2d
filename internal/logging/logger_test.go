package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mdpage/internal/config"
	"mdpage/internal/logging"
)

func TestNewFromConfigConsole(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "debug"

	var buf bytes.Buffer
	logger, closeLog, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	defer closeLog()
	logger.Debug("debug message", logging.String("key", "value"))

	out := buf.String()
	if !strings.Contains(out, "DEBUG") || !strings.Contains(out, "debug message") {
		t.Fatalf("expected debug entry, got %q", out)
	}
	if !strings.Contains(out, "    - key: value") {
		t.Fatalf("expected field line, got %q", out)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller")

	if strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", buf.String())
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information in debug-level logs, got %q", buf.String())
	}
}

func TestConsoleLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info entry should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "shown") {
		t.Fatalf("expected warn entry, got %q", out)
	}
}

func TestConsoleHeaderCarriesComponentAndRunID(t *testing.T) {
	var buf bytes.Buffer
	base, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "0123456789abcdef")
	logger := logging.WithContext(ctx, logging.NewComponentLogger(base, "converter"))
	logger.Info("page written", logging.String(logging.FieldOutput, "/tmp/out.html"))

	out := buf.String()
	if !strings.Contains(out, "[converter] run 01234567 – page written") {
		t.Fatalf("unexpected header: %q", out)
	}
	if strings.Contains(out, "- component:") || strings.Contains(out, "- run_id:") {
		t.Fatalf("header fields should not be repeated as attributes: %q", out)
	}
	if !strings.Contains(out, "- output: /tmp/out.html") {
		t.Fatalf("expected output field, got %q", out)
	}
}

func TestJSONLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "run-1")
	logging.WithContext(ctx, logger).Info("converted", logging.Int("bytes", 42))

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if entry["level"] != "info" || entry["msg"] != "converted" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry[logging.FieldRunID] != "run-1" {
		t.Fatalf("expected run id, got %v", entry[logging.FieldRunID])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigAppendsToLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "mdpage.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(logPath, []byte("earlier\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Logging.Level = "info"
	cfg.Logging.File = logPath

	var buf bytes.Buffer
	logger, closeLog, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("to file")
	if err := closeLog(); err != nil {
		t.Fatalf("close log file: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.HasPrefix(string(data), "earlier\n") || !strings.Contains(string(data), "to file") {
		t.Fatalf("expected entry appended to log file, got %q", data)
	}
	if !strings.Contains(buf.String(), "to file") {
		t.Fatalf("expected entry on writer too, got %q", buf.String())
	}
}

func TestNewFromConfigLogFileInDirectoryFails(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = t.TempDir()
	if _, _, err := logging.NewFromConfig(&cfg, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error when logging.file is a directory")
	}
}

func TestWithRunIDGeneratesIdentifier(t *testing.T) {
	ctx := logging.WithRunID(context.Background(), "")
	id, ok := logging.RunIDFromContext(ctx)
	if !ok || len(id) != 36 {
		t.Fatalf("expected generated uuid, got %q (ok=%v)", id, ok)
	}
	if _, ok := logging.RunIDFromContext(context.Background()); ok {
		t.Fatal("expected no run id on bare context")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "test")
	logger.Error("dropped")
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("expected no-op logger to be disabled")
	}
}

func TestConsoleHeaderStartsWithLocalTimestamp(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	before := time.Now().Local()
	logger.Info("stamped")

	header, _, _ := strings.Cut(buf.String(), " INFO")
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", header, time.Local)
	if err != nil {
		t.Fatalf("expected local timestamp header, got %q: %v", buf.String(), err)
	}
	if ts.Before(before.Truncate(time.Second)) {
		t.Fatalf("timestamp %v precedes log call %v", ts, before)
	}
}
