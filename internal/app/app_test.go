package app

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/agbru/fetchview/internal/errors"
)

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-V"}, true},
		{[]string{"-once", "-version"}, true},
		{[]string{"-url", "example.com"}, false},
		{[]string{"--", "--version"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.HasPrefix(buf.String(), "fetchview "+Version) {
		t.Errorf("PrintVersion output = %q", buf.String())
	}
}

func TestNew_HelpFlag(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"fetchview", "--help"}, &errBuf)
	if !IsHelpError(err) {
		t.Fatalf("expected help error, got %v", err)
	}
	if !strings.Contains(errBuf.String(), "Usage:") {
		t.Errorf("usage not printed: %q", errBuf.String())
	}
}

func TestNew_OnceWithoutURL(t *testing.T) {
	t.Setenv("FETCHVIEW_URL", "")
	var errBuf bytes.Buffer
	_, err := New([]string{"fetchview", "-once"}, &errBuf)
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestRun_OnceSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello from app"))
	}))
	defer srv.Close()

	var out, errBuf bytes.Buffer
	a, err := New([]string{"fetchview", "-once", "-q", "-no-color", srv.URL}, &errBuf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, errBuf.String())
	}
	if out.String() != "hello from app" {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestRun_OnceWithMetricsAndLogFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	metricsAddr := ln.Addr().String()
	ln.Close()

	logPath := filepath.Join(t.TempDir(), "fetchview.log")

	var out, errBuf bytes.Buffer
	a, err := New([]string{"fetchview", "-once", "-q",
		"-metrics-addr", metricsAddr, "-log-file", logPath, srv.URL}, &errBuf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, errBuf.String())
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "fetch completed") {
		t.Errorf("log file should record the fetch, got:\n%s", data)
	}
}

func TestRun_OnceRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	url := "http://" + ln.Addr().String()
	ln.Close()

	var out, errBuf bytes.Buffer
	a, err := New([]string{"fetchview", "-once", "-q", "-no-color", url}, &errBuf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorFetch {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorFetch)
	}
	if !strings.Contains(errBuf.String(), "Warning:") {
		t.Errorf("stderr = %q, want a warning", errBuf.String())
	}
}

func TestRun_BadLogFile(t *testing.T) {
	var errBuf bytes.Buffer
	a := &Application{ErrWriter: &errBuf}
	a.Config.Once = true
	a.Config.URL = "example.com"
	a.Config.LogFile = filepath.Join(t.TempDir(), "missing", "dir", "x.log")
	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
}
