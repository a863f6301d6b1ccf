package cli

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/briandowns/spinner"

	apperrors "github.com/agbru/fetchview/internal/errors"
	"github.com/agbru/fetchview/internal/fetch"
	"github.com/agbru/fetchview/internal/ui"
)

// MockSpinner for testing
type MockSpinner struct {
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start()                     { m.started = true }
func (m *MockSpinner) Stop()                      { m.stopped = true }
func (m *MockSpinner) UpdateSuffix(suffix string) { m.suffix = suffix }

// blockingGetter never answers.
type blockingGetter struct{ release chan struct{} }

func (g blockingGetter) Get(ctx context.Context, url string) (*fetch.Response, error) {
	<-g.release
	return &fetch.Response{URL: url}, nil
}

func refusedURL(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()
	return "http://" + addr
}

func TestRunOnce_PrintsBodyVerbatim(t *testing.T) {
	const body = "<html>\n  <body>héllo</body>\n</html>\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	var out, errOut bytes.Buffer
	code := RunOnce(context.Background(), Options{URL: srv.URL, Out: &out, ErrOut: &errOut})

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d (stderr: %s)", code, apperrors.ExitSuccess, errOut.String())
	}
	if out.String() != body {
		t.Errorf("stdout = %q, want %q", out.String(), body)
	}
	if errOut.Len() != 0 {
		t.Errorf("stderr should be empty, got %q", errOut.String())
	}
}

func TestRunOnce_DeclaredCharsetKeptRaw(t *testing.T) {
	const body = "<p>caf\xe9</p>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	var out bytes.Buffer
	code := RunOnce(context.Background(), Options{URL: srv.URL, Out: &out, ErrOut: &bytes.Buffer{}})

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if !bytes.Equal(out.Bytes(), []byte(body)) {
		t.Errorf("stdout = %q, want the undecoded bytes %q", out.Bytes(), body)
	}
}

// failingWriter rejects every write.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRunOnce_OutputWriteFails(t *testing.T) {
	defer ui.SetCurrentTheme(ui.GetCurrentTheme())
	ui.SetTheme("none")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	var errOut bytes.Buffer
	code := RunOnce(context.Background(), Options{URL: srv.URL, Out: failingWriter{}, ErrOut: &errOut})

	if code != apperrors.ExitErrorGeneric {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
	if !strings.Contains(errOut.String(), "broken pipe") {
		t.Errorf("stderr = %q, want the write error", errOut.String())
	}
}

func TestRunOnce_NotFoundIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such page", http.StatusNotFound)
	}))
	defer srv.Close()

	var out, errOut bytes.Buffer
	code := RunOnce(context.Background(), Options{URL: srv.URL, Out: &out, ErrOut: &errOut})

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if !strings.Contains(out.String(), "no such page") {
		t.Errorf("stdout = %q, want the error page body", out.String())
	}
}

func TestRunOnce_ConnectionRefused(t *testing.T) {
	defer ui.SetCurrentTheme(ui.GetCurrentTheme())
	ui.SetTheme("none")

	var out, errOut bytes.Buffer
	code := RunOnce(context.Background(), Options{URL: refusedURL(t), Out: &out, ErrOut: &errOut})

	if code != apperrors.ExitErrorFetch {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitErrorFetch)
	}
	if out.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", out.String())
	}
	if !strings.HasPrefix(errOut.String(), "Warning: ") {
		t.Errorf("stderr = %q, want a warning", errOut.String())
	}
}

func TestRunOnce_BlankURL(t *testing.T) {
	var out, errOut bytes.Buffer
	code := RunOnce(context.Background(), Options{URL: "   ", Out: &out, ErrOut: &errOut})
	if code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
}

func TestRunOnce_Spinner(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	var out bytes.Buffer
	RunOnce(context.Background(), Options{URL: srv.URL, Out: &out, ErrOut: &bytes.Buffer{}, Spinner: true})

	if !mockS.started || !mockS.stopped {
		t.Errorf("spinner started=%v stopped=%v, want both", mockS.started, mockS.stopped)
	}
	if mockS.suffix != " fetching "+srv.URL {
		t.Errorf("suffix = %q", mockS.suffix)
	}
}

func TestRunOnce_Canceled(t *testing.T) {
	g := blockingGetter{release: make(chan struct{})}
	defer close(g.release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := RunOnce(ctx, Options{URL: "example.com", Out: &bytes.Buffer{}, ErrOut: &bytes.Buffer{}, Getter: g})
	if code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}
