package fetch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/fetchview/internal/logging"
)

const tracerName = "github.com/agbru/fetchview/internal/fetch"

// State is the worker's gate: Idle accepts a submission, Running rejects it.
type State int32

const (
	Idle State = iota
	Running
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Sink receives the terminal Outcome of each accepted Request. It is called
// from the worker's background goroutine and must hand the value over to the
// consumer's own goroutine (a channel send, a tea.Program.Send) rather than
// touch consumer state directly.
type Sink func(Outcome)

// Worker executes one Request at a time on a background goroutine.
type Worker struct {
	getter   Getter
	deliver  Sink
	observer Observer
	logger   logging.Logger
	tracer   trace.Tracer

	state   atomic.Int32
	current atomic.Pointer[Request]

	// deliverMu orders "back to Idle, then deliver" across consecutive
	// requests so outcomes reach the sink in completion order.
	deliverMu sync.Mutex
	wg        sync.WaitGroup
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithObserver registers an Observer for lifecycle notifications.
func WithObserver(o Observer) WorkerOption {
	return func(w *Worker) {
		if o != nil {
			w.observer = o
		}
	}
}

// WithLogger sets the logger used for submission and completion events.
func WithLogger(l logging.Logger) WorkerOption {
	return func(w *Worker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) WorkerOption {
	return func(w *Worker) {
		if t != nil {
			w.tracer = t
		}
	}
}

// NewWorker creates an idle Worker that fetches through getter and reports
// to deliver.
func NewWorker(getter Getter, deliver Sink, opts ...WorkerOption) *Worker {
	w := &Worker{
		getter:   getter,
		deliver:  deliver,
		observer: nopObserver{},
		logger:   logging.NopLogger{},
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns the current gate state. Safe to call from any goroutine.
func (w *Worker) State() State {
	return State(w.state.Load())
}

// Busy reports whether a request is in flight.
func (w *Worker) Busy() bool {
	return w.State() == Running
}

// Current returns the in-flight request, if any.
func (w *Worker) Current() (Request, bool) {
	if r := w.current.Load(); r != nil {
		return *r, true
	}
	return Request{}, false
}

// Submit starts req on a background goroutine and returns true, unless a
// request is already in flight, in which case req is dropped and Submit
// returns false. A dropped request produces no Outcome.
func (w *Worker) Submit(req Request) bool {
	if !w.state.CompareAndSwap(int32(Idle), int32(Running)) {
		w.observer.FetchRejected(req)
		w.logger.Debug("fetch dropped, another request is in flight",
			logging.String("request_id", req.ID),
			logging.String("url", req.URL))
		return false
	}

	r := req
	w.current.Store(&r)
	w.observer.FetchStarted(req)
	w.logger.Info("fetch started",
		logging.String("request_id", req.ID),
		logging.String("url", req.URL))

	w.wg.Add(1)
	go w.run(req)
	return true
}

// Wait blocks until the last accepted request has delivered its Outcome.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) run(req Request) {
	defer w.wg.Done()
	w.finish(w.execute(req))
}

// execute never panics and never returns an error: every fault becomes a
// Failure outcome.
func (w *Worker) execute(req Request) (o Outcome) {
	start := time.Now()
	ctx, span := w.tracer.Start(context.Background(), "fetch.get",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("fetch.request_id", req.ID),
			attribute.String("url.full", req.URL),
		))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			o = failed(req, fmt.Errorf("panic during fetch: %v", r), time.Since(start))
		}
		if o.Kind == Failure {
			span.RecordError(o.Err)
			span.SetStatus(codes.Error, o.Reason())
			return
		}
		span.SetAttributes(
			attribute.Int("http.response.status_code", o.Response.StatusCode),
			attribute.Int("http.response.body.size", len(o.Response.Body)),
		)
	}()

	resp, err := w.getter.Get(ctx, req.URL)
	if err != nil {
		return failed(req, err, time.Since(start))
	}
	if resp == nil {
		return failed(req, errors.New("no response received"), time.Since(start))
	}
	return succeeded(req, resp, time.Since(start))
}

func (w *Worker) finish(o Outcome) {
	w.deliverMu.Lock()
	defer w.deliverMu.Unlock()

	// Report before the gate opens so the next FetchStarted always follows
	// this FetchFinished.
	w.observer.FetchFinished(o)
	if o.Kind == Failure {
		w.logger.Error("fetch failed", o.Err,
			logging.String("request_id", o.Request.ID),
			logging.String("url", o.Request.URL),
			logging.Duration("duration", o.Duration))
	} else {
		w.logger.Info("fetch completed",
			logging.String("request_id", o.Request.ID),
			logging.String("url", o.Response.URL),
			logging.Int("status", o.Response.StatusCode),
			logging.Int("bytes", len(o.Response.Body)),
			logging.Duration("duration", o.Duration))
	}

	w.current.Store(nil)
	w.state.Store(int32(Idle))

	if w.deliver != nil {
		w.deliver(o)
	}
}
