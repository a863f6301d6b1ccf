package fetch

// Observer receives lifecycle notifications from a Worker. Methods are
// called from both the submitting goroutine and the background goroutine,
// so implementations must be safe for concurrent use.
type Observer interface {
	FetchStarted(req Request)
	FetchRejected(req Request)
	FetchFinished(o Outcome)
}

type nopObserver struct{}

func (nopObserver) FetchStarted(Request)  {}
func (nopObserver) FetchRejected(Request) {}
func (nopObserver) FetchFinished(Outcome) {}
