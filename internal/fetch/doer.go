//go:generate mockgen -source=doer.go -destination=mocks/mock_doer.go -package=mocks

package fetch

import "net/http"

// Doer sends an HTTP request and returns its response.
// *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}
