package fetch

import (
	"github.com/google/uuid"

	apperrors "github.com/agbru/fetchview/internal/errors"
)

// Request is a single fetch target. The URL is used as given; callers
// normalize user input before building a Request.
type Request struct {
	// ID correlates log lines and spans belonging to one fetch.
	ID  string
	URL string
}

// NewRequest validates url and assigns a fresh request ID.
func NewRequest(url string) (Request, error) {
	if url == "" {
		return Request{}, apperrors.ValidationError{Field: "url", Message: "must not be empty"}
	}
	return Request{ID: uuid.NewString(), URL: url}, nil
}
