package fetch

import (
	"time"

	apperrors "github.com/agbru/fetchview/internal/errors"
)

// Kind tags an Outcome as a success or a failure.
type Kind int

const (
	// Success means a response was fully received, whatever its status code.
	Success Kind = iota
	// Failure means no response could be obtained.
	Failure
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of one accepted Request.
// Response is set for Success, Err for Failure.
type Outcome struct {
	Kind     Kind
	Request  Request
	Response *Response
	Err      *apperrors.FetchError
	Duration time.Duration
}

func succeeded(req Request, resp *Response, d time.Duration) Outcome {
	return Outcome{Kind: Success, Request: req, Response: resp, Duration: d}
}

func failed(req Request, cause error, d time.Duration) Outcome {
	return Outcome{Kind: Failure, Request: req, Err: apperrors.NewFetchError(req.URL, cause), Duration: d}
}

// Succeeded reports whether the outcome carries a response.
func (o Outcome) Succeeded() bool {
	return o.Kind == Success && o.Response != nil
}

// Reason returns the failure description, or "" for a success.
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Body returns the response body as text, or "" for a failure.
func (o Outcome) Body() string {
	if o.Response == nil {
		return ""
	}
	return o.Response.Text()
}

// DisplayBody is Body decoded to UTF-8 using the response's declared charset.
func (o Outcome) DisplayBody() string {
	if o.Response == nil {
		return ""
	}
	return o.Response.DecodedText()
}
