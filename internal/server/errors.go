package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/minjae/job-coach/internal/assistant"
	"github.com/minjae/job-coach/internal/crawling"
	"github.com/minjae/job-coach/internal/extraction"
	"github.com/minjae/job-coach/internal/fetch"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Provider-side failures map to 502, a blown poll budget to 504, and
// malformed input to 400.
func HTTPStatus(err error) int {
	var (
		pollTimeout   *assistant.PollTimeoutError
		runFailed     *assistant.RunNotCompletedError
		missingReply  *assistant.MissingReplyError
		unparsable    *extraction.UnparsableError
		schemaInvalid *extraction.SchemaError
		parseFailed   *crawling.ParseError
		badDetailURL  *crawling.DetailURLError
		fetchFailed   *fetch.Error
	)

	switch {
	case errors.As(err, &pollTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &runFailed),
		errors.As(err, &missingReply),
		errors.As(err, &unparsable),
		errors.As(err, &schemaInvalid),
		errors.As(err, &parseFailed),
		errors.As(err, &fetchFailed):
		return http.StatusBadGateway
	case errors.As(err, &badDetailURL):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
