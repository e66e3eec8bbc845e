package http_utils

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// RequestExecutionResult contains the complete result of an HTTP request execution
type RequestExecutionResult struct {
	Response      *http.Response
	Body          []byte
	BodySize      int
	Duration      time.Duration
	Err           error
	ErrorCategory string
	TimedOut      bool
}

// RequestExecutionOptions contains options for executing HTTP requests
type RequestExecutionOptions struct {
	Client  *http.Client
	Timeout time.Duration
}

// ExecuteRequest sends the request and reads the whole response body before returning.
// The response body is already closed when the result is returned, its contents are in Body.
func ExecuteRequest(req *http.Request, options RequestExecutionOptions) RequestExecutionResult {
	startTime := time.Now()

	client := options.Client
	if client == nil {
		client = CreateHttpClient(0)
	}

	if options.Timeout > 0 {
		ctx, cancel := context.WithTimeout(req.Context(), options.Timeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", DefaultUserAgent)
	}

	result := RequestExecutionResult{}
	response, err := client.Do(req)
	if err != nil {
		result.Duration = time.Since(startTime)
		result.Err = err
		result.ErrorCategory = CategorizeRequestError(err)
		result.TimedOut = IsTimeoutError(err)
		return result
	}

	body, size, err := ReadResponseBodyData(response)
	result.Duration = time.Since(startTime)
	result.Response = response
	result.Body = body
	result.BodySize = size
	if err != nil {
		result.Err = err
		result.ErrorCategory = CategorizeRequestError(err)
		result.TimedOut = IsTimeoutError(err)
		return result
	}
	result.ErrorCategory = ErrorCategoryNone

	log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", response.StatusCode).
		Int("size", size).
		Dur("duration", result.Duration).
		Msg("Request executed")
	return result
}

// IsTimeoutError checks if an error is due to timeout
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	errorStr := err.Error()
	return strings.Contains(errorStr, "timeout") ||
		strings.Contains(errorStr, "deadline exceeded") ||
		strings.Contains(errorStr, "operation timed out")
}
