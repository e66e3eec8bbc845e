package http_utils

import "strings"

const DefaultUserAgent = "traversalprobe/1.0"

const (
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// Error category constants for request error categorization
const (
	ErrorCategoryConnectionClosedEOF  = "connection_closed_eof"
	ErrorCategoryConnectionRefused    = "connection_refused"
	ErrorCategoryConnectionReset      = "connection_reset"
	ErrorCategoryConnectionBrokenPipe = "connection_broken_pipe"
	ErrorCategoryDNSResolution        = "dns_resolution"
	ErrorCategoryNetworkUnreachable   = "network_unreachable"
	ErrorCategoryHostUnreachable      = "host_unreachable"

	ErrorCategoryTimeoutDeadlineExceeded = "timeout_deadline_exceeded"
	ErrorCategoryTimeoutGeneric          = "timeout_generic"
	ErrorCategoryCanceled                = "canceled"

	ErrorCategoryProtocolError     = "protocol_error"
	ErrorCategoryMalformedResponse = "malformed_response"

	ErrorCategoryURLInvalid = "url_invalid"

	ErrorCategoryUnknown = "unknown"
	ErrorCategoryNone    = "none"
)

// errorCategoryMatchers is evaluated in order, the first matching fragment wins
var errorCategoryMatchers = []struct {
	fragment string
	category string
}{
	{"connection refused", ErrorCategoryConnectionRefused},
	{"connection reset", ErrorCategoryConnectionReset},
	{"broken pipe", ErrorCategoryConnectionBrokenPipe},
	{"no such host", ErrorCategoryDNSResolution},
	{"network is unreachable", ErrorCategoryNetworkUnreachable},
	{"network unreachable", ErrorCategoryNetworkUnreachable},
	{"host is unreachable", ErrorCategoryHostUnreachable},
	{"host unreachable", ErrorCategoryHostUnreachable},
	{"context deadline exceeded", ErrorCategoryTimeoutDeadlineExceeded},
	{"context canceled", ErrorCategoryCanceled},
	{"timeout", ErrorCategoryTimeoutGeneric},
	{"eof", ErrorCategoryConnectionClosedEOF},
	{"unsupported protocol scheme", ErrorCategoryURLInvalid},
	{"invalid url", ErrorCategoryURLInvalid},
	{"malformed", ErrorCategoryMalformedResponse},
	{"protocol", ErrorCategoryProtocolError},
}

// CategorizeRequestError categorizes different types of request errors
func CategorizeRequestError(err error) string {
	if err == nil {
		return ErrorCategoryNone
	}

	errorMsg := strings.ToLower(err.Error())
	for _, matcher := range errorCategoryMatchers {
		if strings.Contains(errorMsg, matcher.fragment) {
			return matcher.category
		}
	}
	return ErrorCategoryUnknown
}
