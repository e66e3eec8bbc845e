package probe

import "fmt"

// Step identifies which of the two requests of a run failed
type Step string

const (
	StepWrite Step = "write"
	StepRead  Step = "read"
)

// RequestError is returned when a request could not be completed at the network layer
type RequestError struct {
	Step     Step
	URL      string
	Category string
	TimedOut bool
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s request to %s failed: %v", e.Step, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ParseError is returned when the write response body is not valid JSON
type ParseError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse write response (status %d) as JSON: %v", e.StatusCode, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
