package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/pyneda/traversalprobe/lib"
	"github.com/pyneda/traversalprobe/pkg/http_utils"
	"github.com/rs/zerolog/log"
)

// Probe attempts a path traversal write against a file upload service and reads back the sibling path
type Probe struct {
	target        *url.URL
	client        *http.Client
	output        io.Writer
	generateToken func() string
}

func New(options Options) (*Probe, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	target, err := url.Parse(options.Target)
	if err != nil {
		return nil, fmt.Errorf("invalid target %q: %w", options.Target, err)
	}
	client := options.Client
	if client == nil {
		client = http_utils.CreateHttpClient(options.Timeout)
	}
	generateToken := options.TokenGenerator
	if generateToken == nil {
		generateToken = lib.GenerateBase36Token
	}
	return &Probe{
		target:        target,
		client:        client,
		output:        options.Output,
		generateToken: generateToken,
	}, nil
}

// Run performs the write attempt, prints the parsed JSON response, then performs the read attempt
// and prints the response text. The read request is only built once the write output has been printed.
func (p *Probe) Run(ctx context.Context) (*Result, error) {
	token := p.generateToken()
	result := &Result{
		RunID:      uuid.New().String(),
		Target:     p.target.String(),
		Token:      token,
		UploadName: UploadName(token),
		ReadPath:   ReadPath(token),
	}
	logger := log.With().Str("run", result.RunID).Str("token", token).Logger()
	logger.Info().Str("target", result.Target).Str("name", result.UploadName).Msg("Starting traversal probe")

	writeResponse, err := p.write(ctx, token, result)
	if err != nil {
		return result, err
	}
	if err := p.print(writeResponse); err != nil {
		return result, err
	}

	readBody, err := p.read(ctx, token, result)
	if err != nil {
		return result, err
	}
	if err := p.print(readBody); err != nil {
		return result, err
	}

	result.Verdict = classify(token, result.ReadStatus, result.ReadBody)
	logger.Info().
		Int("write_status", result.WriteStatus).
		Int("read_status", result.ReadStatus).
		Str("verdict", string(result.Verdict)).
		Msg("Traversal probe finished")
	return result, nil
}

// write issues the write attempt and returns the compact JSON rendering of its response
func (p *Probe) write(ctx context.Context, token string, result *Result) (string, error) {
	req, err := BuildWriteRequest(ctx, p.target, token)
	if err != nil {
		return "", fmt.Errorf("building write request: %w", err)
	}
	execution := http_utils.ExecuteRequest(req, http_utils.RequestExecutionOptions{Client: p.client})
	result.WriteDurationMs = execution.Duration.Milliseconds()
	if execution.Err != nil {
		return "", newRequestError(StepWrite, req, execution)
	}
	result.WriteStatus = execution.Response.StatusCode

	parsed, rendered, err := parseJSON(execution.Body)
	if err != nil {
		return "", &ParseError{StatusCode: execution.Response.StatusCode, Body: string(execution.Body), Err: err}
	}
	result.WriteResponse = parsed
	return rendered, nil
}

// read issues the read attempt and returns the response body as text
func (p *Probe) read(ctx context.Context, token string, result *Result) (string, error) {
	req, err := BuildReadRequest(ctx, p.target, token)
	if err != nil {
		return "", fmt.Errorf("building read request: %w", err)
	}
	execution := http_utils.ExecuteRequest(req, http_utils.RequestExecutionOptions{Client: p.client})
	result.ReadDurationMs = execution.Duration.Milliseconds()
	if execution.Err != nil {
		return "", newRequestError(StepRead, req, execution)
	}
	result.ReadStatus = execution.Response.StatusCode
	result.ReadBody = string(execution.Body)
	return result.ReadBody, nil
}

func (p *Probe) print(line string) error {
	if _, err := fmt.Fprintln(p.output, line); err != nil {
		return fmt.Errorf("writing probe output: %w", err)
	}
	return nil
}

func newRequestError(step Step, req *http.Request, execution http_utils.RequestExecutionResult) *RequestError {
	return &RequestError{
		Step:     step,
		URL:      req.URL.String(),
		Category: execution.ErrorCategory,
		TimedOut: execution.TimedOut,
		Err:      execution.Err,
	}
}

// parseJSON decodes a single JSON document and returns it along with the compacted original bytes,
// which keep the key order sent by the server
func parseJSON(body []byte) (any, string, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var parsed any
	if err := decoder.Decode(&parsed); err != nil {
		return nil, "", err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, "", errors.New("unexpected data after JSON value")
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return nil, "", err
	}
	return parsed, buf.String(), nil
}
