package probe

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pyneda/traversalprobe/pkg/http_utils"
)

const (
	FileEndpoint    = "file"
	TraversalPrefix = "../"
	FileExtension   = ".txt"
)

// UploadName is the file name sent on the write attempt, one directory above the storage base
func UploadName(token string) string {
	return TraversalPrefix + token + FileExtension
}

// ReadPath is the path requested on the read attempt
func ReadPath(token string) string {
	return "/" + FileEndpoint + "/" + token + FileExtension
}

// EncodeWriteForm encodes the write attempt fields, name goes first
func EncodeWriteForm(token string) string {
	return "name=" + url.QueryEscape(UploadName(token)) + "&content=" + url.QueryEscape(token)
}

// BuildWriteRequest builds the POST /file request carrying the traversal name and the token as content
func BuildWriteRequest(ctx context.Context, target *url.URL, token string) (*http.Request, error) {
	endpoint := target.JoinPath(FileEndpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(EncodeWriteForm(token)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", http_utils.ContentTypeForm)
	return req, nil
}

// BuildReadRequest builds the GET /file/<token>.txt request
func BuildReadRequest(ctx context.Context, target *url.URL, token string) (*http.Request, error) {
	endpoint := target.JoinPath(FileEndpoint, token+FileExtension)
	return http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
}
