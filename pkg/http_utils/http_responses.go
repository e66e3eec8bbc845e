package http_utils

import (
	"io"
	"net/http"
)

// ReadResponseBodyData reads and closes an http response body, returning its contents and size in bytes
func ReadResponseBodyData(response *http.Response) (body []byte, size int, err error) {
	defer response.Body.Close()
	body, err = io.ReadAll(response.Body)
	return body, len(body), err
}
