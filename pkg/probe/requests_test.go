package probe

import (
	"context"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/pyneda/traversalprobe/lib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadNameAndReadPath(t *testing.T) {
	for i := 0; i < 20; i++ {
		token := lib.GenerateBase36Token()

		name := UploadName(token)
		assert.True(t, strings.HasPrefix(name, "../"), name)
		assert.True(t, strings.HasSuffix(name, ".txt"), name)
		assert.Equal(t, "../"+token+".txt", name)

		path := ReadPath(token)
		assert.Equal(t, "/file/"+token+".txt", path)
		assert.NotContains(t, path, "../")
	}
}

func TestBuildWriteRequest(t *testing.T) {
	target, err := url.Parse("http://localhost:8080")
	require.NoError(t, err)

	req, err := BuildWriteRequest(context.Background(), target, "k3x9q")
	require.NoError(t, err)

	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "http://localhost:8080/file", req.URL.String())
	assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, "name=..%2Fk3x9q.txt&content=k3x9q", string(body))

	form, err := url.ParseQuery(string(body))
	require.NoError(t, err)
	assert.Equal(t, "../k3x9q.txt", form.Get("name"))
	assert.Equal(t, "k3x9q", form.Get("content"))
}

func TestBuildReadRequest(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		expected string
	}{
		{name: "root target", target: "http://localhost:8080", expected: "http://localhost:8080/file/k3x9q.txt"},
		{name: "trailing slash", target: "http://localhost:8080/", expected: "http://localhost:8080/file/k3x9q.txt"},
		{name: "target with base path", target: "http://localhost:8080/cdn", expected: "http://localhost:8080/cdn/file/k3x9q.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := url.Parse(tt.target)
			require.NoError(t, err)

			req, err := BuildReadRequest(context.Background(), target, "k3x9q")
			require.NoError(t, err)
			assert.Equal(t, "GET", req.Method)
			assert.Equal(t, tt.expected, req.URL.String())
			assert.NotContains(t, req.URL.Path, "..")
		})
	}
}

func TestTokenIsSharedAcrossRequests(t *testing.T) {
	target, err := url.Parse("http://localhost:8080")
	require.NoError(t, err)
	token := lib.GenerateBase36Token()

	write, err := BuildWriteRequest(context.Background(), target, token)
	require.NoError(t, err)
	body, err := io.ReadAll(write.Body)
	require.NoError(t, err)
	form, err := url.ParseQuery(string(body))
	require.NoError(t, err)

	read, err := BuildReadRequest(context.Background(), target, token)
	require.NoError(t, err)

	content := form.Get("content")
	assert.Equal(t, token, content)
	assert.Equal(t, "../"+content+".txt", form.Get("name"))
	assert.Equal(t, "/file/"+content+".txt", read.URL.Path)
}
