package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"strings"
	"sync"
	"testing"

	"github.com/pyneda/traversalprobe/internal/config"
	"github.com/pyneda/traversalprobe/lib"
	"github.com/pyneda/traversalprobe/pkg/probe"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileServer(t *testing.T) *httptest.Server {
	var mu sync.Mutex
	files := make(map[string]string)

	mux := http.NewServeMux()
	mux.HandleFunc("/file", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		mu.Lock()
		files[path.Base(r.PostForm.Get("name"))] = r.PostForm.Get("content")
		mu.Unlock()
		w.Write([]byte(`{"ok": true}`))
	})
	mux.HandleFunc("/file/", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		w.Write([]byte(files[strings.TrimPrefix(r.URL.Path, "/file/")]))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	viper.Reset()
	config.SetDefaultConfig()
	t.Cleanup(viper.Reset)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestProbeCommand(t *testing.T) {
	server := newTestFileServer(t)

	stdout, stderr, err := executeCommand(t, "probe", "--target", server.URL, "--count", "2", "--format", "json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `{"ok":true}`, lines[0])
	assert.Equal(t, `{"ok":true}`, lines[2])
	assert.Len(t, lines[1], lib.TokenLength)
	assert.Len(t, lines[3], lib.TokenLength)
	assert.NotEqual(t, lines[1], lines[3])

	var results []probe.Result
	require.NoError(t, json.Unmarshal([]byte(stderr), &results))
	require.Len(t, results, 2)
	assert.Equal(t, lines[1], results[0].Token)
	assert.Equal(t, lines[3], results[1].Token)
	assert.Equal(t, probe.VerdictStoredInBase, results[0].Verdict)
}

func TestProbeCommandUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	target := server.URL
	server.Close()

	stdout, _, err := executeCommand(t, "probe", "--target", target, "--count", "1", "--format", "")
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, err.Error(), "write request")
}

func TestCommandSingleRunSummary(t *testing.T) {
	server := newTestFileServer(t)

	stdout, stderr, err := executeCommand(t, "probe", "--target", server.URL, "--count", "1", "--format", "json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 2)

	var result probe.Result
	require.NoError(t, json.Unmarshal([]byte(stderr), &result))
	assert.Equal(t, lines[1], result.Token)
	assert.Equal(t, probe.VerdictStoredInBase, result.Verdict)
}

func TestExecuteLogsFailureOnce(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	target := server.URL
	server.Close()

	var logs bytes.Buffer
	lib.LogOutput = &logs
	t.Cleanup(func() {
		lib.LogOutput = os.Stderr
		lib.ZeroConsoleLog(true)
	})

	viper.Reset()
	config.SetDefaultConfig()
	t.Cleanup(viper.Reset)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"probe", "--target", target, "--count", "1", "--format", "", "--pretty=false"})

	assert.Equal(t, 1, execute())
	assert.Empty(t, stdout.String())
	assert.NotContains(t, stderr.String(), "Error:")

	var errorEntries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["level"] == "error" {
			errorEntries = append(errorEntries, entry)
		}
	}
	require.Len(t, errorEntries, 1)
	assert.Equal(t, "Command failed", errorEntries[0]["message"])
	assert.Equal(t, "write", errorEntries[0]["step"])
}

func TestProbeCommandRejectsInvalidFormat(t *testing.T) {
	_, _, err := executeCommand(t, "probe", "--target", "http://localhost:8080", "--count", "1", "--format", "xml")
	assert.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "token", "--count", "3")
	require.NoError(t, err)

	tokens := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, tokens, 3)
	for _, token := range tokens {
		assert.Len(t, token, lib.TokenLength)
	}
}
