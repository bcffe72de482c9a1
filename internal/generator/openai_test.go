package generator

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sseClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	client := &Client{
		baseURL:    server.URL,
		apiKey:     "test-key",
		httpClient: server.Client(),
	}
	return client, server.Close
}

func writeDelta(w http.ResponseWriter, content string) {
	fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", content)
}

func TestStream_DeltasInOrder(t *testing.T) {
	client, done := sseClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
		writeDelta(w, "Hello")
		writeDelta(w, ", ")
		writeDelta(w, "world")
		fmt.Fprint(w, "data: [DONE]\n\n")
	})
	defer done()

	stream, err := client.Stream(context.Background(), "", []Message{{Role: RoleUser, Content: "hi"}})
	require.NoError(t, err)

	answer, err := Drain(stream)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", answer)
}

func TestStream_IgnoresKeepAliveLines(t *testing.T) {
	client, done := sseClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ": keep-alive\n\n")
		writeDelta(w, "ok")
		fmt.Fprint(w, "data: [DONE]\n\n")
	})
	defer done()

	stream, err := client.Stream(context.Background(), "m", []Message{{Role: RoleUser, Content: "q"}})
	require.NoError(t, err)

	answer, err := Drain(stream)
	require.NoError(t, err)
	assert.Equal(t, "ok", answer)
}

func TestStream_NonOKStatus(t *testing.T) {
	client, done := sseClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model overloaded"}`, http.StatusServiceUnavailable)
	})
	defer done()

	_, err := client.Stream(context.Background(), "m", []Message{{Role: RoleUser, Content: "q"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProviderHTTP)
	assert.Contains(t, err.Error(), "503")
}

func TestStream_NoMessages(t *testing.T) {
	client := NewClient("k")
	_, err := client.Stream(context.Background(), "m", nil)
	assert.ErrorIs(t, err, ErrNoMessages)
}

func TestStaticStream(t *testing.T) {
	answer, err := Drain(NewStaticStream("fixed"))
	require.NoError(t, err)
	assert.Equal(t, "fixed", answer)
}

func TestStream_EOFWithoutDoneIsError(t *testing.T) {
	client, done := sseClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeDelta(w, strings.Repeat("a", 10))
		// Connection drops without a [DONE] terminator. A truncated answer
		// must surface as an error, not as a short finished one.
	})
	defer done()

	stream, err := client.Stream(context.Background(), "m", []Message{{Role: RoleUser, Content: "q"}})
	require.NoError(t, err)

	answer, err := Drain(stream)
	assert.ErrorIs(t, err, ErrProviderHTTP)
	assert.Equal(t, strings.Repeat("a", 10), answer)
}
