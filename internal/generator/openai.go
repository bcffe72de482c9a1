package generator

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const (
	DefaultChatModel   = "gpt-4o-mini"
	defaultChatBaseURL = "https://api.openai.com/v1"
)

// Client is an OpenAI-compatible chat completion client. Any endpoint that
// speaks the /chat/completions SSE protocol works; the base URL comes from
// CODELOFT_CHAT_BASE_URL when set.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a chat client. An empty apiKey falls back to
// OPENAI_API_KEY.
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	baseURL := os.Getenv("CODELOFT_CHAT_BASE_URL")
	if baseURL == "" {
		baseURL = defaultChatBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		// No overall timeout: answer streams legitimately run for minutes.
		httpClient: &http.Client{Timeout: 0},
	}
}

// Stream implements ChatProvider using the streaming chat completions API.
func (c *Client) Stream(ctx context.Context, model string, messages []Message) (Stream, error) {
	if len(messages) == 0 {
		return nil, ErrNoMessages
	}
	if model == "" {
		model = DefaultChatModel
	}

	reqBody := map[string]interface{}{
		"model":    model,
		"messages": messages,
		"stream":   true,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderHTTP, err)
	}
	if resp.StatusCode/100 != 2 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d: %s", ErrProviderHTTP, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	return &sseStream{body: resp.Body, reader: bufio.NewReader(resp.Body)}, nil
}

// sseStream parses the "data: {...}" server-sent event lines of a streaming
// chat completion into plain text deltas.
type sseStream struct {
	body   io.ReadCloser
	reader *bufio.Reader
}

func (s *sseStream) Recv() (string, bool, error) {
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Only the [DONE] sentinel marks a complete answer. EOF
				// before it means the connection dropped mid-stream, and a
				// truncated answer must not pass as a finished one.
				return "", true, fmt.Errorf("%w: stream ended before completion", ErrProviderHTTP)
			}
			return "", true, err
		}

		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "[DONE]" {
			return "", true, nil
		}

		var event struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			// Keep-alive or vendor extension line; skip it.
			continue
		}
		if len(event.Choices) > 0 {
			return event.Choices[0].Delta.Content, false, nil
		}
	}
}

func (s *sseStream) Close() error {
	return s.body.Close()
}

// staticStream delivers a fixed answer as a single delta. Used where a
// non-streaming response has to satisfy the Stream contract.
type staticStream struct {
	content string
	sent    bool
}

// NewStaticStream wraps content in a Stream.
func NewStaticStream(content string) Stream {
	return &staticStream{content: content}
}

func (s *staticStream) Recv() (string, bool, error) {
	if s.sent {
		return "", true, nil
	}
	s.sent = true
	return s.content, false, nil
}

func (s *staticStream) Close() error { return nil }

// Drain reads a stream to completion and returns the concatenated text.
func Drain(st Stream) (string, error) {
	defer func() { _ = st.Close() }()

	var sb strings.Builder
	for {
		delta, done, err := st.Recv()
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(delta)
		if done {
			return sb.String(), nil
		}
	}
}
