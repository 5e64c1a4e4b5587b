package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"llmperf/internal/models"
)

// ChatClient issues raw chat-completion requests against target endpoints.
// One client is shared by all trials of a run so they reuse a single
// connection pool.
type ChatClient struct {
	http   *http.Client
	config models.RequestConfig
	apiKey string
}

// NewChatClient creates a chat client for the given request parameters.
// The bearer credential is resolved once from OPENAI_API_KEY; most local
// servers run without auth.
func NewChatClient(config models.RequestConfig) *ChatClient {
	return &ChatClient{
		http:   &http.Client{},
		config: config,
		apiKey: os.Getenv("OPENAI_API_KEY"),
	}
}

// RunTrial executes one request against one target and returns its outcome.
// It never fails upward: every transport error is captured into the outcome
// so sibling trials keep running.
func (c *ChatClient) RunTrial(ctx context.Context, target models.TargetSpec, promptIdx, iteration int, prompt string) models.TrialOutcome {
	outcome := models.TrialOutcome{
		Target:    target.Name,
		Model:     target.Model,
		PromptID:  promptIdx,
		Iteration: iteration,
	}

	payload, err := json.Marshal(c.requestBody(target.Model, prompt))
	if err != nil {
		return failure(outcome, time.Now(), err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodPost, target.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return failure(outcome, start, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.Stream {
		req.Header.Set("Accept", "text/event-stream")
	} else {
		req.Header.Set("Accept", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return failure(outcome, start, err)
	}
	defer resp.Body.Close()

	if c.config.Stream {
		return c.consumeStream(outcome, resp, start)
	}
	return c.consumeBody(outcome, resp, start)
}

// requestBody builds the chat-completions payload. Extra fields merge last,
// so they win on key collision.
func (c *ChatClient) requestBody(model, prompt string) map[string]any {
	payload := map[string]any{
		"model":       model,
		"messages":    []models.ChatMessage{{Role: "user", Content: prompt}},
		"temperature": c.config.Temperature,
		"max_tokens":  c.config.MaxTokens,
		"stream":      c.config.Stream,
	}
	for key, value := range c.config.Extra {
		payload[key] = value
	}
	return payload
}

// consumeStream reads an SSE-style token feed line by line. The first
// non-empty fragment marks time-to-first-token; every non-empty fragment
// adds to the char and byte counters. Success is decided by status code
// only after the feed ends.
func (c *ChatClient) consumeStream(outcome models.TrialOutcome, resp *http.Response, start time.Time) models.TrialOutcome {
	reader := bufio.NewReader(resp.Body)
	firstSeen := false
	var readErr error

feed:
	for {
		line, err := reader.ReadString('\n')
		raw := strings.TrimRight(line, "\r\n")
		if raw != "" {
			data := raw
			if strings.HasPrefix(raw, "data: ") {
				data = raw[len("data: "):]
			}
			data = strings.TrimSpace(data)

			switch {
			case data == "[DONE]":
				break feed
			case data != "":
				if text := chunkText(data); text != "" {
					if !firstSeen {
						ttft := msSince(start)
						outcome.TTFTMs = &ttft
						firstSeen = true
					}
					chars, size := measureText(text)
					outcome.OutputChars += chars
					outcome.OutputBytes += size
				}
			}
		}
		if err != nil {
			if err != io.EOF {
				readErr = err
			}
			break
		}
	}

	if readErr != nil {
		return failure(outcome, start, readErr)
	}

	total := msSince(start)
	outcome.TotalMs = &total
	status := resp.StatusCode
	outcome.StatusCode = &status
	outcome.Success = status >= 200 && status < 300
	return outcome
}

// consumeBody handles the non-streaming path, where total duration and
// time-to-first-token collapse into the same value.
func (c *ChatClient) consumeBody(outcome models.TrialOutcome, resp *http.Response, start time.Time) models.TrialOutcome {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(outcome, start, err)
	}

	total := msSince(start)
	ttft := total
	outcome.TotalMs = &total
	outcome.TTFTMs = &ttft
	status := resp.StatusCode
	outcome.StatusCode = &status
	outcome.Success = status >= 200 && status < 300

	// Extraction ladder: message content of the first choice, then the
	// re-serialized object, then the raw body text.
	text := string(body)
	var payload any
	if err := json.Unmarshal(body, &payload); err == nil {
		if obj, ok := payload.(map[string]any); ok {
			if choices, ok := obj["choices"].([]any); ok && len(choices) > 0 {
				if choice, ok := choices[0].(map[string]any); ok {
					message, _ := choice["message"].(map[string]any)
					content, _ := message["content"].(string)
					text = content
				}
			} else if compact, err := json.Marshal(obj); err == nil {
				text = string(compact)
			}
		}
	}
	outcome.OutputChars, outcome.OutputBytes = measureText(text)

	return outcome
}

// streamChunk is the shape of one streamed feed payload.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Content string `json:"content"`
}

// chunkText extracts the incremental text of one feed payload: the first
// choice's delta content, then a top-level content field, and non-JSON
// payloads count verbatim as raw text.
func chunkText(data string) string {
	var chunk streamChunk
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		return data
	}
	if len(chunk.Choices) > 0 {
		return chunk.Choices[0].Delta.Content
	}
	return chunk.Content
}

// measureText counts the runes of s and its UTF-8 size with invalid
// sequences dropped.
func measureText(s string) (chars, size int) {
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		chars++
		if r != utf8.RuneError || n > 1 {
			size += n
		}
		i += n
	}
	return chars, size
}

// failure finalizes an outcome on the transport-error path. Partial timing
// and size counters collected before the error stay in place; the status
// code does not.
func failure(outcome models.TrialOutcome, start time.Time, err error) models.TrialOutcome {
	total := msSince(start)
	outcome.TotalMs = &total
	outcome.Success = false
	outcome.StatusCode = nil
	outcome.Error = err.Error()
	return outcome
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
