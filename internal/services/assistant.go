package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AssistantService talks to the OpenAI Assistants API. Every Ask creates a
// fresh thread, so each exchange is an independent single-turn question.
type AssistantService struct {
	baseURL      string
	apiKey       string
	assistantID  string
	pollInterval time.Duration
	runTimeout   time.Duration
	client       *http.Client
}

func NewAssistantService(baseURL, apiKey, assistantID string, pollInterval, runTimeout time.Duration) *AssistantService {
	return &AssistantService{
		baseURL:      baseURL,
		apiKey:       apiKey,
		assistantID:  assistantID,
		pollInterval: pollInterval,
		runTimeout:   runTimeout,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

type thread struct {
	ID string `json:"id"`
}

type run struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	LastError *runError `json:"last_error"`
}

type runError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type threadMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type string       `json:"type"`
	Text *textContent `json:"text"`
}

type textContent struct {
	Value string `json:"value"`
}

type messageList struct {
	Data []threadMessage `json:"data"`
}

// Ask submits the question to the assistant and blocks until a reply is
// produced or the run deadline expires.
func (s *AssistantService) Ask(ctx context.Context, question string) (string, error) {
	threadID, err := s.createThread(ctx)
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}

	if err := s.addMessage(ctx, threadID, question); err != nil {
		return "", fmt.Errorf("add message: %w", err)
	}

	runID, err := s.startRun(ctx, threadID)
	if err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}

	if err := s.waitForRun(ctx, threadID, runID); err != nil {
		return "", err
	}

	return s.latestReply(ctx, threadID)
}

func (s *AssistantService) createThread(ctx context.Context) (string, error) {
	var t thread
	if err := s.doJSON(ctx, http.MethodPost, "/threads", struct{}{}, &t); err != nil {
		return "", err
	}
	return t.ID, nil
}

func (s *AssistantService) addMessage(ctx context.Context, threadID, content string) error {
	body := struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}{Role: "user", Content: content}
	return s.doJSON(ctx, http.MethodPost, "/threads/"+threadID+"/messages", body, nil)
}

func (s *AssistantService) startRun(ctx context.Context, threadID string) (string, error) {
	body := struct {
		AssistantID string `json:"assistant_id"`
	}{AssistantID: s.assistantID}
	var r run
	if err := s.doJSON(ctx, http.MethodPost, "/threads/"+threadID+"/runs", body, &r); err != nil {
		return "", err
	}
	return r.ID, nil
}

// waitForRun polls the run until it completes. Runs that end failed,
// cancelled or expired are terminal errors, as is the run deadline.
func (s *AssistantService) waitForRun(ctx context.Context, threadID, runID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		var r run
		if err := s.doJSON(ctx, http.MethodGet, "/threads/"+threadID+"/runs/"+runID, nil, &r); err != nil {
			return fmt.Errorf("poll run: %w", err)
		}

		switch r.Status {
		case "completed":
			return nil
		case "failed", "cancelled", "expired":
			if r.LastError != nil {
				return fmt.Errorf("run %s %s: %s", runID, r.Status, r.LastError.Message)
			}
			return fmt.Errorf("run %s %s", runID, r.Status)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("run %s did not finish: %w", runID, ctx.Err())
		case <-ticker.C:
		}
	}
}

// latestReply scans the thread for the newest assistant message and returns
// its first text content part.
func (s *AssistantService) latestReply(ctx context.Context, threadID string) (string, error) {
	var list messageList
	if err := s.doJSON(ctx, http.MethodGet, "/threads/"+threadID+"/messages", nil, &list); err != nil {
		return "", fmt.Errorf("list messages: %w", err)
	}

	// The API returns messages newest first.
	for _, msg := range list.Data {
		if msg.Role != "assistant" {
			continue
		}
		for _, part := range msg.Content {
			if part.Type == "text" && part.Text != nil {
				return part.Text.Value, nil
			}
		}
	}

	return "", fmt.Errorf("thread %s has no assistant reply", threadID)
}

func (s *AssistantService) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("OpenAI-Beta", "assistants=v2")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s returned %s: %s", method, path, resp.Status, bytes.TrimSpace(detail))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}
