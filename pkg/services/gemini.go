package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"SereneAI/pkg/config"
	"SereneAI/pkg/utils"
)

// GeminiService talks to the Gemini generateContent REST API. All chat
// replies carry the empathetic companion system instruction; Generate is
// for bare analysis prompts (mood, habits) without it.
type GeminiService struct {
	apiKey  string
	enabled bool
}

var ErrGeminiDisabled = errors.New("gemini is disabled via config")

// companionSystemPrompt keeps the bot supportive and non-clinical. It is
// sent as systemInstruction on every chat call.
const companionSystemPrompt = "You are an empathetic AI mental health companion. " +
	"Provide emotional support and active listening with a warm, non-judgmental tone. " +
	"Use validations like \"I hear you\" and \"That sounds...\", and ask open-ended questions " +
	"to help users explore their feelings. Never give medical advice or attempt to diagnose. " +
	"If someone mentions self-harm or severe distress, immediately encourage professional help. " +
	"Keep responses conversational, concise (2-4 sentences) and genuinely caring. " +
	"Reference the user's emotional patterns from the conversation when helpful. " +
	"This is a supportive long-term relationship, not therapy."

func NewGeminiService() *GeminiService {
	return &GeminiService{
		apiKey:  config.GoogleAPIKey,
		enabled: config.IsGeminiEnabled,
	}
}

// ChatMessage is one turn of model-facing history.
type ChatMessage struct {
	Role string // "user" or "model"
	Text string
}

// models to try in order; the experimental default falls back to the
// stable flash model when overloaded or missing.
func (s *GeminiService) modelChain() []string {
	return []string{config.GeminiModel, "gemini-2.0-flash"}
}

func (s *GeminiService) ready() error {
	if !s.enabled {
		log.Printf("[gemini] disabled via config (IsGeminiEnabled=false)")
		return ErrGeminiDisabled
	}
	if strings.TrimSpace(s.apiKey) == "" {
		log.Printf("[gemini] GOOGLE_API_KEY is not set")
		return fmt.Errorf("GOOGLE_API_KEY is not set")
	}
	return nil
}

// Chat sends the conversation history and returns the companion's reply.
func (s *GeminiService) Chat(ctx context.Context, chat []ChatMessage) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}

	body, _ := chatPayload(chat, companionSystemPrompt)
	tried := make(map[string]error)
	for _, m := range s.modelChain() {
		if strings.TrimSpace(m) == "" {
			continue
		}
		text, err := s.callGenerateContent(ctx, m, body)
		if err != nil && isRetriable(err) {
			sleepWithContext(ctx, 2*time.Second)
			text, err = s.callGenerateContent(ctx, m, body)
		}
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text), nil
		}
		if err != nil {
			tried[m] = err
			log.Printf("[gemini] model %s failed: %v", m, err)
		}
	}
	return "", triedErr("all gemini models failed", tried)
}

// StreamChat streams the reply, invoking onDelta for each text chunk, and
// returns the full accumulated text.
func (s *GeminiService) StreamChat(ctx context.Context, chat []ChatMessage, onDelta func(string)) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}

	body, _ := chatPayload(chat, companionSystemPrompt)
	tried := make(map[string]error)
	for _, m := range s.modelChain() {
		if strings.TrimSpace(m) == "" {
			continue
		}
		text, err := s.callStreamGenerateContent(ctx, m, body, onDelta)
		if err != nil && isRetriable(err) {
			sleepWithContext(ctx, 2*time.Second)
			text, err = s.callStreamGenerateContent(ctx, m, body, onDelta)
		}
		if err == nil {
			if strings.TrimSpace(text) != "" {
				return strings.TrimSpace(text), nil
			}
			// silent success: retry non-streaming so the user still gets a reply
			if full, gerr := s.callGenerateContent(ctx, m, body); gerr == nil && strings.TrimSpace(full) != "" {
				if onDelta != nil {
					onDelta(full)
				}
				return strings.TrimSpace(full), nil
			}
		}
		if err != nil {
			tried[m] = err
			log.Printf("[gemini] stream model %s failed: %v", m, err)
		}
	}
	return "", triedErr("all gemini stream models failed", tried)
}

// Generate runs a single bare prompt (no system instruction); used for
// sentiment, pattern and habit-description prompts.
func (s *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}

	body, _ := chatPayload([]ChatMessage{{Role: "user", Text: prompt}}, "")
	tried := make(map[string]error)
	for _, m := range s.modelChain() {
		if strings.TrimSpace(m) == "" {
			continue
		}
		text, err := s.callGenerateContent(ctx, m, body)
		if err != nil && isRetriable(err) {
			sleepWithContext(ctx, 2*time.Second)
			text, err = s.callGenerateContent(ctx, m, body)
		}
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text), nil
		}
		if err != nil {
			tried[m] = err
			log.Printf("[gemini] model %s failed: %v", m, err)
		}
	}
	return "", triedErr("all gemini models failed", tried)
}

func chatPayload(chat []ChatMessage, system string) ([]byte, error) {
	contents := make([]any, 0, len(chat))
	for _, m := range chat {
		role := strings.ToLower(strings.TrimSpace(m.Role))
		if role != "user" && role != "model" {
			role = "user"
		}
		contents = append(contents, map[string]any{
			"role":  role,
			"parts": []any{map[string]any{"text": m.Text}},
		})
	}
	reqBody := map[string]any{
		"contents": contents,
		"generationConfig": map[string]any{
			"temperature":     0.7,
			"maxOutputTokens": 1024,
			"topK":            40,
			"topP":            0.9,
		},
	}
	if system != "" {
		reqBody["systemInstruction"] = map[string]any{
			"parts": []any{map[string]any{"text": system}},
		}
	}
	return json.Marshal(reqBody)
}

func (s *GeminiService) callGenerateContent(ctx context.Context, model string, body []byte) (string, error) {
	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", model, s.apiKey)
	log.Printf("[gemini] using model %s", model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read error: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, utils.Truncate(strings.TrimSpace(string(respBytes)), 300))
	}

	var parsed map[string]any
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return strings.TrimSpace(string(respBytes)), nil
	}
	if txt := extractCandidateText(parsed); txt != "" {
		return txt, nil
	}
	return strings.TrimSpace(string(respBytes)), nil
}

func (s *GeminiService) callStreamGenerateContent(ctx context.Context, model string, body []byte, onDelta func(string)) (string, error) {
	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:streamGenerateContent?key=%s", model, s.apiKey)
	log.Printf("[gemini] streaming model %s", model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, utils.Truncate(strings.TrimSpace(string(b)), 300))
	}

	full := strings.Builder{}
	scanner := bufio.NewScanner(resp.Body)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "data:") {
			line = strings.TrimSpace(line[5:])
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			continue
		}
		if txt := extractCandidateText(obj); txt != "" {
			full.WriteString(txt)
			if onDelta != nil {
				onDelta(txt)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return full.String(), fmt.Errorf("stream read error: %w", err)
	}
	return full.String(), nil
}

// extractCandidateText pulls the first non-empty text part out of a
// generateContent response object.
func extractCandidateText(parsed map[string]any) string {
	cands, ok := parsed["candidates"].([]any)
	if !ok || len(cands) == 0 {
		return ""
	}
	first, ok := cands[0].(map[string]any)
	if !ok {
		return ""
	}
	content, ok := first["content"].(map[string]any)
	if !ok {
		return ""
	}
	parts, ok := content["parts"].([]any)
	if !ok {
		return ""
	}
	for _, p := range parts {
		if pm, ok := p.(map[string]any); ok {
			if txt, ok := pm["text"].(string); ok && strings.TrimSpace(txt) != "" {
				return txt
			}
		}
	}
	return ""
}

func triedErr(prefix string, tried map[string]error) error {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(": ")
	first := true
	for m, e := range tried {
		if !first {
			b.WriteString("; ")
		}
		first = false
		b.WriteString(fmt.Sprintf("%s -> %v", m, e))
	}
	return errors.New(b.String())
}

func isRetriable(err error) bool {
	if err == nil {
		return false
	}
	e := strings.ToLower(err.Error())
	if strings.Contains(e, "status 503") || strings.Contains(e, "unavailable") {
		return true
	}
	if strings.Contains(e, "status 429") || strings.Contains(e, "resource_exhausted") || strings.Contains(e, "quota") {
		return true
	}
	return false
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
