package services

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestExtractCandidateText(t *testing.T) {
	raw := `{"candidates":[{"content":{"parts":[{"text":"I hear you."}],"role":"model"},"finishReason":"STOP"}]}`
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := extractCandidateText(parsed); got != "I hear you." {
		t.Fatalf("expected candidate text, got %q", got)
	}
}

func TestExtractCandidateTextSkipsEmptyParts(t *testing.T) {
	raw := `{"candidates":[{"content":{"parts":[{"text":"  "},{"text":"second part"}]}}]}`
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := extractCandidateText(parsed); got != "second part" {
		t.Fatalf("expected second part, got %q", got)
	}
}

func TestExtractCandidateTextMalformed(t *testing.T) {
	for _, raw := range []string{
		`{}`,
		`{"candidates":[]}`,
		`{"candidates":[{"content":{}}]}`,
		`{"candidates":[{"content":{"parts":[]}}]}`,
	} {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			t.Fatalf("unmarshal %q: %v", raw, err)
		}
		if got := extractCandidateText(parsed); got != "" {
			t.Fatalf("expected empty text for %q, got %q", raw, got)
		}
	}
}

func TestIsRetriable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("status 503: model overloaded"), true},
		{errors.New("status 429: RESOURCE_EXHAUSTED"), true},
		{errors.New("quota exceeded for project"), true},
		{errors.New("status 400: invalid argument"), false},
		{errors.New("http error: connection refused"), false},
	}
	for _, tc := range cases {
		if got := isRetriable(tc.err); got != tc.want {
			t.Fatalf("isRetriable(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestChatPayloadNormalizesRoles(t *testing.T) {
	body, err := chatPayload([]ChatMessage{
		{Role: "assistant", Text: "hi"},
		{Role: "Model", Text: "hello"},
		{Role: "user", Text: "hey"},
	}, "system text")
	if err != nil {
		t.Fatalf("chatPayload: %v", err)
	}
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	contents := parsed["contents"].([]any)
	if len(contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(contents))
	}
	roles := []string{}
	for _, c := range contents {
		roles = append(roles, c.(map[string]any)["role"].(string))
	}
	// unknown roles collapse to "user"; "model" survives case-folding
	if roles[0] != "user" || roles[1] != "model" || roles[2] != "user" {
		t.Fatalf("unexpected roles: %v", roles)
	}
	if _, ok := parsed["systemInstruction"]; !ok {
		t.Fatalf("expected systemInstruction present")
	}

	body, _ = chatPayload([]ChatMessage{{Role: "user", Text: "x"}}, "")
	parsed = map[string]any{}
	_ = json.Unmarshal(body, &parsed)
	if _, ok := parsed["systemInstruction"]; ok {
		t.Fatalf("expected no systemInstruction for bare prompts")
	}
}
