package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"SereneAI/models"
	"SereneAI/pkg/config"
	svc "SereneAI/pkg/services"
)

func TestSessionStatusMapsErrors(t *testing.T) {
	if code, _ := sessionStatus(svc.ErrNotFound); code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing session, got %d", code)
	}
	// wrapped not-found still maps to 404
	wrapped := fmt.Errorf("get session: %w", svc.ErrNotFound)
	if code, _ := sessionStatus(wrapped); code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped not-found, got %d", code)
	}
	// transport or store failures must not masquerade as 404
	if code, _ := sessionStatus(errors.New("rpc error: code = Unavailable")); code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for store failure, got %d", code)
	}
}

func TestBuildHistoryMapsRolesAndBounds(t *testing.T) {
	prev := config.MaxConversationLength
	config.MaxConversationLength = 4
	defer func() { config.MaxConversationLength = prev }()

	prior := []models.ChatMessage{
		{Role: models.RoleAssistant, Content: "hi"},
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleAssistant, Content: "how are you"},
		{Role: models.RoleUser, Content: "fine"},
	}
	h := buildHistory(prior, "and you?")
	if len(h) != 4 {
		t.Fatalf("expected history bounded to 4 turns, got %d", len(h))
	}
	// oldest turn trimmed, newest kept
	if h[0].Role != "user" || h[0].Text != "hello" {
		t.Fatalf("unexpected first turn: %+v", h[0])
	}
	if h[1].Role != "model" {
		t.Fatalf("expected assistant turn mapped to model role, got %q", h[1].Role)
	}
	last := h[len(h)-1]
	if last.Role != "user" || last.Text != "and you?" {
		t.Fatalf("unexpected final turn: %+v", last)
	}
}
