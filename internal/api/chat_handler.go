package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"persona-api/internal/llm"
	"persona-api/internal/persona"
)

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type ChatResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// ChatHandler answers a visitor question in the candidate's voice
// @Summary Chat with the candidate persona
// @Description Sends a visitor message to the AI persona; prior turns for the session are replayed as context
// @Tags persona
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Visitor message and session id"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /chat [post]
func (a *API) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	// Sessions are normally client-generated and persisted client-side;
	// mint one for clients that did not send any.
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	pc, err := a.loader.Load(r.Context(), persona.LoadOptions{
		SessionID: sessionID,
		WithFAQ:   true,
	})
	if err != nil {
		if errors.Is(err, persona.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		log.Printf("[Chat] Context load failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	systemPrompt := persona.ChatSystemPrompt(pc)

	messages := make([]llm.Message, 0, len(pc.History)+1)
	for _, m := range pc.History {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: req.Message})

	reply, err := a.complete(r.Context(), systemPrompt, messages, chatMaxTokens)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			writeError(w, http.StatusInternalServerError, "AI provider not configured")
			return
		}
		log.Printf("[Chat] Model call failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get AI response")
		return
	}

	// History durability is best-effort: the reply is already produced, so
	// a failed append is logged, not surfaced.
	if err := a.db.AppendChatTurn(r.Context(), sessionID, req.Message, reply); err != nil {
		log.Printf("[Chat] Failed to persist chat turn for session %s: %v", sessionID, err)
	}

	writeJSON(w, http.StatusOK, ChatResponse{Message: reply, SessionID: sessionID})
}

func (a *API) complete(ctx context.Context, system string, messages []llm.Message, maxTokens int) (string, error) {
	if a.llm == nil {
		return "", llm.ErrNotConfigured
	}
	return a.llm.Complete(ctx, system, messages, maxTokens)
}
