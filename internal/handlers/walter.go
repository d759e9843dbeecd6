package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"walter-backend/internal/models"
)

type assistant interface {
	Ask(ctx context.Context, question string) (string, error)
}

type WalterHandler struct {
	assistant assistant
}

func NewWalterHandler(a assistant) *WalterHandler {
	return &WalterHandler{assistant: a}
}

// Ask relays the webhook question to the assistant and returns its reply.
func (h *WalterHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	question := req.UserText()
	if question == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No message to process", r))
		return
	}

	reply, err := h.assistant.Ask(r.Context(), question)
	if err != nil {
		log.Printf("Error talking to assistant: %v", err)
		writeJSON(w, http.StatusBadGateway, errorResp("AI_ERROR", "Failed to get assistant response", r))
		return
	}

	writeJSON(w, http.StatusOK, models.AskResponse{Reply: reply})
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}
