package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

type assistantRequest struct {
	Message string `json:"message"`
}

type assistantResponse struct {
	Reply string `json:"reply"`
}

type chatEntryResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleAssistantMessage(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	owner := s.ownerID(r)
	reply, err := s.assistant.HandleMessage(r.Context(), owner, sanitizeInput(message))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.invalidateDashboard(owner)
	writeJSON(w, http.StatusOK, assistantResponse{Reply: reply})
}

func (s *Server) handleAssistantHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	entries, err := s.assistant.History(r.Context(), s.ownerID(r), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]chatEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, chatEntryResponse{
			ID:        e.ID,
			Message:   e.Message,
			Response:  e.Response,
			CreatedAt: e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
