package http

import (
	"net/http"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/services"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snap, err := s.exporter.Export(r.Context(), s.ownerID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="prodigy-export.json"`)
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var snap services.Snapshot
	if !decodeJSON(w, r, &snap) {
		return
	}

	owner := s.ownerID(r)
	res, err := s.exporter.Import(r.Context(), owner, snap)
	if err != nil {
		writeError(w, http.StatusBadRequest, "import failed: "+err.Error())
		return
	}

	s.invalidateDashboard(owner)
	writeJSON(w, http.StatusOK, res)
}
