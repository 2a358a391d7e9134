package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rcavaliericopy-max/salomao/internal/shared"
)

// maxSettingBytes bounds setting values; the app cover is an image.
const maxSettingBytes = 10 << 20

func (s *Server) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	value, err := s.store.Settings().Get(chi.URLParam(r, "key"))
	if err != nil {
		s.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(value))
	w.Write(value)
}

// handlePutSetting stores the raw request body under the key.
func (s *Server) handlePutSetting(w http.ResponseWriter, r *http.Request) {
	value, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSettingBytes))
	if err != nil {
		s.fail(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}
	if len(value) == 0 {
		s.fail(w, fmt.Errorf("%w: empty setting value", shared.ErrInvalidInput))
		return
	}

	if err := s.store.Settings().Put(chi.URLParam(r, "key"), value); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRepair clears the library and reseeds from the manifest.
func (s *Server) handleRepair(w http.ResponseWriter, r *http.Request) {
	result, err := s.seeder.Repair(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}
