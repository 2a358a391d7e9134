package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rcavaliericopy-max/salomao/internal/models"
	"github.com/rcavaliericopy-max/salomao/internal/shared"
)

// maxCoverBytes bounds cover image uploads.
const maxCoverBytes = 10 << 20

func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := s.store.Folders().List()
	if err != nil {
		s.fail(w, err)
		return
	}

	infos := make([]models.FolderInfo, 0, len(folders))
	for _, folder := range folders {
		infos = append(infos, folder.Info())
	}
	s.writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleGetFolder(w http.ResponseWriter, r *http.Request) {
	folder, err := s.store.Folders().Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, folder.Info())
}

func (s *Server) handleFolderCover(w http.ResponseWriter, r *http.Request) {
	folder, err := s.store.Folders().Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	if !folder.HasCover() {
		s.fail(w, fmt.Errorf("%w: folder %s has no cover", shared.ErrNotFound, folder.ID()))
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(folder.Cover()))
	w.Write(folder.Cover())
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	name, cover, err := parseFolderForm(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	folder := models.NewFolder(name, cover)
	if err := s.store.Folders().Create(folder); err != nil {
		s.fail(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, folder.Info())
}

func (s *Server) handleUpdateFolder(w http.ResponseWriter, r *http.Request) {
	folder, err := s.store.Folders().Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}

	name, cover, err := parseFolderForm(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	if name != "" {
		folder.SetName(name)
	}
	// A missing cover in the form keeps the stored one.
	if len(cover) > 0 {
		folder.SetCover(cover)
	}

	if err := s.store.Folders().Put(folder); err != nil {
		s.fail(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, folder.Info())
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Folders().Delete(chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseFolderForm accepts either a multipart form with a "name" field and
// optional "cover" file, or a JSON body with a "name" field.
func parseFolderForm(r *http.Request) (name string, cover []byte, err error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/") {
		if err := r.ParseMultipartForm(maxCoverBytes); err != nil {
			return "", nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
		}
		name = strings.TrimSpace(r.FormValue("name"))

		file, _, err := r.FormFile("cover")
		if err == nil {
			defer file.Close()
			cover, err = io.ReadAll(io.LimitReader(file, maxCoverBytes))
			if err != nil {
				return "", nil, fmt.Errorf("failed to read cover: %w", err)
			}
		}
		return name, cover, nil
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return strings.TrimSpace(req.Name), nil, nil
}
