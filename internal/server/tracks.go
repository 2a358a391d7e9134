package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rcavaliericopy-max/salomao/internal/models"
	"github.com/rcavaliericopy-max/salomao/internal/shared"
)

// maxTrackBytes bounds audio uploads.
const maxTrackBytes = 200 << 20

func (s *Server) handleListTracks(w http.ResponseWriter, r *http.Request) {
	var (
		tracks []*models.AudioTrack
		err    error
	)

	if folderID := r.URL.Query().Get("folder"); folderID != "" {
		tracks, err = s.store.Tracks().ListByFolder(folderID)
	} else {
		tracks, err = s.store.Tracks().List()
	}
	if err != nil {
		s.fail(w, err)
		return
	}

	infos := make([]models.TrackInfo, 0, len(tracks))
	for _, track := range tracks {
		infos = append(infos, track.Info())
	}
	s.writeJSON(w, http.StatusOK, infos)
}

// handleTrackAudio streams the stored audio payload with range support so
// the browser's audio element can seek.
func (s *Server) handleTrackAudio(w http.ResponseWriter, r *http.Request) {
	track, err := s.store.Tracks().Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}

	contentType := track.MimeType()
	if contentType == "" {
		contentType = http.DetectContentType(track.Blob())
	}
	w.Header().Set("Content-Type", contentType)

	http.ServeContent(w, r, track.Name(), track.AddedAt(), bytes.NewReader(track.Blob()))
}

// handleUploadTrack accepts one or more audio files in a multipart form
// under the "file" field. Non-audio parts are rejected; the display name
// is the filename without its extension.
func (s *Server) handleUploadTrack(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxTrackBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.fail(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	folderID := strings.TrimSpace(r.FormValue("folderId"))
	if folderID == "" {
		folderID = models.RootFolderID
	}
	if folderID != models.RootFolderID {
		if _, err := s.store.Folders().Get(folderID); err != nil {
			s.fail(w, err)
			return
		}
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		s.fail(w, fmt.Errorf("%w: no files in upload", shared.ErrMissingArgument))
		return
	}

	var infos []models.TrackInfo
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			s.fail(w, fmt.Errorf("failed to open upload: %w", err))
			return
		}

		blob, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			s.fail(w, fmt.Errorf("failed to read upload: %w", err))
			return
		}

		mimeType := header.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = http.DetectContentType(blob)
		}
		if !strings.HasPrefix(mimeType, "audio/") {
			s.fail(w, fmt.Errorf("%w: %s is not an audio file", shared.ErrInvalidInput, header.Filename))
			return
		}

		name := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
		track := models.NewAudioTrack(folderID, name, blob, mimeType)
		if err := s.store.Tracks().Create(track); err != nil {
			s.fail(w, err)
			return
		}
		infos = append(infos, track.Info())
	}

	s.writeJSON(w, http.StatusCreated, infos)
}

// handleMoveTrack re-files a track under another folder.
func (s *Server) handleMoveTrack(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FolderID string `json:"folderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.store.Tracks().Move(id, req.FolderID); err != nil {
		s.fail(w, err)
		return
	}

	track, err := s.store.Tracks().Get(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, track.Info())
}

func (s *Server) handleDeleteTrack(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Tracks().Delete(chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
