package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"codeloft/internal/indexer"
	"codeloft/internal/prompt"
	"codeloft/internal/storage"
	"codeloft/pkg/types"
)

type createProjectRequest struct {
	Name         string            `json:"name"`
	FileContents map[string]string `json:"file_contents"`
}

type indexRequest struct {
	ProjectID string `json:"project_id"`
}

type indexResponse struct {
	ChunksIndexed int `json:"chunksIndexed"`
}

type chatRequest struct {
	ProjectID   string             `json:"project_id"`
	Question    string             `json:"question"`
	History     []types.ChatTurn   `json:"history,omitempty"`
	CurrentFile *types.CurrentFile `json:"current_file,omitempty"`
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.ListProjects(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if infos == nil {
		infos = []storage.ProjectInfo{}
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}
	if req.FileContents == nil {
		req.FileContents = map[string]string{}
	}

	paths := make([]string, 0, len(req.FileContents))
	for path := range req.FileContents {
		paths = append(paths, path)
	}
	project := &types.Project{
		ID:           uuid.NewString(),
		Name:         req.Name,
		FileTree:     types.BuildTree(paths),
		FileContents: req.FileContents,
	}
	if err := s.store.CreateProject(r.Context(), project); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.store.GetProject(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// handleUpdateProject saves a project and kicks off background
// re-indexing, since any save may shift chunk boundaries.
func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	project, err := s.store.GetProject(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if req.Name != "" {
		project.Name = req.Name
	}
	if req.FileContents != nil {
		paths := make([]string, 0, len(req.FileContents))
		for path := range req.FileContents {
			paths = append(paths, path)
		}
		project.FileContents = req.FileContents
		project.FileTree = types.BuildTree(paths)
	}
	if err := s.store.UpdateProject(r.Context(), project); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.indexer.TriggerAsync(id, func(stats *indexer.Stats, err error) {
		if err != nil {
			s.logger.Printf("background index %s failed: %v", id, err)
			return
		}
		s.logger.Printf("background index %s: %d chunks in %s", id, stats.ChunksIndexed, stats.Duration)
	})

	writeJSON(w, http.StatusOK, project)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.ProjectID == "" {
		writeError(w, http.StatusBadRequest, "project_id required")
		return
	}

	stats, err := s.indexer.Index(r.Context(), req.ProjectID)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrProjectNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, types.ErrEmbedding):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, indexResponse{ChunksIndexed: stats.ChunksIndexed})
}

// handleChat answers a question over the project's index. The response
// body is a raw text stream: fragments concatenate to the full answer
// with no framing, flushed incrementally.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.ProjectID == "" || strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "project_id and question required")
		return
	}

	if _, err := s.store.GetProject(r.Context(), req.ProjectID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Empty retrieval is fine; the prompt degrades to system + question.
	chunks, err := s.retriever.Retrieve(r.Context(), req.ProjectID, req.Question)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	messages := prompt.Build(req.Question, chunks, req.CurrentFile, req.History)
	stream, err := s.chat.Stream(r.Context(), s.chatModel, messages)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)

	// The sink receives full accumulated snapshots; write only the new
	// suffix. A snapshot that is not an extension of what was already
	// sent (the error-replacement case) can't be unwritten over a raw
	// stream, so the notice goes out on its own line.
	sent := ""
	sink := func(text string) {
		if strings.HasPrefix(text, sent) {
			_, _ = io.WriteString(w, text[len(sent):])
		} else {
			_, _ = io.WriteString(w, "\n"+text)
		}
		sent = text
		if flusher != nil {
			flusher.Flush()
		}
	}

	if _, err := s.streamer.Relay(r.Context(), stream, sink); err != nil {
		s.logger.Printf("chat stream for %s failed: %v", req.ProjectID, err)
	}
}
