// Package httpapi exposes the agent over a small JSON HTTP surface. It is a
// thin I/O wrapper: validation and encoding happen here, all behavior lives
// in the container's services. Chat calls are serialized per user so the
// short-term turn ordering holds even under concurrent requests.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/modularai/agentcore/agent"
	"github.com/modularai/agentcore/logging"
	"github.com/modularai/agentcore/memory"
	"github.com/modularai/agentcore/rag"
)

// DefaultMemoriesLimit applies when GET /api/memories has no limit parameter.
const DefaultMemoriesLimit = 20

// Server holds the handlers' dependencies.
type Server struct {
	agent     *agent.Agent
	memory    *memory.Service
	retriever *rag.Retriever
	logger    logging.Logger

	mu    sync.Mutex
	users map[string]*sync.Mutex
}

// NewServer constructs the HTTP surface over the given services.
func NewServer(a *agent.Agent, mem *memory.Service, retriever *rag.Retriever, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Server{
		agent:     a,
		memory:    mem,
		retriever: retriever,
		logger:    logger,
		users:     make(map[string]*sync.Mutex),
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/documents", s.handleDocuments)
	mux.HandleFunc("GET /api/memories", s.handleMemories)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// userLock returns the per-user mutex, creating it on first use.
func (s *Server) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.users[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.users[userID] = lock
	}
	return lock
}

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
	Steps int    `json:"steps"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UserID == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "user_id and message must be non-empty")
		return
	}

	lock := s.userLock(req.UserID)
	lock.Lock()
	result, err := s.agent.Chat(r.Context(), req.UserID, req.Message)
	lock.Unlock()
	if err != nil {
		s.logger.Error("httpapi.chat.failed", "request_id", reqID, "user_id", req.UserID, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "chat failed")
		return
	}

	s.logger.Info("httpapi.chat.ok", "request_id", reqID, "user_id", req.UserID, "steps", result.Steps)
	writeJSON(w, http.StatusOK, chatResponse{Reply: result.Reply, Steps: result.Steps})
}

type documentsRequest struct {
	Documents []string `json:"documents"`
}

type documentsResponse struct {
	Added int `json:"added"`
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	var req documentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Documents) == 0 {
		writeError(w, http.StatusBadRequest, "documents must be a non-empty list")
		return
	}
	for _, doc := range req.Documents {
		if doc == "" {
			writeError(w, http.StatusBadRequest, "documents must not contain empty strings")
			return
		}
	}

	if err := s.retriever.AddDocuments(r.Context(), req.Documents); err != nil {
		s.logger.Error("httpapi.documents.failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "indexing failed")
		return
	}
	writeJSON(w, http.StatusOK, documentsResponse{Added: len(req.Documents)})
}

type memoriesResponse struct {
	Memories []string `json:"memories"`
}

func (s *Server) handleMemories(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	limit := DefaultMemoriesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	memories, err := s.memory.GetLongTerm(r.Context(), userID, limit)
	if err != nil {
		s.logger.Error("httpapi.memories.failed", "user_id", userID, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "memory lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, memoriesResponse{Memories: memories})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
