package chat

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/selimbz/partsbot/internal/catalog"
)

type Handler struct {
	engine  *Engine
	repo    Repo
	browser catalog.Browser

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewHandler(engine *Engine, repo Repo, browser catalog.Browser) *Handler {
	return &Handler{
		engine:  engine,
		repo:    repo,
		browser: browser,
		locks:   make(map[string]*sync.Mutex),
	}
}

// sessionLock serializes turns per session: the session record is
// mutated in place and the engine does not guard it itself.
func (h *Handler) sessionLock(sessionID string) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		h.locks[sessionID] = l
	}
	return l
}

// Chat — POST /api/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	message := strings.TrimSpace(payload.Message)
	if message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "empty message"})
		return
	}

	sessionID := payload.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	// any internal fault becomes a generic apology; committed session
	// state is untouched because the engine commits last
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("chat turn panicked", "session_id", sessionID, "panic", rec)
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"reply":       replyApology,
				"suggestions": []string{"Try Again"},
				"type":        "text",
				"sessionId":   sessionID,
			})
		}
	}()

	lock := h.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	reply := h.engine.HandleTurn(r.Context(), sessionID, message)

	writeJSON(w, http.StatusOK, map[string]any{
		"reply":       reply.Reply,
		"suggestions": reply.Suggestions,
		"data":        reply.Data,
		"type":        reply.Type,
		"sessionId":   sessionID,
	})
}

// Health — GET /api/health
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "partsbot",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// Conversations — GET /api/conversations
func (h *Handler) Conversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.repo.ListConversations(r.Context())
	if err != nil {
		slog.Error("list conversations failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch conversations"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"conversations": conversations,
		"total":         len(conversations),
	})
}

// ConversationDetails — GET /api/conversations/{conversationID}
func (h *Handler) ConversationDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationID")
	conversation, messages, err := h.repo.GetConversation(r.Context(), id)
	if err != nil {
		slog.Error("get conversation failed", "conversation_id", id, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch conversation"})
		return
	}
	if conversation == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "conversation not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"conversation": conversation,
		"messages":     messages,
	})
}

// StatsHandler — GET /api/stats
func (h *Handler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		slog.Error("stats failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch stats"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Products — GET /api/products?page=&limit=&search=
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	products, total, err := h.browser.ListProducts(r.Context(), page, limit, search)
	if err != nil {
		slog.Error("list products failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch products"})
		return
	}
	if limit > 100 {
		limit = 100
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"products": products,
		"pagination": map[string]int{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": (total + limit - 1) / limit,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
