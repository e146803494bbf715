package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"echoclime/pkg/claims"
	"echoclime/pkg/session"
	"echoclime/pkg/story"
)

const (
	lenID          int    = 24
	typeError      string = "error"
	typeMessage    string = "message"
	muxVarStoryID  string = "story_id"
	muxVarCategory string = "category"
)

type StoryHandler struct {
	Service story.ServiceStory
	Logger  *slog.Logger
}

func NewStoryHandler(service story.ServiceStory, logger *slog.Logger) *StoryHandler {
	return &StoryHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *StoryHandler) GetAllStories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Logger, h.Service.GetAll())
}

func (h *StoryHandler) GetStoryByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	storyID, ok := vars[muxVarStoryID]
	if !ok || len(storyID) != lenID {
		writeError(w, http.StatusBadRequest, typeMessage, "invalid story id")
		return
	}

	story, err := h.Service.GetByID(storyID)
	if err != nil {
		writeError(w, http.StatusNotFound, typeMessage, err.Error())
		return
	}

	writeJSON(w, h.Logger, story)
}

func (h *StoryHandler) GetStoriesByCategory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	category, ok := vars[muxVarCategory]
	if !ok {
		writeError(w, http.StatusBadRequest, typeMessage, "invalid category")
		return
	}

	stories := h.Service.GetByCategory(category)

	writeJSON(w, h.Logger, stories)
}

func (h *StoryHandler) PublishStory(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var newStory story.Story
	if err := json.NewDecoder(r.Body).Decode(&newStory); err != nil {
		h.Logger.Error("invalid json", "error", err)
		writeError(w, http.StatusBadRequest, typeError, "invalid JSON payload")
		return
	}

	user, ok := getUserFromContext(w, r)
	if !ok {
		return
	}

	if err := h.Service.Publish(&newStory, user); err != nil {
		writeError(w, http.StatusBadRequest, typeError, err.Error())
		return
	}

	if ok := writeJSON(w, h.Logger, newStory); ok {
		h.Logger.Info("story published", "user", user.ID, "story", newStory.ID)
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, data any) bool {
	resp, err := json.Marshal(data)
	if err != nil {
		logger.Error("Failed to serialize JSON response", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "failed json marshal")
		return false
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(resp); err != nil {
		logger.Error("Failed to write response to client", "error", err)
		return false
	}
	return true
}

func getUserFromContext(w http.ResponseWriter, r *http.Request) (*session.User, bool) {
	user, ok := r.Context().Value(claims.SessionContextKey).(*session.User)
	if !ok || user == nil || user.ID == "" {
		writeError(w, http.StatusUnauthorized, typeMessage, "unauthorized")
		return nil, false
	}
	return user, true
}

func writeError(w http.ResponseWriter, status int, field, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{field: msg}); err != nil {
		return
	}
}
