package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"echoclime/pkg/session"
)

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionHandler struct {
	Store  session.Service
	Logger *slog.Logger
}

type FieldError struct {
	Location string `json:"location"`
	Param    string `json:"param"`
	Value    string `json:"value"`
	Msg      string `json:"msg"`
}

func NewSessionHandler(store session.Service, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		Store:  store,
		Logger: logger,
	}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	user, err := h.Store.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// The two validation failures are deliberately indistinguishable at
		// this boundary: callers only learn "it didn't work".
		if errors.Is(err, session.ErrMissingField) || errors.Is(err, session.ErrPasswordTooShort) {
			if ok := WriteResp(w, h.Logger, map[string]any{"message": "invalid email or password"}, http.StatusUnauthorized); ok {
				h.Logger.Info("login rejected", "email", req.Email)
			}
			return
		}
		h.Logger.Error("login", "error", err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if ok := WriteResp(w, h.Logger, map[string]any{"user": user}, http.StatusOK); ok {
		h.Logger.Info("login", "user", user.ID)
	}
}

func (h *SessionHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	user, err := h.Store.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrMissingField) || errors.Is(err, session.ErrPasswordTooShort) {
			if ok := WriteResp(w, h.Logger, map[string]any{
				"errors": []FieldError{
					{
						Location: "body",
						Param:    "email",
						Value:    req.Email,
						Msg:      "please fill in all fields correctly",
					},
				},
			}, http.StatusUnprocessableEntity); ok {
				h.Logger.Info("signup rejected", "email", req.Email)
			}
			return
		}
		h.Logger.Error("signup", "error", err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if ok := WriteResp(w, h.Logger, map[string]any{"user": user}, http.StatusOK); ok {
		h.Logger.Info("signup", "user", user.ID)
	}
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Store.Logout()

	if ok := WriteResp(w, h.Logger, map[string]any{"message": "success"}, http.StatusOK); ok {
		h.Logger.Info("logout")
	}
}

// GetSession exposes the (user, loading) snapshot pages poll to decide
// whether to redirect.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	snap := h.Store.Snapshot()

	WriteResp(w, h.Logger, map[string]any{
		"user":    snap.User,
		"loading": snap.Loading,
	}, http.StatusOK)
}

func DecodeJSONBody(w http.ResponseWriter, r *http.Request, req any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		writeError(w, http.StatusBadRequest, typeError, "invalid Content-Type")
		return false
	}

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, typeError, "bad json")
		return false
	}

	return true
}

func WriteResp(w http.ResponseWriter, logger *slog.Logger, body map[string]any, status int) bool {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to write JSON response", slog.Any("err", err))
		return false
	}
	return true
}
