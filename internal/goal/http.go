package goal

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

type Handler struct {
	repo           Repo
	repoResolver   func(*http.Request) Repo
	createRecorder func(*http.Request, model.Goal)
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) SetRepoResolver(fn func(*http.Request) Repo) {
	h.repoResolver = fn
}

// SetCreateRecorder installs a hook run after each successful create, used
// for the activity feed.
func (h *Handler) SetCreateRecorder(fn func(*http.Request, model.Goal)) {
	h.createRecorder = fn
}

func (h *Handler) repoForRequest(r *http.Request) Repo {
	if h.repoResolver != nil {
		if repo := h.repoResolver(r); repo != nil {
			return repo
		}
	}
	return h.repo
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// /api/goals  (collection)
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	repo := h.repoForRequest(r)

	switch r.Method {
	case http.MethodGet:
		gs, err := repo.List()
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, gs)

	case http.MethodPost:
		var in struct {
			Title           string  `json:"title"`
			Color           string  `json:"color"`
			Icon            string  `json:"icon"`
			Time            *string `json:"time,omitempty"`
			ReminderEnabled bool    `json:"reminderEnabled,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}

		g, err := repo.Create(model.Goal{
			Title:           in.Title,
			Color:           in.Color,
			Icon:            in.Icon,
			Time:            in.Time,
			ReminderEnabled: in.ReminderEnabled,
		})
		if err == ErrEmptyTitle {
			writeErr(w, 400, err.Error())
			return
		}
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		if h.createRecorder != nil {
			h.createRecorder(r, g)
		}
		writeJSON(w, 201, g)

	default:
		writeErr(w, 405, "method not allowed")
	}
}

// /api/goals/{id}
func (h *Handler) Sub(w http.ResponseWriter, r *http.Request) {
	repo := h.repoForRequest(r)

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/goals/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeErr(w, 404, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		g, err := repo.Get(model.GoalID(id))
		if err == ErrNotFound {
			writeErr(w, 404, "not found")
			return
		}
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, g)

	case http.MethodPatch:
		var p Patch
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		g, err := repo.Update(model.GoalID(id), p)
		if err == ErrNotFound {
			writeErr(w, 404, "not found")
			return
		}
		if err == ErrEmptyTitle {
			writeErr(w, 400, err.Error())
			return
		}
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, g)

	case http.MethodDelete:
		if err := repo.Delete(model.GoalID(id)); err != nil {
			if err == ErrNotFound {
				writeErr(w, 404, "not found")
				return
			}
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, map[string]any{"ok": true})

	default:
		writeErr(w, 405, "method not allowed")
	}
}
