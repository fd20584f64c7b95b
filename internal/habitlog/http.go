package habitlog

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sagarzoci/orbitgoals/internal/achievement"
	"github.com/sagarzoci/orbitgoals/internal/goal"
	"github.com/sagarzoci/orbitgoals/internal/model"
	"github.com/sagarzoci/orbitgoals/internal/stats"
)

// DeltaRecorder propagates point/task deltas to the leaderboard. It is
// fire-and-forget and must never return an error to the toggle path.
type DeltaRecorder interface {
	RecordDelta(user model.User, points, tasks int)
}

// BonusSource exposes the banked bonus points that feed into stat
// computation (spin wheel winnings etc).
type BonusSource interface {
	BonusPoints() (int, error)
}

type Handler struct {
	repo          Repo
	repoResolver  func(*http.Request) Repo
	goalsResolver func(*http.Request) goal.Repo
	bonusResolver func(*http.Request) BonusSource
	userResolver  func(*http.Request) model.User
	recorder      DeltaRecorder

	now func() time.Time
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo, now: time.Now}
}

func (h *Handler) SetRepoResolver(fn func(*http.Request) Repo)         { h.repoResolver = fn }
func (h *Handler) SetGoalsResolver(fn func(*http.Request) goal.Repo)   { h.goalsResolver = fn }
func (h *Handler) SetBonusResolver(fn func(*http.Request) BonusSource) { h.bonusResolver = fn }
func (h *Handler) SetUserResolver(fn func(*http.Request) model.User)   { h.userResolver = fn }
func (h *Handler) SetDeltaRecorder(rec DeltaRecorder)                  { h.recorder = rec }

func (h *Handler) repoForRequest(r *http.Request) Repo {
	if h.repoResolver != nil {
		if repo := h.repoResolver(r); repo != nil {
			return repo
		}
	}
	return h.repo
}

func (h *Handler) userForRequest(r *http.Request) model.User {
	if h.userResolver == nil {
		return model.User{ID: model.GuestUserID}
	}
	return h.userResolver(r)
}

func (h *Handler) activeGoals(r *http.Request) []model.Goal {
	if h.goalsResolver == nil {
		return nil
	}
	repo := h.goalsResolver(r)
	if repo == nil {
		return nil
	}
	gs, err := repo.List()
	if err != nil {
		return nil
	}
	return gs
}

func (h *Handler) bonusPoints(r *http.Request) int {
	if h.bonusResolver == nil {
		return 0
	}
	src := h.bonusResolver(r)
	if src == nil {
		return 0
	}
	bonus, err := src.BonusPoints()
	if err != nil {
		return 0
	}
	return bonus
}

func (h *Handler) computeStats(r *http.Request, logs model.DailyLogs) model.UserStats {
	return stats.Compute(h.activeGoals(r), logs, h.bonusPoints(r), h.now())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// /api/logs
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	logs, err := h.repoForRequest(r).Logs()
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, logs)
}

// /api/logs/{date}/{goalID}
//
// The optimistic-update path: the local write and stat recompute happen
// synchronously; the leaderboard delta is dispatched in the background and
// its outcome never affects the response.
func (h *Handler) Sub(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeErr(w, 405, "method not allowed")
		return
	}

	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/logs/"), "/")
	parts := strings.Split(tail, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		writeErr(w, 404, "not found")
		return
	}
	date, goalID := parts[0], model.GoalID(parts[1])

	var in struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, 400, "bad json")
		return
	}
	status, err := model.ParseStatus(in.Status)
	if err != nil {
		writeErr(w, 400, err.Error())
		return
	}

	repo := h.repoForRequest(r)
	prev, err := repo.SetStatus(date, goalID, status)
	if err == ErrBadDate || err == ErrBadStatus {
		writeErr(w, 400, err.Error())
		return
	}
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}

	if h.recorder != nil {
		if points, tasks := stats.CompletionDelta(prev, status); points != 0 || tasks != 0 {
			user := h.userForRequest(r)
			go h.recorder.RecordDelta(user, points, tasks)
		}
	}

	logs, err := repo.Logs()
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	userStats := h.computeStats(r, logs)

	writeJSON(w, 200, map[string]any{
		"ok":           true,
		"date":         date,
		"goalId":       goalID,
		"previous":     prev,
		"status":       status,
		"stats":        userStats,
		"achievements": achievement.Unlocked(userStats),
	})
}

// /api/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}

	logs, err := h.repoForRequest(r).Logs()
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	userStats := h.computeStats(r, logs)

	writeJSON(w, 200, map[string]any{
		"stats":        userStats,
		"tier":         stats.TierFor(userStats.Level),
		"achievements": achievement.Unlocked(userStats),
	})
}
