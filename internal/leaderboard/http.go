package leaderboard

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

// LocalStatsFunc supplies the requester's locally computed stats and active
// avatar frame for the merge step.
type LocalStatsFunc func(*http.Request) (model.UserStats, string)

type Handler struct {
	syncer        *Syncer
	userResolver  func(*http.Request) model.User
	statsResolver LocalStatsFunc
}

func NewHandler(syncer *Syncer) *Handler {
	return &Handler{syncer: syncer}
}

func (h *Handler) SetUserResolver(fn func(*http.Request) model.User) { h.userResolver = fn }
func (h *Handler) SetStatsResolver(fn LocalStatsFunc)                { h.statsResolver = fn }

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// /api/leaderboard?period=daily|weekly|monthly&country=XX&friends=id1,id2
func (h *Handler) Board(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}

	q := r.URL.Query()
	period, err := ParsePeriod(q.Get("period"))
	if err != nil {
		writeErr(w, 400, err.Error())
		return
	}

	opts := FetchOptions{Country: strings.TrimSpace(q.Get("country"))}
	if raw := strings.TrimSpace(q.Get("friends")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				opts.Friends = append(opts.Friends, id)
			}
		}
	}

	if h.userResolver != nil {
		opts.User = h.userResolver(r)
	}
	if h.statsResolver != nil {
		opts.LocalStats, opts.Frame = h.statsResolver(r)
	}

	entries := h.syncer.FetchRanked(r.Context(), period, opts)
	writeJSON(w, 200, map[string]any{
		"period":  period,
		"entries": entries,
	})
}
