package coach

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

// GoalsSource yields the user's active goals.
type GoalsSource interface {
	List() ([]model.Goal, error)
}

// LogsSource yields the user's daily logs.
type LogsSource interface {
	Logs() (model.DailyLogs, error)
}

type Handler struct {
	svc *Service

	goalsResolver func(*http.Request) GoalsSource
	logsResolver  func(*http.Request) LogsSource
	chatResolver  func(*http.Request) ChatRepo

	now func() time.Time
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) SetGoalsResolver(fn func(*http.Request) GoalsSource) { h.goalsResolver = fn }
func (h *Handler) SetLogsResolver(fn func(*http.Request) LogsSource)   { h.logsResolver = fn }
func (h *Handler) SetChatResolver(fn func(*http.Request) ChatRepo)     { h.chatResolver = fn }

func (h *Handler) goals(r *http.Request) []model.Goal {
	if h.goalsResolver == nil {
		return nil
	}
	src := h.goalsResolver(r)
	if src == nil {
		return nil
	}
	gs, err := src.List()
	if err != nil {
		return nil
	}
	return gs
}

func (h *Handler) logs(r *http.Request) model.DailyLogs {
	if h.logsResolver == nil {
		return model.DailyLogs{}
	}
	src := h.logsResolver(r)
	if src == nil {
		return model.DailyLogs{}
	}
	logs, err := src.Logs()
	if err != nil {
		return model.DailyLogs{}
	}
	return logs
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// /api/coach/analyze
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return
	}

	var in struct {
		Month string `json:"month"`
	}
	// Empty body means the current month.
	_ = json.NewDecoder(r.Body).Decode(&in)

	month := h.now()
	if in.Month != "" {
		m, err := time.Parse("2006-01", in.Month)
		if err != nil {
			writeErr(w, 400, "bad month, want YYYY-MM")
			return
		}
		month = m
	}

	writeJSON(w, 200, h.svc.AnalyzeProgress(r.Context(), h.goals(r), h.logs(r), month))
}

// /api/coach/suggest
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return
	}

	var in struct {
		Bio string `json:"bio"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)

	writeJSON(w, 200, map[string]any{
		"suggestions": h.svc.SuggestHabits(r.Context(), in.Bio, h.goals(r)),
	})
}

// /api/coach/review
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	writeJSON(w, 200, h.svc.WeeklyReview(r.Context(), h.goals(r), h.logs(r)))
}

// /api/quote
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	writeJSON(w, 200, DailyQuote(h.now()))
}

// /api/chat
//
// GET returns the stored history; POST appends the user's message, asks the
// coach for a reply, stores it and returns both.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.chatResolver == nil {
		writeErr(w, 500, "chat store not configured")
		return
	}
	repo := h.chatResolver(r)
	if repo == nil {
		writeErr(w, 500, "chat store not configured")
		return
	}

	switch r.Method {
	case http.MethodGet:
		msgs, err := repo.List()
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, map[string]any{"messages": msgs})

	case http.MethodPost:
		var in struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		text := strings.TrimSpace(in.Text)
		if text == "" {
			writeErr(w, 400, "empty message")
			return
		}

		userMsg, err := repo.Append(ChatMessage{
			Text:      text,
			Sender:    SenderUser,
			Timestamp: h.now().UnixMilli(),
		})
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}

		reply := h.svc.Reply(r.Context(), text, h.goals(r), h.logs(r))
		aiMsg, err := repo.Append(ChatMessage{
			Text:      reply,
			Sender:    SenderAI,
			Timestamp: h.now().UnixMilli(),
		})
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}

		writeJSON(w, 200, map[string]any{"message": userMsg, "reply": aiMsg})

	default:
		writeErr(w, 405, "method not allowed")
	}
}
