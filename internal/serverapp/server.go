package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/sagarzoci/orbitgoals/internal/coach"
	"github.com/sagarzoci/orbitgoals/internal/config"
	"github.com/sagarzoci/orbitgoals/internal/goal"
	"github.com/sagarzoci/orbitgoals/internal/habitlog"
	"github.com/sagarzoci/orbitgoals/internal/httpmw"
	"github.com/sagarzoci/orbitgoals/internal/identity"
	"github.com/sagarzoci/orbitgoals/internal/leaderboard"
	"github.com/sagarzoci/orbitgoals/internal/model"
	"github.com/sagarzoci/orbitgoals/internal/payment"
	"github.com/sagarzoci/orbitgoals/internal/player"
	"github.com/sagarzoci/orbitgoals/internal/stats"
	"github.com/sagarzoci/orbitgoals/internal/telemetry"
)

type Options struct {
	Config *config.Config
	Logger *log.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	cfg := opts.Config
	dataDir := cfg.Server.DataDir
	if strings.TrimSpace(dataDir) == "" {
		dataDir = "data"
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "orbitgoals",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	goalRepo, err := goal.NewFileRepo(filepath.Join(dataDir, "goals"))
	if err != nil {
		return nil, err
	}
	logRepo, err := habitlog.NewFileRepo(filepath.Join(dataDir, "logs"))
	if err != nil {
		return nil, err
	}
	playerRepo, err := player.NewFileRepo(filepath.Join(dataDir, "player"))
	if err != nil {
		return nil, err
	}
	chatRepo, err := coach.NewFileChatRepo(filepath.Join(dataDir, "chat"))
	if err != nil {
		return nil, err
	}
	paymentRepo, err := payment.NewRepo(filepath.Join(dataDir, "payments"))
	if err != nil {
		return nil, err
	}

	userOf := identity.UserFromRequest

	goalsFor := func(r *http.Request) *goal.FileRepo {
		return goalRepo.ForUser(userOf(r).ID)
	}
	logsFor := func(r *http.Request) *habitlog.FileRepo {
		return logRepo.ForUser(userOf(r).ID)
	}
	playerFor := func(r *http.Request) *player.FileRepo {
		return playerRepo.ForUser(userOf(r).ID)
	}

	// Remote sync: without a configured base URL the store stays nil and
	// ranked views come from the demo dataset.
	var store leaderboard.RemoteStore
	if cfg.Leaderboard.BaseURL != "" {
		store = leaderboard.NewHTTPStore(cfg.Leaderboard.BaseURL)
	}
	syncer := leaderboard.NewSyncer(store, leaderboard.NewBreaker(), opts.Logger)
	syncer.SetFetchLimit(cfg.Leaderboard.FetchLimit)
	syncer.SetDemoFallback(cfg.Leaderboard.DemoFallbackEnabled())

	feed := telemetry.NewMemoryRepository()
	fanout := &deltaFanout{syncer: syncer, feed: feed, players: playerRepo}

	goalHandler := goal.NewHandler(goalRepo)
	goalHandler.SetRepoResolver(func(r *http.Request) goal.Repo { return goalsFor(r) })
	goalHandler.SetCreateRecorder(func(r *http.Request, g model.Goal) {
		_ = feed.RecordEvent(userOf(r).ID, telemetry.EventGoalCreated, telemetry.EventMetadata{
			"goalId": string(g.ID),
			"title":  g.Title,
		})
	})
	mux.HandleFunc("/api/goals", goalHandler.Root)
	mux.HandleFunc("/api/goals/", goalHandler.Sub)

	logHandler := habitlog.NewHandler(logRepo)
	logHandler.SetRepoResolver(func(r *http.Request) habitlog.Repo { return logsFor(r) })
	logHandler.SetGoalsResolver(func(r *http.Request) goal.Repo { return goalsFor(r) })
	logHandler.SetBonusResolver(func(r *http.Request) habitlog.BonusSource { return playerFor(r) })
	logHandler.SetUserResolver(userOf)
	logHandler.SetDeltaRecorder(fanout)
	mux.HandleFunc("/api/logs", logHandler.Root)
	mux.HandleFunc("/api/logs/", logHandler.Sub)
	mux.HandleFunc("/api/stats", logHandler.Stats)

	playerHandler := player.NewHandler()
	playerHandler.SetRepoResolver(playerFor)
	playerHandler.SetFeedRecorder(fanout)
	mux.HandleFunc("/api/player/state", playerHandler.State)
	mux.HandleFunc("/api/player/purchase", playerHandler.Purchase)
	mux.HandleFunc("/api/player/spin", playerHandler.Spin)

	lbHandler := leaderboard.NewHandler(syncer)
	lbHandler.SetUserResolver(userOf)
	lbHandler.SetStatsResolver(func(r *http.Request) (model.UserStats, string) {
		goals, _ := goalsFor(r).List()
		logs, err := logsFor(r).Logs()
		if err != nil {
			logs = model.DailyLogs{}
		}
		bonus, _ := playerFor(r).BonusPoints()
		state, _ := playerFor(r).State()
		return stats.Compute(goals, logs, bonus, time.Now()), state.ActiveFrame
	})
	mux.HandleFunc("/api/leaderboard", lbHandler.Board)

	var gen coach.Generator
	if cfg.AI.APIKey != "" {
		gen = coach.NewGeminiClient(cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.APIKey)
	}
	coachHandler := coach.NewHandler(coach.NewService(gen))
	coachHandler.SetGoalsResolver(func(r *http.Request) coach.GoalsSource { return goalsFor(r) })
	coachHandler.SetLogsResolver(func(r *http.Request) coach.LogsSource { return logsFor(r) })
	coachHandler.SetChatResolver(func(r *http.Request) coach.ChatRepo {
		return chatRepo.ForUser(userOf(r).ID)
	})
	mux.HandleFunc("/api/coach/analyze", coachHandler.Analyze)
	mux.HandleFunc("/api/coach/suggest", coachHandler.Suggest)
	mux.HandleFunc("/api/coach/review", coachHandler.Review)
	mux.HandleFunc("/api/quote", coachHandler.Quote)
	mux.HandleFunc("/api/chat", coachHandler.Chat)

	granter := payment.GranterFunc(func(userID string) error {
		if err := playerRepo.ForUser(userID).SetPro(true); err != nil {
			return err
		}
		_ = feed.RecordEvent(userID, telemetry.EventProUpgraded, telemetry.EventMetadata{})
		return nil
	})
	paymentHandler := payment.NewHandler(paymentRepo, granter, payment.AdminCredentials{
		Email:        cfg.Admin.Email,
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
	})
	paymentHandler.SetUserResolver(userOf)
	mux.HandleFunc("/api/payments", paymentHandler.Submit)
	mux.Handle("/api/admin/payments", paymentHandler.RequireAdmin(http.HandlerFunc(paymentHandler.AdminList)))
	mux.Handle("/api/admin/payments/", paymentHandler.RequireAdmin(http.HandlerFunc(paymentHandler.AdminResolve)))
	mux.Handle("/api/admin/stats", paymentHandler.RequireAdmin(http.HandlerFunc(paymentHandler.AdminStats)))

	mux.HandleFunc("/api/feed", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		since := time.Now().AddDate(0, 0, -7)
		events, err := feed.GetEvents(userOf(r).ID, since, nil)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
			return
		}
		summary, _ := telemetry.CalculateStats(events, since)
		writeJSON(w, http.StatusOK, map[string]any{
			"events":  events,
			"summary": summary,
		})
	})

	mux.HandleFunc("/api/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		u := userOf(r)
		state, _ := playerFor(r).State()
		writeJSON(w, http.StatusOK, map[string]any{
			"user":  u,
			"guest": u.IsGuest(),
			"pro":   state.Pro,
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, err := goalRepo.List(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "goal storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "orbitgoals",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	return httpmw.Chain(
		mux,
		httpmw.WithRequestID,
		identity.Middleware,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRecover(opts.Logger),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
