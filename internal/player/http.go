package player

import (
	"encoding/json"
	"net/http"
	"time"
)

// FeedRecorder receives shop and spin outcomes for the activity feed. It must
// not block the request path.
type FeedRecorder interface {
	RecordPurchase(userID string, item ShopItem)
	RecordSpin(userID string, res SpinResult)
}

type Handler struct {
	repoResolver func(*http.Request) *FileRepo
	feed         FeedRecorder

	now func() time.Time
}

func NewHandler() *Handler {
	return &Handler{now: time.Now}
}

func (h *Handler) SetRepoResolver(fn func(*http.Request) *FileRepo) {
	h.repoResolver = fn
}

func (h *Handler) SetFeedRecorder(fr FeedRecorder) { h.feed = fr }

func (h *Handler) repoForRequest(r *http.Request) *FileRepo {
	if h.repoResolver == nil {
		return nil
	}
	return h.repoResolver(r)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// /api/player/state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	repo := h.repoForRequest(r)
	if repo == nil {
		writeErr(w, 500, "player store unavailable")
		return
	}
	us, err := repo.State()
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, StateResponse{UserState: us, Catalog: ShopCatalog})
}

// /api/player/purchase
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return
	}
	repo := h.repoForRequest(r)
	if repo == nil {
		writeErr(w, 500, "player store unavailable")
		return
	}

	var in struct {
		ItemID string `json:"itemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, 400, "bad json")
		return
	}

	us, err := repo.Purchase(in.ItemID, h.now())
	switch err {
	case nil:
	case ErrUnknownItem:
		writeErr(w, 404, err.Error())
		return
	case ErrAlreadyOwned, ErrInsufficientCoins:
		writeErr(w, 400, err.Error())
		return
	default:
		writeErr(w, 500, err.Error())
		return
	}
	if h.feed != nil {
		if item, ok := catalogItem(in.ItemID); ok {
			h.feed.RecordPurchase(repo.UserID(), item)
		}
	}
	writeJSON(w, 200, StateResponse{UserState: us, Catalog: ShopCatalog})
}

// /api/player/spin
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return
	}
	repo := h.repoForRequest(r)
	if repo == nil {
		writeErr(w, 500, "player store unavailable")
		return
	}

	res, err := repo.Spin(h.now())
	if err == ErrAlreadySpun {
		writeErr(w, 409, err.Error())
		return
	}
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	if h.feed != nil {
		h.feed.RecordSpin(repo.UserID(), res)
	}
	writeJSON(w, 200, map[string]any{"ok": true, "result": res})
}
