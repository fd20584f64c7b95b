package payment

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

// ProGranter flips the premium flag in the local player store when a
// request is approved.
type ProGranter interface {
	GrantPro(userID string) error
}

// AdminCredentials is the configured admin login. PasswordHash (bcrypt)
// wins over the plaintext Password fallback when both are set.
type AdminCredentials struct {
	Email        string
	Password     string
	PasswordHash string
}

func (c AdminCredentials) check(email, password string) bool {
	if c.Email == "" || !strings.EqualFold(email, c.Email) {
		return false
	}
	if c.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
	}
	return c.Password != "" && password == c.Password
}

type Handler struct {
	repo         *Repo
	granter      ProGranter
	admin        AdminCredentials
	userResolver func(*http.Request) model.User
}

func NewHandler(repo *Repo, granter ProGranter, admin AdminCredentials) *Handler {
	return &Handler{repo: repo, granter: granter, admin: admin}
}

func (h *Handler) SetUserResolver(fn func(*http.Request) model.User) {
	h.userResolver = fn
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// RequireAdmin guards the admin endpoints with HTTP basic auth against the
// configured credentials.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, password, ok := r.BasicAuth()
		if !ok || !h.admin.check(email, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="orbitgoals admin"`)
			writeErr(w, 401, "admin credentials required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// /api/payments
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return
	}

	var user model.User
	if h.userResolver != nil {
		user = h.userResolver(r)
	}
	if user.IsGuest() {
		writeErr(w, 403, "sign in to upgrade")
		return
	}

	req, created, err := h.repo.Submit(user)
	if err == ErrNoUser {
		writeErr(w, 400, err.Error())
		return
	}
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}

	code := 200
	if created {
		code = 201
	}
	writeJSON(w, code, map[string]any{
		"request":        req,
		"alreadyPending": !created,
	})
}

// /api/admin/payments
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	reqs, err := h.repo.List()
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, reqs)
}

// /api/admin/payments/{id}/approve and /api/admin/payments/{id}/reject
func (h *Handler) AdminResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return
	}

	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/admin/payments/"), "/")
	parts := strings.Split(tail, "/")
	if len(parts) != 2 {
		writeErr(w, 404, "not found")
		return
	}
	id, action := parts[0], parts[1]

	var (
		req model.PaymentRequest
		err error
	)
	switch action {
	case "approve":
		req, err = h.repo.Approve(id)
	case "reject":
		req, err = h.repo.Reject(id)
	default:
		writeErr(w, 404, "not found")
		return
	}

	if err == ErrNotFound {
		writeErr(w, 404, err.Error())
		return
	}
	if err == ErrTerminal {
		writeErr(w, 409, err.Error())
		return
	}
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}

	if req.Status == model.PaymentApproved && h.granter != nil {
		if err := h.granter.GrantPro(req.UserID); err != nil {
			writeErr(w, 500, "approved but pro flag update failed: "+err.Error())
			return
		}
	}
	writeJSON(w, 200, req)
}

// /api/admin/stats
func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	st, err := h.repo.Stats()
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, st)
}

// GranterFunc adapts a function to the ProGranter interface.
type GranterFunc func(userID string) error

func (f GranterFunc) GrantPro(userID string) error {
	return f(userID)
}
