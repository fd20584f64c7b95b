package payment

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

// DefaultAmount is the flat premium upgrade price.
const DefaultAmount = 30

var (
	ErrNotFound = errors.New("payment request not found")
	ErrTerminal = errors.New("payment request already resolved")
	ErrNoUser   = errors.New("user id required")
)

// AdminStats summarizes the approval ledger for the admin dashboard.
type AdminStats struct {
	TotalRequests int `json:"totalRequests"`
	ActiveSubs    int `json:"activeSubs"`
	Revenue       int `json:"revenue"`
}

type fileState struct {
	Requests map[string]model.PaymentRequest `json:"requests"`
}

// Repo stores payment requests. Unlike the per-user stores this one is
// global: the admin reviews all users' requests in one queue.
type Repo struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

func NewRepo(dataDir string) (*Repo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &Repo{
		path: filepath.Join(dataDir, "payments.json"),
		s:    fileState{Requests: map[string]model.PaymentRequest{}},
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repo) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.s = fileState{Requests: map[string]model.PaymentRequest{}}
			return nil
		}
		return err
	}

	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.Requests == nil {
		loaded.Requests = map[string]model.PaymentRequest{}
	}
	r.s = loaded
	return nil
}

func (r *Repo) saveLocked() error {
	b, err := json.MarshalIndent(r.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}

// Submit files an upgrade request for the user. If a pending request
// already exists it is returned unchanged with created=false: duplicate
// submission is an informational no-op, not an error.
func (r *Repo) Submit(user model.User) (model.PaymentRequest, bool, error) {
	if user.ID == "" {
		return model.PaymentRequest{}, false, ErrNoUser
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, req := range r.s.Requests {
		if req.UserID == user.ID && req.Status == model.PaymentPending {
			return req, false, nil
		}
	}

	req := model.PaymentRequest{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		Amount:    DefaultAmount,
		Status:    model.PaymentPending,
		Date:      time.Now(),
	}
	r.s.Requests[req.ID] = req

	if err := r.saveLocked(); err != nil {
		return model.PaymentRequest{}, false, err
	}
	return req, true, nil
}

// List returns all requests, newest first.
func (r *Repo) List() ([]model.PaymentRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.PaymentRequest, 0, len(r.s.Requests))
	for _, req := range r.s.Requests {
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (r *Repo) resolve(id string, status model.PaymentStatus) (model.PaymentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.s.Requests[id]
	if !ok {
		return model.PaymentRequest{}, ErrNotFound
	}
	if req.Terminal() {
		return model.PaymentRequest{}, ErrTerminal
	}

	req.Status = status
	r.s.Requests[id] = req
	if err := r.saveLocked(); err != nil {
		return model.PaymentRequest{}, err
	}
	return req, nil
}

// Approve marks a pending request approved. Terminal: it cannot be undone.
func (r *Repo) Approve(id string) (model.PaymentRequest, error) {
	return r.resolve(id, model.PaymentApproved)
}

// Reject marks a pending request rejected. Terminal as well.
func (r *Repo) Reject(id string) (model.PaymentRequest, error) {
	return r.resolve(id, model.PaymentRejected)
}

func (r *Repo) Stats() (AdminStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st := AdminStats{TotalRequests: len(r.s.Requests)}
	for _, req := range r.s.Requests {
		if req.Status == model.PaymentApproved {
			st.ActiveSubs++
		}
	}
	st.Revenue = st.ActiveSubs * DefaultAmount
	return st, nil
}
