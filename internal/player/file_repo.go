package player

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	ErrUnknownItem       = errors.New("unknown shop item")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrInsufficientCoins = errors.New("not enough coins")
	ErrAlreadySpun       = errors.New("already spun today")
)

type store struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

// FileRepo is the durable per-user wallet/cosmetics store.
// It is user-scoped; call ForUser(userID) to get a scoped view.
type FileRepo struct {
	store  *store
	userID string
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	st := &store{
		path: filepath.Join(dataDir, "state.json"),
		s:    fileState{Users: map[string]UserState{}},
	}
	if err := st.load(); err != nil {
		return nil, err
	}
	return &FileRepo{store: st, userID: "default"}, nil
}

func (s *store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.s = fileState{Users: map[string]UserState{}}
			return nil
		}
		return err
	}

	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.Users == nil {
		loaded.Users = map[string]UserState{}
	}
	for uid, us := range loaded.Users {
		loaded.Users[uid] = normalizeUserState(us)
	}
	s.s = loaded
	return nil
}

func (s *store) saveLocked() error {
	b, err := json.MarshalIndent(s.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (r *FileRepo) ForUser(userID string) *FileRepo {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = "default"
	}
	return &FileRepo{store: r.store, userID: userID}
}

// UserID reports which user this scoped view reads and writes.
func (r *FileRepo) UserID() string { return r.userID }

func (r *FileRepo) userStateLocked() UserState {
	us, ok := r.store.s.Users[r.userID]
	if !ok {
		us = defaultUserState()
		r.store.s.Users[r.userID] = us
		return us
	}
	us = normalizeUserState(us)
	r.store.s.Users[r.userID] = us
	return us
}

func (r *FileRepo) State() (UserState, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	us, ok := r.store.s.Users[r.userID]
	if !ok {
		return defaultUserState(), nil
	}
	return cloneUserState(normalizeUserState(us)), nil
}

// BonusPoints satisfies the stat engine's bonus source.
func (r *FileRepo) BonusPoints() (int, error) {
	us, err := r.State()
	if err != nil {
		return 0, err
	}
	return us.BonusPoints, nil
}

func (r *FileRepo) AddBonusPoints(n int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	us := r.userStateLocked()
	us.BonusPoints += n
	r.store.s.Users[r.userID] = us
	return r.store.saveLocked()
}

func (r *FileRepo) AddCoins(n int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	us := r.userStateLocked()
	us.Coins += n
	r.store.s.Users[r.userID] = us
	return r.store.saveLocked()
}

// EarnCoins credits a coin drop, doubling it while the 2x booster is active.
// Negative base (a reverted completion) deducts at the same multiplier, so a
// boosted toggle round-trips to zero. The wallet never goes below zero.
func (r *FileRepo) EarnCoins(base int, now time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	us := r.userStateLocked()
	n := base
	if us.BoosterActive(now) {
		n *= 2
	}
	us.Coins += n
	if us.Coins < 0 {
		us.Coins = 0
	}
	r.store.s.Users[r.userID] = us
	if err := r.store.saveLocked(); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *FileRepo) SetPro(pro bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	us := r.userStateLocked()
	us.Pro = pro
	r.store.s.Users[r.userID] = us
	return r.store.saveLocked()
}

// Purchase spends coins on a catalog item. Cosmetics unlock permanently and
// become active; the booster stacks onto its current expiry.
func (r *FileRepo) Purchase(itemID string, now time.Time) (UserState, error) {
	item, ok := catalogItem(itemID)
	if !ok {
		return UserState{}, ErrUnknownItem
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	us := r.userStateLocked()
	if item.Type != kindBooster && us.Unlocked[item.ID] {
		return UserState{}, ErrAlreadyOwned
	}
	if us.Coins < item.Cost {
		return UserState{}, ErrInsufficientCoins
	}

	us.Coins -= item.Cost
	switch item.Type {
	case kindTheme:
		us.Unlocked[item.ID] = true
		us.ActiveTheme = item.Value
	case kindAvatar:
		us.Unlocked[item.ID] = true
		us.ActiveFrame = item.Value
	case kindBooster:
		from := now.Unix()
		if us.BoosterExpiry > from {
			from = us.BoosterExpiry
		}
		us.BoosterExpiry = time.Unix(from, 0).Add(boosterDuration).Unix()
	}

	r.store.s.Users[r.userID] = us
	if err := r.store.saveLocked(); err != nil {
		return UserState{}, err
	}
	return cloneUserState(us), nil
}
