package goal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

type fileState struct {
	Users map[string]userGoalState `json:"users"`
}

type userGoalState struct {
	Goals map[model.GoalID]model.Goal `json:"goals"`
}

type fileStore struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

// FileRepo is a persistent goal repository.
// It is user-scoped; call ForUser(userID) to get a scoped view.
type FileRepo struct {
	store  *fileStore
	userID string
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	st := &fileStore{
		path: filepath.Join(dataDir, "goals.json"),
		s:    fileState{Users: map[string]userGoalState{}},
	}
	if err := st.load(); err != nil {
		return nil, err
	}
	return &FileRepo{store: st, userID: "default"}, nil
}

func (s *fileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.s = fileState{Users: map[string]userGoalState{}}
			return nil
		}
		return err
	}

	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.Users == nil {
		loaded.Users = map[string]userGoalState{}
	}
	for uid, us := range loaded.Users {
		if us.Goals == nil {
			us.Goals = map[model.GoalID]model.Goal{}
		}
		loaded.Users[uid] = us
	}
	s.s = loaded
	return nil
}

func (s *fileStore) saveLocked() error {
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

func (r *FileRepo) userStateLocked() userGoalState {
	us, ok := r.store.s.Users[r.userID]
	if !ok {
		us = userGoalState{Goals: map[model.GoalID]model.Goal{}}
		r.store.s.Users[r.userID] = us
		return us
	}
	if us.Goals == nil {
		us.Goals = map[model.GoalID]model.Goal{}
		r.store.s.Users[r.userID] = us
	}
	return us
}

func (r *FileRepo) Create(g model.Goal) (model.Goal, error) {
	if err := validate(g); err != nil {
		return model.Goal{}, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	us := r.userStateLocked()
	g.ID = newID()
	g.CreatedAt = time.Now()
	g.DeletedAt = nil
	us.Goals[g.ID] = g

	if err := r.store.saveLocked(); err != nil {
		return model.Goal{}, err
	}
	return g, nil
}

func (r *FileRepo) Get(id model.GoalID) (model.Goal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	us, ok := r.store.s.Users[r.userID]
	if !ok || us.Goals == nil {
		return model.Goal{}, ErrNotFound
	}
	g, ok := us.Goals[id]
	if !ok {
		return model.Goal{}, ErrNotFound
	}
	return g, nil
}

func (r *FileRepo) Update(id model.GoalID, p Patch) (model.Goal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	us := r.userStateLocked()
	g, ok := us.Goals[id]
	if !ok || g.Deleted() {
		return model.Goal{}, ErrNotFound
	}
	if err := applyPatch(&g, p); err != nil {
		return model.Goal{}, err
	}
	us.Goals[id] = g

	if err := r.store.saveLocked(); err != nil {
		return model.Goal{}, err
	}
	return g, nil
}

func (r *FileRepo) List() ([]model.Goal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	us, ok := r.store.s.Users[r.userID]
	if !ok || us.Goals == nil {
		return []model.Goal{}, nil
	}
	out := make([]model.Goal, 0, len(us.Goals))
	for _, g := range us.Goals {
		if !g.Deleted() {
			out = append(out, g)
		}
	}
	sortByCreated(out)
	return out, nil
}

func (r *FileRepo) Delete(id model.GoalID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	us := r.userStateLocked()
	g, ok := us.Goals[id]
	if !ok || g.Deleted() {
		return ErrNotFound
	}
	now := time.Now()
	g.DeletedAt = &now
	us.Goals[id] = g
	return r.store.saveLocked()
}
