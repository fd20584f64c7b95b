package habitlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

type fileState struct {
	Users map[string]model.DailyLogs `json:"users"`
}

type fileStore struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

// FileRepo is a persistent log store.
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
		path: filepath.Join(dataDir, "logs.json"),
		s:    fileState{Users: map[string]model.DailyLogs{}},
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
			s.s = fileState{Users: map[string]model.DailyLogs{}}
			return nil
		}
		return err
	}

	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.Users == nil {
		loaded.Users = map[string]model.DailyLogs{}
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

func (r *FileRepo) userLogsLocked() model.DailyLogs {
	logs, ok := r.store.s.Users[r.userID]
	if !ok || logs == nil {
		logs = model.DailyLogs{}
		r.store.s.Users[r.userID] = logs
	}
	return logs
}

func (r *FileRepo) SetStatus(date string, id model.GoalID, status model.CompletionStatus) (model.CompletionStatus, error) {
	if err := validateKey(date, status); err != nil {
		return "", err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	prev := setStatus(r.userLogsLocked(), date, id, status)
	if err := r.store.saveLocked(); err != nil {
		return "", err
	}
	return prev, nil
}

func (r *FileRepo) Logs() (model.DailyLogs, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	logs, ok := r.store.s.Users[r.userID]
	if !ok || logs == nil {
		return model.DailyLogs{}, nil
	}
	return cloneLogs(logs), nil
}
