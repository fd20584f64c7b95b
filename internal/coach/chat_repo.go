package coach

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// maxChatHistory caps how many messages are kept per user; the oldest
// message is dropped once the cap is hit.
const maxChatHistory = 50

const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// ChatMessage is one entry in a user's coaching conversation.
type ChatMessage struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp int64  `json:"timestamp"`
}

// ChatRepo stores a single user's chat history.
type ChatRepo interface {
	Append(msg ChatMessage) (ChatMessage, error)
	List() ([]ChatMessage, error)
}

func newMessageID() string {
	return uuid.NewString()
}

func appendCapped(msgs []ChatMessage, msg ChatMessage) []ChatMessage {
	if msg.ID == "" {
		msg.ID = newMessageID()
	}
	msgs = append(msgs, msg)
	if len(msgs) > maxChatHistory {
		msgs = msgs[len(msgs)-maxChatHistory:]
	}
	return msgs
}

// MemoryChatRepo is an in-memory ChatRepo for tests.
type MemoryChatRepo struct {
	mu   sync.RWMutex
	msgs []ChatMessage
}

func NewMemoryChatRepo() *MemoryChatRepo {
	return &MemoryChatRepo{}
}

func (r *MemoryChatRepo) Append(msg ChatMessage) (ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = appendCapped(r.msgs, msg)
	return r.msgs[len(r.msgs)-1], nil
}

func (r *MemoryChatRepo) List() ([]ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ChatMessage, len(r.msgs))
	copy(out, r.msgs)
	return out, nil
}

type chatFileState struct {
	Users map[string][]ChatMessage `json:"users"`
}

type chatFileStore struct {
	mu   sync.RWMutex
	path string
	s    chatFileState
}

// FileChatRepo is a persistent ChatRepo.
// It is user-scoped; call ForUser(userID) to get a scoped view.
type FileChatRepo struct {
	store  *chatFileStore
	userID string
}

func NewFileChatRepo(dataDir string) (*FileChatRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	st := &chatFileStore{
		path: filepath.Join(dataDir, "chat.json"),
		s:    chatFileState{Users: map[string][]ChatMessage{}},
	}
	if err := st.load(); err != nil {
		return nil, err
	}
	return &FileChatRepo{store: st, userID: "default"}, nil
}

func (s *chatFileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.s = chatFileState{Users: map[string][]ChatMessage{}}
			return nil
		}
		return err
	}

	var loaded chatFileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.Users == nil {
		loaded.Users = map[string][]ChatMessage{}
	}
	s.s = loaded
	return nil
}

func (s *chatFileStore) saveLocked() error {
	b, err := json.MarshalIndent(s.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (r *FileChatRepo) ForUser(userID string) *FileChatRepo {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = "default"
	}
	return &FileChatRepo{store: r.store, userID: userID}
}

func (r *FileChatRepo) Append(msg ChatMessage) (ChatMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	msgs := appendCapped(r.store.s.Users[r.userID], msg)
	r.store.s.Users[r.userID] = msgs
	if err := r.store.saveLocked(); err != nil {
		return ChatMessage{}, err
	}
	return msgs[len(msgs)-1], nil
}

func (r *FileChatRepo) List() ([]ChatMessage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	msgs := r.store.s.Users[r.userID]
	out := make([]ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}
