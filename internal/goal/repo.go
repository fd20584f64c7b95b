package goal

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

var (
	ErrNotFound   = errors.New("goal not found")
	ErrEmptyTitle = errors.New("goal title must not be empty")
)

// Patch represents a partial update.
// nil pointer => "no change"
// empty string for Time => clear (set to nil)
type Patch struct {
	Title           *string `json:"title,omitempty"`
	Color           *string `json:"color,omitempty"`
	Icon            *string `json:"icon,omitempty"`
	Time            *string `json:"time,omitempty"`
	ReminderEnabled *bool   `json:"reminderEnabled,omitempty"`
}

type Repo interface {
	Create(g model.Goal) (model.Goal, error)
	Get(id model.GoalID) (model.Goal, error)
	Update(id model.GoalID, patch Patch) (model.Goal, error)

	// List returns active (non-deleted) goals, oldest first.
	List() ([]model.Goal, error)

	// Delete soft-deletes: the row is retained because logs keep referencing
	// the ID, but the goal drops out of List and of stats denominators.
	Delete(id model.GoalID) error
}

func newID() model.GoalID {
	return model.GoalID(uuid.NewString())
}

func validate(g model.Goal) error {
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

func applyPatch(g *model.Goal, p Patch) error {
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return ErrEmptyTitle
		}
		g.Title = *p.Title
	}
	if p.Color != nil {
		g.Color = *p.Color
	}
	if p.Icon != nil {
		g.Icon = *p.Icon
	}
	if p.Time != nil {
		if *p.Time == "" {
			g.Time = nil
		} else {
			g.Time = p.Time
		}
	}
	if p.ReminderEnabled != nil {
		g.ReminderEnabled = *p.ReminderEnabled
	}
	return nil
}

func sortByCreated(goals []model.Goal) {
	sort.Slice(goals, func(i, j int) bool {
		if goals[i].CreatedAt.Equal(goals[j].CreatedAt) {
			return goals[i].ID < goals[j].ID
		}
		return goals[i].CreatedAt.Before(goals[j].CreatedAt)
	})
}

type MemoryRepo struct {
	mu    sync.RWMutex
	goals map[model.GoalID]model.Goal
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{goals: map[model.GoalID]model.Goal{}}
}

func (r *MemoryRepo) Create(g model.Goal) (model.Goal, error) {
	if err := validate(g); err != nil {
		return model.Goal{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	g.ID = newID()
	g.CreatedAt = time.Now()
	g.DeletedAt = nil
	r.goals[g.ID] = g
	return g, nil
}

func (r *MemoryRepo) Get(id model.GoalID) (model.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.goals[id]
	if !ok {
		return model.Goal{}, ErrNotFound
	}
	return g, nil
}

func (r *MemoryRepo) Update(id model.GoalID, p Patch) (model.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.goals[id]
	if !ok || g.Deleted() {
		return model.Goal{}, ErrNotFound
	}
	if err := applyPatch(&g, p); err != nil {
		return model.Goal{}, err
	}
	r.goals[id] = g
	return g, nil
}

func (r *MemoryRepo) List() ([]model.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Goal, 0, len(r.goals))
	for _, g := range r.goals {
		if !g.Deleted() {
			out = append(out, g)
		}
	}
	sortByCreated(out)
	return out, nil
}

func (r *MemoryRepo) Delete(id model.GoalID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.goals[id]
	if !ok || g.Deleted() {
		return ErrNotFound
	}
	now := time.Now()
	g.DeletedAt = &now
	r.goals[id] = g
	return nil
}
