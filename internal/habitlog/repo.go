package habitlog

import (
	"errors"
	"regexp"
	"sync"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

var (
	ErrBadDate   = errors.New("date must be formatted YYYY-MM-DD")
	ErrBadStatus = errors.New("unknown completion status")
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Repo stores the sparse date-keyed completion log for one user. Later
// writes overwrite earlier ones for the same (date, goal) key; no history of
// transitions is kept.
type Repo interface {
	// SetStatus records status for (date, goalID) and returns the previous
	// status (StatusPending when no entry existed). Setting StatusPending
	// removes the entry, keeping the map sparse.
	SetStatus(date string, id model.GoalID, status model.CompletionStatus) (model.CompletionStatus, error)

	// Logs returns a deep copy of the full log map.
	Logs() (model.DailyLogs, error)
}

func validateKey(date string, status model.CompletionStatus) error {
	if !dateRe.MatchString(date) {
		return ErrBadDate
	}
	if !status.Valid() {
		return ErrBadStatus
	}
	return nil
}

func setStatus(logs model.DailyLogs, date string, id model.GoalID, status model.CompletionStatus) model.CompletionStatus {
	prev := logs.StatusOn(date, id)
	day, ok := logs[date]
	if !ok {
		day = model.DayLog{}
		logs[date] = day
	}
	if status == model.StatusPending {
		delete(day, id)
		if len(day) == 0 {
			delete(logs, date)
		}
	} else {
		day[id] = status
	}
	return prev
}

func cloneLogs(logs model.DailyLogs) model.DailyLogs {
	out := make(model.DailyLogs, len(logs))
	for date, day := range logs {
		cp := make(model.DayLog, len(day))
		for id, s := range day {
			cp[id] = s
		}
		out[date] = cp
	}
	return out
}

type MemoryRepo struct {
	mu   sync.RWMutex
	logs model.DailyLogs
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{logs: model.DailyLogs{}}
}

func (r *MemoryRepo) SetStatus(date string, id model.GoalID, status model.CompletionStatus) (model.CompletionStatus, error) {
	if err := validateKey(date, status); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return setStatus(r.logs, date, id, status), nil
}

func (r *MemoryRepo) Logs() (model.DailyLogs, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneLogs(r.logs), nil
}
