package habitlog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

func TestSetStatus_OverwritesAndReportsPrevious(t *testing.T) {
	r := NewMemoryRepo()

	prev, err := r.SetStatus("2024-01-02", "g1", model.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, prev, "absent entry reads as pending")

	prev, err = r.SetStatus("2024-01-02", "g1", model.StatusSkipped)
	require.NoError(t, err)
	require.Equal(t, model.StatusCompleted, prev)

	logs, err := r.Logs()
	require.NoError(t, err)
	require.Equal(t, model.StatusSkipped, logs.StatusOn("2024-01-02", "g1"))
}

func TestSetStatus_PendingKeepsMapSparse(t *testing.T) {
	r := NewMemoryRepo()

	_, err := r.SetStatus("2024-01-02", "g1", model.StatusCompleted)
	require.NoError(t, err)
	_, err = r.SetStatus("2024-01-02", "g1", model.StatusPending)
	require.NoError(t, err)

	logs, err := r.Logs()
	require.NoError(t, err)
	require.Empty(t, logs, "pending entries are not stored")
}

func TestSetStatus_Validation(t *testing.T) {
	r := NewMemoryRepo()

	_, err := r.SetStatus("02-01-2024", "g1", model.StatusCompleted)
	require.ErrorIs(t, err, ErrBadDate)

	_, err = r.SetStatus("2024-01-02", "g1", model.CompletionStatus("done"))
	require.ErrorIs(t, err, ErrBadStatus)
}

func TestLogs_ReturnsCopy(t *testing.T) {
	r := NewMemoryRepo()
	_, err := r.SetStatus("2024-01-02", "g1", model.StatusCompleted)
	require.NoError(t, err)

	logs, err := r.Logs()
	require.NoError(t, err)
	logs["2024-01-02"]["g1"] = model.StatusSkipped

	fresh, err := r.Logs()
	require.NoError(t, err)
	require.Equal(t, model.StatusCompleted, fresh.StatusOn("2024-01-02", "g1"))
}

func TestFileRepo_PersistsPerUser(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir)
	require.NoError(t, err)

	_, err = repo.ForUser("alice").SetStatus("2024-01-02", "g1", model.StatusCompleted)
	require.NoError(t, err)

	bobLogs, err := repo.ForUser("bob").Logs()
	require.NoError(t, err)
	require.Empty(t, bobLogs)

	reloaded, err := NewFileRepo(dir)
	require.NoError(t, err)
	logs, err := reloaded.ForUser("alice").Logs()
	require.NoError(t, err)
	require.Equal(t, model.StatusCompleted, logs.StatusOn("2024-01-02", "g1"))
}
