package goal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

func TestMemoryRepo_CreateRequiresTitle(t *testing.T) {
	r := NewMemoryRepo()
	_, err := r.Create(model.Goal{Title: "   "})
	require.ErrorIs(t, err, ErrEmptyTitle)
}

func TestMemoryRepo_SoftDeleteKeepsRow(t *testing.T) {
	r := NewMemoryRepo()
	g, err := r.Create(model.Goal{Title: "Meditate", Icon: "🧘"})
	require.NoError(t, err)

	require.NoError(t, r.Delete(g.ID))

	// Deleted goals vanish from listings...
	goals, err := r.List()
	require.NoError(t, err)
	require.Empty(t, goals)

	// ...but the row stays fetchable because logs still reference the ID.
	got, err := r.Get(g.ID)
	require.NoError(t, err)
	require.True(t, got.Deleted())

	// Terminal: a second delete and any update are rejected.
	require.ErrorIs(t, r.Delete(g.ID), ErrNotFound)
	title := "x"
	_, err = r.Update(g.ID, Patch{Title: &title})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileRepo_UserScopingAndReload(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir)
	require.NoError(t, err)

	alice := repo.ForUser("alice")
	bob := repo.ForUser("bob")

	g, err := alice.Create(model.Goal{Title: "Run", Color: "bg-blue-500", Icon: "🏃"})
	require.NoError(t, err)

	bobGoals, err := bob.List()
	require.NoError(t, err)
	require.Empty(t, bobGoals, "goals must be namespaced per user")

	// A fresh repo over the same directory sees the persisted state.
	reloaded, err := NewFileRepo(dir)
	require.NoError(t, err)
	got, err := reloaded.ForUser("alice").Get(g.ID)
	require.NoError(t, err)
	require.Equal(t, "Run", got.Title)

	require.FileExists(t, filepath.Join(dir, "goals.json"))
}

func TestFileRepo_PatchClearsTime(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	at := "07:30"
	g, err := repo.ForUser("u1").Create(model.Goal{Title: "Read", Time: &at})
	require.NoError(t, err)

	empty := ""
	got, err := repo.ForUser("u1").Update(g.ID, Patch{Time: &empty})
	require.NoError(t, err)
	require.Nil(t, got.Time)
}
