package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	repo, err := NewRepo(t.TempDir())
	require.NoError(t, err)
	return repo
}

var payer = model.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}

func TestSubmit_DuplicatePendingIsNoOp(t *testing.T) {
	repo := newTestRepo(t)

	first, created, err := repo.Submit(payer)
	require.NoError(t, err)
	require.True(t, created)
	assert.Equal(t, DefaultAmount, first.Amount)
	assert.Equal(t, model.PaymentPending, first.Status)

	second, created, err := repo.Submit(payer)
	require.NoError(t, err)
	assert.False(t, created, "second submit while pending must not create")
	assert.Equal(t, first.ID, second.ID)

	reqs, err := repo.List()
	require.NoError(t, err)
	require.Len(t, reqs, 1)
}

func TestSubmit_AllowedAgainAfterResolution(t *testing.T) {
	repo := newTestRepo(t)

	first, _, err := repo.Submit(payer)
	require.NoError(t, err)
	_, err = repo.Reject(first.ID)
	require.NoError(t, err)

	_, created, err := repo.Submit(payer)
	require.NoError(t, err)
	assert.True(t, created, "a rejected request does not block a new one")
}

func TestResolve_TerminalStates(t *testing.T) {
	repo := newTestRepo(t)

	req, _, err := repo.Submit(payer)
	require.NoError(t, err)

	approved, err := repo.Approve(req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentApproved, approved.Status)

	_, err = repo.Approve(req.ID)
	require.ErrorIs(t, err, ErrTerminal)
	_, err = repo.Reject(req.ID)
	require.ErrorIs(t, err, ErrTerminal)

	_, err = repo.Approve("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStats_CountsApprovedRevenue(t *testing.T) {
	repo := newTestRepo(t)

	a, _, err := repo.Submit(model.User{ID: "a", Name: "A"})
	require.NoError(t, err)
	b, _, err := repo.Submit(model.User{ID: "b", Name: "B"})
	require.NoError(t, err)
	_, _, err = repo.Submit(model.User{ID: "c", Name: "C"})
	require.NoError(t, err)

	_, err = repo.Approve(a.ID)
	require.NoError(t, err)
	_, err = repo.Approve(b.ID)
	require.NoError(t, err)

	st, err := repo.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalRequests)
	assert.Equal(t, 2, st.ActiveSubs)
	assert.Equal(t, 2*DefaultAmount, st.Revenue)
}

func TestAdminCredentials(t *testing.T) {
	plain := AdminCredentials{Email: "admin@orbitgoals.com", Password: "hunter2"}
	assert.True(t, plain.check("Admin@OrbitGoals.com", "hunter2"))
	assert.False(t, plain.check("admin@orbitgoals.com", "wrong"))
	assert.False(t, AdminCredentials{}.check("", ""))
}
