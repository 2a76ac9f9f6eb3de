package usecases

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/domain/claim"
	"github.com/atelier-edu/atelier/internal/shared/errors"
)

func storedClaim(t *testing.T, id uint, status claim.ClaimStatus, parentID *uint) *claim.Claim {
	t.Helper()
	now := time.Now()
	ref, err := catalog.NewContentRef(catalog.ContentTypeGame, 40+id)
	require.NoError(t, err)
	c, err := claim.ReconstructClaim(id, "clm_"+string(rune('a'+id)), 5, 1, ref, "2026-08", status, parentID, claim.NewUsage(now), now, now)
	require.NoError(t, err)
	return c
}

func TestRevokeClaim_NotFound(t *testing.T) {
	uc := NewRevokeClaimUseCase(&mockClaimRepository{}, &mockTransactor{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), RevokeClaimCommand{ClaimID: 404})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestRevokeClaim_SingleClaim(t *testing.T) {
	target := storedClaim(t, 1, claim.StatusActive, nil)
	var statusWrites []uint
	repo := &mockClaimRepository{
		GetByIDFunc: func(_ context.Context, id uint) (*claim.Claim, error) {
			require.Equal(t, uint(1), id)
			return target, nil
		},
		UpdateStatusFunc: func(_ context.Context, c *claim.Claim) error {
			assert.Equal(t, claim.StatusRevoked, c.Status())
			statusWrites = append(statusWrites, c.ID())
			return nil
		},
	}
	uc := NewRevokeClaimUseCase(repo, &mockTransactor{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), RevokeClaimCommand{ClaimID: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, result.RevokedCount)
	assert.Equal(t, []uint{1}, statusWrites)
}

func TestRevokeClaim_CascadesToChildren(t *testing.T) {
	parentID := uint(1)
	target := storedClaim(t, 1, claim.StatusActive, nil)
	children := []*claim.Claim{
		storedClaim(t, 2, claim.StatusActive, &parentID),
		storedClaim(t, 3, claim.StatusRevoked, &parentID),
		storedClaim(t, 4, claim.StatusActive, &parentID),
	}

	var statusWrites []uint
	var txDepth int
	repo := &mockClaimRepository{
		GetBySIDFunc: func(_ context.Context, sid string) (*claim.Claim, error) {
			return target, nil
		},
		GetChildrenFunc: func(_ context.Context, id uint) ([]*claim.Claim, error) {
			require.Equal(t, parentID, id)
			return children, nil
		},
		UpdateStatusFunc: func(_ context.Context, c *claim.Claim) error {
			require.Equal(t, 1, txDepth, "status writes must happen inside the transaction")
			statusWrites = append(statusWrites, c.ID())
			return nil
		},
	}
	tx := &mockTransactor{
		RunInTransactionFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			txDepth++
			defer func() { txDepth-- }()
			return fn(ctx)
		},
	}
	uc := NewRevokeClaimUseCase(repo, tx, &mockLogger{})

	result, err := uc.Execute(context.Background(), RevokeClaimCommand{ClaimSID: "clm_b"})
	require.NoError(t, err)
	assert.Equal(t, 3, result.RevokedCount, "parent plus the two active children")
	assert.Equal(t, []uint{1, 2, 4}, statusWrites, "the already revoked child is skipped")
}

func TestRevokeClaim_AlreadyRevoked(t *testing.T) {
	target := storedClaim(t, 1, claim.StatusRevoked, nil)
	repo := &mockClaimRepository{
		GetByIDFunc: func(_ context.Context, _ uint) (*claim.Claim, error) {
			return target, nil
		},
	}
	uc := NewRevokeClaimUseCase(repo, &mockTransactor{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), RevokeClaimCommand{ClaimID: 1})
	assert.True(t, errors.IsAlreadyRevokedError(err), "revocation is deliberately not idempotent")
}

func TestRevokeClaim_RollbackLeavesNothingRevoked(t *testing.T) {
	parentID := uint(1)
	target := storedClaim(t, 1, claim.StatusActive, nil)
	child := storedClaim(t, 2, claim.StatusActive, &parentID)

	repo := &mockClaimRepository{
		GetByIDFunc: func(_ context.Context, _ uint) (*claim.Claim, error) {
			return target, nil
		},
		GetChildrenFunc: func(_ context.Context, _ uint) ([]*claim.Claim, error) {
			return []*claim.Claim{child}, nil
		},
		UpdateStatusFunc: func(_ context.Context, c *claim.Claim) error {
			if c.ID() == 2 {
				return stderrors.New("connection reset")
			}
			return nil
		},
	}
	uc := NewRevokeClaimUseCase(repo, &mockTransactor{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), RevokeClaimCommand{ClaimID: 1})
	assert.Error(t, err, "a failed child write aborts the whole revocation")
}

func TestRevokeClaim_InvalidatesAllowanceCache(t *testing.T) {
	target := storedClaim(t, 1, claim.StatusActive, nil)
	repo := &mockClaimRepository{
		GetByIDFunc: func(_ context.Context, _ uint) (*claim.Claim, error) {
			return target, nil
		},
	}
	var invalidated []string
	cache := &mockAllowanceCache{
		InvalidateFunc: func(_ context.Context, subscriptionID uint, period string) error {
			invalidated = append(invalidated, period)
			require.Equal(t, uint(5), subscriptionID)
			return nil
		},
	}
	uc := NewRevokeClaimUseCase(repo, &mockTransactor{}, &mockLogger{})
	uc.SetCache(cache)

	_, err := uc.Execute(context.Background(), RevokeClaimCommand{ClaimID: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08"}, invalidated)
}

func TestRevokeClaim_LosesRaceToConcurrentRevoke(t *testing.T) {
	target := storedClaim(t, 1, claim.StatusActive, nil)
	repo := &mockClaimRepository{
		GetByIDFunc: func(_ context.Context, _ uint) (*claim.Claim, error) {
			return target, nil
		},
		UpdateStatusFunc: func(_ context.Context, _ *claim.Claim) error {
			// another revoker committed between our read and our write
			return claim.ErrAlreadyRevoked
		},
	}
	uc := NewRevokeClaimUseCase(repo, &mockTransactor{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), RevokeClaimCommand{ClaimID: 1})
	assert.True(t, errors.IsAlreadyRevokedError(err), "only one concurrent revoke may succeed")
}

func TestRevokeClaim_ChildRevokedConcurrentlyIsSkipped(t *testing.T) {
	parentID := uint(1)
	target := storedClaim(t, 1, claim.StatusActive, nil)
	child := storedClaim(t, 2, claim.StatusActive, &parentID)

	repo := &mockClaimRepository{
		GetByIDFunc: func(_ context.Context, _ uint) (*claim.Claim, error) {
			return target, nil
		},
		GetChildrenFunc: func(_ context.Context, _ uint) ([]*claim.Claim, error) {
			return []*claim.Claim{child}, nil
		},
		UpdateStatusFunc: func(_ context.Context, c *claim.Claim) error {
			if c.ID() == child.ID() {
				return claim.ErrAlreadyRevoked
			}
			return nil
		},
	}
	uc := NewRevokeClaimUseCase(repo, &mockTransactor{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), RevokeClaimCommand{ClaimID: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, result.RevokedCount, "the concurrently revoked child is not credited")
}
