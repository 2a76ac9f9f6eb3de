package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/domain/claim"
	"github.com/atelier-edu/atelier/internal/domain/subscription"
)

type canClaimDeps struct {
	catalogRepo  *mockCatalogRepository
	purchaseRepo *mockPurchaseRepository
	subRepo      *mockSubscriptionRepository
	planRepo     *mockPlanRepository
	claimRepo    *mockClaimRepository
}

func newCanClaimUseCase(t *testing.T) (*CanClaimProductUseCase, *canClaimDeps) {
	t.Helper()
	deps := &canClaimDeps{
		catalogRepo:  &mockCatalogRepository{},
		purchaseRepo: &mockPurchaseRepository{},
		subRepo:      &mockSubscriptionRepository{},
		planRepo:     &mockPlanRepository{},
		claimRepo:    &mockClaimRepository{},
	}
	log := &mockLogger{}
	allowances := NewGetMonthlyAllowancesUseCase(deps.subRepo, deps.planRepo, deps.claimRepo, log)
	uc := NewCanClaimProductUseCase(deps.catalogRepo, deps.purchaseRepo, deps.subRepo, deps.claimRepo, allowances, log)
	return uc, deps
}

func TestCanClaim_ContentNotFound(t *testing.T) {
	uc, _ := newCanClaimUseCase(t)

	result, err := uc.Execute(context.Background(), CanClaimProductQuery{
		PrincipalID: 1,
		Ref:         mustRef(t, catalog.ContentTypeGame, 1),
	})
	require.NoError(t, err)
	assert.False(t, result.CanClaim)
	assert.Equal(t, FailureContentNotFound, result.Reason)
}

func TestCanClaim_OwnerIsRejected(t *testing.T) {
	uc, deps := newCanClaimUseCase(t)
	deps.catalogRepo.FindProductFunc = func(_ context.Context, _ catalog.ContentRef) (*catalog.Product, error) {
		return publishedGame(t, 1, 7), nil
	}

	result, err := uc.Execute(context.Background(), CanClaimProductQuery{
		PrincipalID: 7,
		Ref:         mustRef(t, catalog.ContentTypeGame, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, FailureAlreadyOwned, result.Reason)
}

func TestCanClaim_LimitedBenefitReportsRemaining(t *testing.T) {
	uc, deps := newCanClaimUseCase(t)
	deps.catalogRepo.FindProductFunc = func(_ context.Context, _ catalog.ContentRef) (*catalog.Product, error) {
		return publishedGame(t, 1, 99), nil
	}
	deps.subRepo.GetActiveByPrincipalFunc = func(_ context.Context, principalID uint) (*subscription.Subscription, error) {
		return activeSubscription(t, 5, principalID, gameAndFileBenefits()), nil
	}
	deps.claimRepo.CountActiveByPeriodFunc = func(_ context.Context, _ uint, _ string) (map[catalog.ContentType]uint, error) {
		return map[catalog.ContentType]uint{catalog.ContentTypeGame: 1}, nil
	}

	result, err := uc.Execute(context.Background(), CanClaimProductQuery{
		PrincipalID: 1,
		Ref:         mustRef(t, catalog.ContentTypeGame, 1),
	})
	require.NoError(t, err)
	assert.True(t, result.CanClaim)
	require.NotNil(t, result.Remaining)
	assert.Equal(t, uint(2), *result.Remaining)
}

func TestCanClaim_AllowanceExhausted(t *testing.T) {
	uc, deps := newCanClaimUseCase(t)
	deps.catalogRepo.FindProductFunc = func(_ context.Context, _ catalog.ContentRef) (*catalog.Product, error) {
		return publishedGame(t, 1, 99), nil
	}
	deps.subRepo.GetActiveByPrincipalFunc = func(_ context.Context, principalID uint) (*subscription.Subscription, error) {
		return activeSubscription(t, 5, principalID, gameAndFileBenefits()), nil
	}
	deps.claimRepo.CountActiveByPeriodFunc = func(_ context.Context, _ uint, _ string) (map[catalog.ContentType]uint, error) {
		return map[catalog.ContentType]uint{catalog.ContentTypeGame: 3}, nil
	}

	result, err := uc.Execute(context.Background(), CanClaimProductQuery{
		PrincipalID: 1,
		Ref:         mustRef(t, catalog.ContentTypeGame, 1),
	})
	require.NoError(t, err)
	assert.False(t, result.CanClaim)
	assert.Equal(t, FailureAllowanceExceeded, result.Reason)
}

func TestCanClaim_AlreadyClaimedShortCircuitsQuota(t *testing.T) {
	uc, deps := newCanClaimUseCase(t)
	ref := mustRef(t, catalog.ContentTypeGame, 1)
	deps.catalogRepo.FindProductFunc = func(_ context.Context, _ catalog.ContentRef) (*catalog.Product, error) {
		return publishedGame(t, 1, 99), nil
	}
	deps.subRepo.GetActiveByPrincipalFunc = func(_ context.Context, principalID uint) (*subscription.Subscription, error) {
		return activeSubscription(t, 5, principalID, gameAndFileBenefits()), nil
	}
	now := time.Now()
	existing, err := claim.ReconstructClaim(9, "clm_x", 5, 1, ref, "2026-08", claim.StatusActive, nil, claim.NewUsage(now), now, now)
	require.NoError(t, err)
	deps.claimRepo.GetBySubscriptionContentFunc = func(_ context.Context, _ uint, _ catalog.ContentRef) (*claim.Claim, error) {
		return existing, nil
	}
	// Quota is exhausted, but the content was already claimed.
	deps.claimRepo.CountActiveByPeriodFunc = func(_ context.Context, _ uint, _ string) (map[catalog.ContentType]uint, error) {
		return map[catalog.ContentType]uint{catalog.ContentTypeGame: 3}, nil
	}

	result, err := uc.Execute(context.Background(), CanClaimProductQuery{PrincipalID: 1, Ref: ref})
	require.NoError(t, err)
	assert.True(t, result.CanClaim)
	assert.True(t, result.AlreadyClaimed)
}

func TestCanClaim_RevokedClaimBlocks(t *testing.T) {
	uc, deps := newCanClaimUseCase(t)
	ref := mustRef(t, catalog.ContentTypeGame, 1)
	deps.catalogRepo.FindProductFunc = func(_ context.Context, _ catalog.ContentRef) (*catalog.Product, error) {
		return publishedGame(t, 1, 99), nil
	}
	deps.subRepo.GetActiveByPrincipalFunc = func(_ context.Context, principalID uint) (*subscription.Subscription, error) {
		return activeSubscription(t, 5, principalID, gameAndFileBenefits()), nil
	}
	now := time.Now()
	revoked, err := claim.ReconstructClaim(9, "clm_x", 5, 1, ref, "2026-07", claim.StatusRevoked, nil, claim.NewUsage(now), now, now)
	require.NoError(t, err)
	deps.claimRepo.GetBySubscriptionContentFunc = func(_ context.Context, _ uint, _ catalog.ContentRef) (*claim.Claim, error) {
		return revoked, nil
	}

	result, err := uc.Execute(context.Background(), CanClaimProductQuery{PrincipalID: 1, Ref: ref})
	require.NoError(t, err)
	assert.False(t, result.CanClaim)
	assert.Equal(t, FailureClaimRevoked, result.Reason)
}

func TestCanClaim_UnlimitedBenefit(t *testing.T) {
	uc, deps := newCanClaimUseCase(t)
	now := time.Now()
	file, err := catalog.ReconstructProduct(2, "prod_f2", catalog.ContentTypeFile, "Worksheet", 99, true, 0, &now, now, now)
	require.NoError(t, err)
	deps.catalogRepo.FindProductFunc = func(_ context.Context, _ catalog.ContentRef) (*catalog.Product, error) {
		return file, nil
	}
	deps.subRepo.GetActiveByPrincipalFunc = func(_ context.Context, principalID uint) (*subscription.Subscription, error) {
		return activeSubscription(t, 5, principalID, gameAndFileBenefits()), nil
	}

	result, err := uc.Execute(context.Background(), CanClaimProductQuery{
		PrincipalID: 1,
		Ref:         mustRef(t, catalog.ContentTypeFile, 2),
	})
	require.NoError(t, err)
	assert.True(t, result.CanClaim)
	assert.True(t, result.Unlimited)
	assert.Nil(t, result.Remaining)
}
