package usecases

import (
	"context"
	"fmt"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/domain/claim"
	"github.com/atelier-edu/atelier/internal/domain/purchase"
	"github.com/atelier-edu/atelier/internal/domain/subscription"
	"github.com/atelier-edu/atelier/internal/shared/biztime"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

// Claim-flow failure codes shared by canClaim and claimProduct. Business
// outcomes are structured results, not errors.
const (
	FailureContentNotFound      = "content_not_found"
	FailureUnpublished          = "unpublished"
	FailureAlreadyOwned         = "already_owned"
	FailureNoActiveSubscription = "no_active_subscription"
	FailureAllowanceExceeded    = "allowance_exceeded"
	FailureClaimRevoked         = "claim_revoked"
)

type CanClaimProductQuery struct {
	PrincipalID uint
	Ref         catalog.ContentRef
}

type CanClaimResult struct {
	CanClaim       bool
	AlreadyClaimed bool
	Reason         string
	Unlimited      bool
	// Remaining is the quota left before this claim; nil for unlimited
	// benefits.
	Remaining *uint
}

// CanClaimProductUseCase answers "would claimProduct succeed" without
// creating anything. It runs the same precondition chain as claimProduct.
type CanClaimProductUseCase struct {
	catalogRepo      catalog.Repository
	purchaseRepo     purchase.Repository
	subscriptionRepo subscription.SubscriptionRepository
	claimRepo        claim.Repository
	allowances       *GetMonthlyAllowancesUseCase
	logger           logger.Interface
}

func NewCanClaimProductUseCase(
	catalogRepo catalog.Repository,
	purchaseRepo purchase.Repository,
	subscriptionRepo subscription.SubscriptionRepository,
	claimRepo claim.Repository,
	allowances *GetMonthlyAllowancesUseCase,
	log logger.Interface,
) *CanClaimProductUseCase {
	return &CanClaimProductUseCase{
		catalogRepo:      catalogRepo,
		purchaseRepo:     purchaseRepo,
		subscriptionRepo: subscriptionRepo,
		claimRepo:        claimRepo,
		allowances:       allowances,
		logger:           log.Named("can_claim"),
	}
}

func (uc *CanClaimProductUseCase) Execute(ctx context.Context, query CanClaimProductQuery) (*CanClaimResult, error) {
	product, err := uc.catalogRepo.FindProduct(ctx, query.Ref)
	if err != nil {
		uc.logger.Errorw("failed to resolve product",
			"error", err,
			"content", query.Ref.String(),
		)
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}
	if product == nil {
		return &CanClaimResult{Reason: FailureContentNotFound}, nil
	}
	if !product.IsPublished() {
		return &CanClaimResult{Reason: FailureUnpublished}, nil
	}

	if product.IsOwnedBy(query.PrincipalID) {
		return &CanClaimResult{Reason: FailureAlreadyOwned}, nil
	}
	purchased, err := uc.purchaseRepo.FindCompleted(ctx, query.PrincipalID, query.Ref)
	if err != nil {
		return nil, fmt.Errorf("failed to check purchase: %w", err)
	}
	if purchased != nil && purchased.GrantsAccessAt(biztime.NowUTC()) {
		return &CanClaimResult{Reason: FailureAlreadyOwned}, nil
	}

	sub, err := uc.subscriptionRepo.GetActiveByPrincipal(ctx, query.PrincipalID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve active subscription: %w", err)
	}
	if sub == nil {
		return &CanClaimResult{Reason: FailureNoActiveSubscription}, nil
	}

	// An existing claim row short-circuits the allowance check: re-claiming
	// is idempotent and consumes nothing.
	existing, err := uc.claimRepo.GetBySubscriptionContent(ctx, sub.ID(), query.Ref)
	if err != nil {
		return nil, fmt.Errorf("failed to look up claim: %w", err)
	}
	if existing != nil {
		if existing.IsActive() {
			return &CanClaimResult{CanClaim: true, AlreadyClaimed: true}, nil
		}
		// A revoked claim keeps its slot; the content cannot be re-claimed.
		return &CanClaimResult{Reason: FailureClaimRevoked}, nil
	}

	snapshot, err := uc.allowances.Execute(ctx, GetMonthlyAllowancesQuery{
		PrincipalID: query.PrincipalID,
		SkipCache:   true,
	})
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return &CanClaimResult{Reason: FailureNoActiveSubscription}, nil
	}

	allowance := snapshot.For(query.Ref.Type)
	if allowance.NotIncluded || allowance.HasReachedLimit {
		return &CanClaimResult{Reason: FailureAllowanceExceeded}, nil
	}
	if allowance.Unlimited {
		return &CanClaimResult{CanClaim: true, Unlimited: true}, nil
	}
	remaining := allowance.Remaining
	return &CanClaimResult{CanClaim: true, Remaining: &remaining}, nil
}
