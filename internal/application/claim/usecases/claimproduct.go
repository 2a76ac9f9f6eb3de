package usecases

import (
	"context"
	"fmt"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/domain/claim"
	"github.com/atelier-edu/atelier/internal/domain/purchase"
	"github.com/atelier-edu/atelier/internal/domain/subscription"
	"github.com/atelier-edu/atelier/internal/shared/biztime"
	"github.com/atelier-edu/atelier/internal/shared/errors"
	"github.com/atelier-edu/atelier/internal/shared/id"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

type ClaimProductCommand struct {
	PrincipalID uint
	Ref         catalog.ContentRef
	// SkipConfirmation claims a limited benefit without the confirmation
	// round trip. Unlimited benefits never require confirmation.
	SkipConfirmation bool
}

type ClaimProductResult struct {
	Success           bool
	AlreadyClaimed    bool
	NeedsConfirmation bool
	FailureCode       string
	// Remaining is the quota left after this claim (or the quota a
	// confirmation would consume from); nil for unlimited benefits.
	Remaining *uint
	Claim     *claim.Claim
}

// ClaimProductUseCase performs race-safe claim creation. The store's
// uniqueness constraint on (subscription, content type, content id) is the
// final arbiter: a duplicate-key error from a concurrent insert is
// converted into an idempotent alreadyClaimed success.
type ClaimProductUseCase struct {
	catalogRepo      catalog.Repository
	purchaseRepo     purchase.Repository
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	claimRepo        claim.Repository
	allowances       *GetMonthlyAllowancesUseCase
	tx               Transactor
	cache            AllowanceCache // optional
	logger           logger.Interface
}

func NewClaimProductUseCase(
	catalogRepo catalog.Repository,
	purchaseRepo purchase.Repository,
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	claimRepo claim.Repository,
	allowances *GetMonthlyAllowancesUseCase,
	tx Transactor,
	log logger.Interface,
) *ClaimProductUseCase {
	return &ClaimProductUseCase{
		catalogRepo:      catalogRepo,
		purchaseRepo:     purchaseRepo,
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		claimRepo:        claimRepo,
		allowances:       allowances,
		tx:               tx,
		logger:           log.Named("claim_product"),
	}
}

// SetCache installs an allowance cache to invalidate after claims (optional).
func (uc *ClaimProductUseCase) SetCache(cache AllowanceCache) {
	uc.cache = cache
}

func (uc *ClaimProductUseCase) Execute(ctx context.Context, cmd ClaimProductCommand) (*ClaimProductResult, error) {
	product, err := uc.catalogRepo.FindProduct(ctx, cmd.Ref)
	if err != nil {
		uc.logger.Errorw("failed to resolve product",
			"error", err,
			"principal_id", cmd.PrincipalID,
			"content", cmd.Ref.String(),
		)
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}
	if product == nil {
		return nil, errors.NewNotFoundError("product not found", cmd.Ref.String())
	}
	if !product.IsPublished() {
		return nil, errors.NewForbiddenError("product is not published", cmd.Ref.String())
	}

	// Owned or purchased content must not consume subscription allowance.
	if product.IsOwnedBy(cmd.PrincipalID) {
		return &ClaimProductResult{FailureCode: FailureAlreadyOwned}, nil
	}
	purchased, err := uc.purchaseRepo.FindCompleted(ctx, cmd.PrincipalID, cmd.Ref)
	if err != nil {
		return nil, fmt.Errorf("failed to check purchase: %w", err)
	}
	if purchased != nil && purchased.GrantsAccessAt(biztime.NowUTC()) {
		return &ClaimProductResult{FailureCode: FailureAlreadyOwned}, nil
	}

	sub, err := uc.subscriptionRepo.GetActiveByPrincipal(ctx, cmd.PrincipalID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve active subscription: %w", err)
	}
	if sub == nil {
		return &ClaimProductResult{FailureCode: FailureNoActiveSubscription}, nil
	}

	uc.backfillSnapshot(ctx, sub)

	existing, err := uc.claimRepo.GetBySubscriptionContent(ctx, sub.ID(), cmd.Ref)
	if err != nil {
		return nil, fmt.Errorf("failed to look up claim: %w", err)
	}
	if existing != nil {
		if existing.IsActive() {
			return &ClaimProductResult{Success: true, AlreadyClaimed: true, Claim: existing}, nil
		}
		return nil, errors.NewConflictError("content was previously claimed and revoked", existing.SID())
	}

	snapshot, err := uc.allowances.Execute(ctx, GetMonthlyAllowancesQuery{
		PrincipalID: cmd.PrincipalID,
		SkipCache:   true,
	})
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return &ClaimProductResult{FailureCode: FailureNoActiveSubscription}, nil
	}

	allowance := snapshot.For(cmd.Ref.Type)
	if allowance.NotIncluded || allowance.HasReachedLimit {
		uc.logger.Infow("claim rejected, allowance exceeded",
			"principal_id", cmd.PrincipalID,
			"content", cmd.Ref.String(),
			"used", allowance.Used,
			"limit", allowance.Limit,
		)
		return &ClaimProductResult{FailureCode: FailureAllowanceExceeded}, nil
	}

	// Limited benefits consume quota; require an explicit confirmation so
	// a plain access attempt never silently spends a slot.
	if !allowance.Unlimited && !cmd.SkipConfirmation {
		remaining := allowance.Remaining
		return &ClaimProductResult{NeedsConfirmation: true, Remaining: &remaining}, nil
	}

	sid, err := id.NewClaimSID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate claim ID: %w", err)
	}
	newClaim, err := claim.NewClaim(sub.ID(), cmd.PrincipalID, sid, cmd.Ref, snapshot.Period)
	if err != nil {
		return nil, fmt.Errorf("failed to build claim: %w", err)
	}

	createErr := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.claimRepo.Create(txCtx, newClaim)
	})
	if createErr != nil {
		if errors.IsDuplicateError(createErr) {
			// Lost the race to a concurrent request; the winner's claim is
			// the outcome.
			winner, readErr := uc.claimRepo.GetBySubscriptionContent(ctx, sub.ID(), cmd.Ref)
			if readErr != nil || winner == nil {
				uc.logger.Errorw("failed to re-read claim after duplicate",
					"error", readErr,
					"subscription_id", sub.ID(),
					"content", cmd.Ref.String(),
				)
				return nil, fmt.Errorf("failed to re-read claim after duplicate: %w", readErr)
			}
			uc.logger.Infow("concurrent claim resolved idempotently",
				"subscription_id", sub.ID(),
				"content", cmd.Ref.String(),
				"claim_id", winner.ID(),
			)
			return &ClaimProductResult{Success: true, AlreadyClaimed: true, Claim: winner}, nil
		}
		uc.logger.Errorw("failed to create claim",
			"error", createErr,
			"subscription_id", sub.ID(),
			"content", cmd.Ref.String(),
		)
		return nil, fmt.Errorf("failed to create claim: %w", createErr)
	}

	uc.invalidateCache(ctx, sub.ID(), snapshot.Period)

	uc.logger.Infow("claim created",
		"claim_id", newClaim.ID(),
		"claim_sid", newClaim.SID(),
		"subscription_id", sub.ID(),
		"principal_id", cmd.PrincipalID,
		"content", cmd.Ref.String(),
		"period", snapshot.Period,
	)

	result := &ClaimProductResult{Success: true, Claim: newClaim}
	if !allowance.Unlimited && allowance.Remaining > 0 {
		remaining := allowance.Remaining - 1
		result.Remaining = &remaining
	}
	return result, nil
}

// backfillSnapshot freezes the live plan's benefits onto a legacy
// subscription that predates snapshotting. Best effort: the claim proceeds
// on the live plan if the write fails.
func (uc *ClaimProductUseCase) backfillSnapshot(ctx context.Context, sub *subscription.Subscription) {
	if sub.BenefitSnapshot() != nil {
		return
	}
	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil || plan == nil {
		uc.logger.Warnw("cannot backfill benefit snapshot, plan unavailable",
			"error", err,
			"subscription_id", sub.ID(),
			"plan_id", sub.PlanID(),
		)
		return
	}
	if err := sub.RecordBenefitSnapshot(plan.Benefits()); err != nil {
		return
	}
	if err := uc.subscriptionRepo.UpdateBenefitSnapshot(ctx, sub); err != nil {
		uc.logger.Warnw("failed to persist benefit snapshot backfill",
			"error", err,
			"subscription_id", sub.ID(),
		)
	}
}

func (uc *ClaimProductUseCase) invalidateCache(ctx context.Context, subscriptionID uint, period string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, subscriptionID, period); err != nil {
		uc.logger.Warnw("failed to invalidate allowance cache",
			"error", err,
			"subscription_id", subscriptionID,
			"period", period,
		)
	}
}
