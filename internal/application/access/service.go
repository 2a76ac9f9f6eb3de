package access

import (
	"context"
	"fmt"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/domain/claim"
	"github.com/atelier-edu/atelier/internal/domain/principal"
	"github.com/atelier-edu/atelier/internal/domain/purchase"
	"github.com/atelier-edu/atelier/internal/domain/subscription"
	"github.com/atelier-edu/atelier/internal/shared/biztime"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

// Service is the access resolver. It tries the entitlement layers in fixed
// priority order (ownership, purchase, direct claim, delegated claim) and
// passes any grant through the content validator. Layer misses fall through;
// only infrastructure errors propagate.
type Service struct {
	catalogRepo      catalog.Repository
	purchaseRepo     purchase.Repository
	principalRepo    principal.Repository
	delegationRepo   principal.DelegationRepository
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	claimRepo        claim.Repository
	validators       *ValidatorRegistry
	logger           logger.Interface
}

// NewService creates the access resolver service.
func NewService(
	catalogRepo catalog.Repository,
	purchaseRepo purchase.Repository,
	principalRepo principal.Repository,
	delegationRepo principal.DelegationRepository,
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	claimRepo claim.Repository,
	validators *ValidatorRegistry,
	log logger.Interface,
) *Service {
	return &Service{
		catalogRepo:      catalogRepo,
		purchaseRepo:     purchaseRepo,
		principalRepo:    principalRepo,
		delegationRepo:   delegationRepo,
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		claimRepo:        claimRepo,
		validators:       validators,
		logger:           log.Named("access"),
	}
}

// CheckAccess resolves whether the principal may access the content.
// Business denials come back as a Result with HasAccess=false; an error
// return always means infrastructure failure.
func (s *Service) CheckAccess(ctx context.Context, principalID uint, ref catalog.ContentRef) (*Result, error) {
	product, err := s.catalogRepo.FindProduct(ctx, ref)
	if err != nil {
		s.logger.Errorw("failed to resolve product",
			"error", err,
			"principal_id", principalID,
			"content", ref.String(),
		)
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}
	if product == nil {
		return denied(ReasonContentNotFound, nil), nil
	}

	var attempted []string

	// Layer 1: ownership. Creators always access their own content,
	// published or not.
	attempted = append(attempted, LayerOwnership)
	if product.IsOwnedBy(principalID) {
		result := granted(AccessTypeOwnership, attempted)
		result.AllowUnpublished = true
		return s.finish(ctx, principalID, product, result), nil
	}

	// Layer 2: unexpired completed purchase.
	attempted = append(attempted, LayerPurchase)
	p, err := s.purchaseRepo.FindCompleted(ctx, principalID, ref)
	if err != nil {
		s.logger.Errorw("failed to check purchase",
			"error", err,
			"principal_id", principalID,
			"content", ref.String(),
		)
		return nil, fmt.Errorf("failed to check purchase: %w", err)
	}
	if p != nil && p.GrantsAccessAt(biztime.NowUTC()) {
		result := granted(AccessTypePurchase, attempted)
		result.ExpiresAt = p.ExpiresAt()
		return s.finish(ctx, principalID, product, result), nil
	}

	// Layer 3: direct subscription claim.
	attempted = append(attempted, LayerClaim)
	hasClaim, err := s.hasClaimedAccess(ctx, principalID, ref)
	if err != nil {
		return nil, err
	}
	if hasClaim {
		return s.finish(ctx, principalID, product, granted(AccessTypeClaim, attempted)), nil
	}

	// Layer 4: delegated claim through a teacher or group relationship.
	attempted = append(attempted, LayerDelegated)
	delegated, err := s.checkDelegatedAccess(ctx, principalID, ref)
	if err != nil {
		return nil, err
	}
	if delegated.HasAccess {
		delegated.LayersAttempted = attempted
		return s.finish(ctx, principalID, product, delegated), nil
	}

	s.logger.Debugw("no access layer succeeded",
		"principal_id", principalID,
		"content", ref.String(),
		"layers", attempted,
	)
	return denied(delegated.Reason, attempted), nil
}

// hasClaimedAccess reports whether the principal's own active subscription
// holds an active claim for the content, and the subscription still retains
// the benefit for the content type. Claim validity is not bound to the
// claim's original period.
func (s *Service) hasClaimedAccess(ctx context.Context, principalID uint, ref catalog.ContentRef) (bool, error) {
	sub, err := s.subscriptionRepo.GetActiveByPrincipal(ctx, principalID)
	if err != nil {
		s.logger.Errorw("failed to resolve active subscription",
			"error", err,
			"principal_id", principalID,
		)
		return false, fmt.Errorf("failed to resolve active subscription: %w", err)
	}
	if sub == nil {
		return false, nil
	}

	c, err := s.claimRepo.GetActiveByContent(ctx, sub.ID(), ref)
	if err != nil {
		s.logger.Errorw("failed to look up claim",
			"error", err,
			"subscription_id", sub.ID(),
			"content", ref.String(),
		)
		return false, fmt.Errorf("failed to look up claim: %w", err)
	}
	if c == nil {
		return false, nil
	}

	benefits, err := s.effectiveBenefits(ctx, sub)
	if err != nil {
		return false, err
	}
	if !benefits.Includes(ref.Type) {
		s.logger.Debugw("claim exists but subscription no longer includes benefit",
			"subscription_id", sub.ID(),
			"content_type", ref.Type,
		)
		return false, nil
	}
	return true, nil
}

// effectiveBenefits resolves the subscription's benefit map, preferring the
// snapshot and falling back to the live plan for legacy rows.
func (s *Service) effectiveBenefits(ctx context.Context, sub *subscription.Subscription) (subscription.BenefitMap, error) {
	if snapshot := sub.BenefitSnapshot(); snapshot != nil {
		return snapshot, nil
	}
	plan, err := s.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		s.logger.Errorw("failed to resolve plan for legacy subscription",
			"error", err,
			"subscription_id", sub.ID(),
			"plan_id", sub.PlanID(),
		)
		return nil, fmt.Errorf("failed to resolve plan: %w", err)
	}
	return sub.EffectiveBenefits(plan), nil
}

// finish runs the content validator over a granted result. The principal is
// loaded for restriction checks; a directory failure fails open since base
// access is already proven.
func (s *Service) finish(ctx context.Context, principalID uint, product *catalog.Product, result *Result) *Result {
	p, err := s.principalRepo.GetByID(ctx, principalID)
	if err != nil {
		s.logger.Errorw("failed to load principal for validation, failing open",
			"error", err,
			"principal_id", principalID,
		)
		p = nil
	}
	s.validators.Apply(ctx, p, product, result)
	return result
}
