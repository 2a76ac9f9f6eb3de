package access

import (
	"context"
	"fmt"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/domain/claim"
	"github.com/atelier-edu/atelier/internal/domain/subscription"
	"github.com/atelier-edu/atelier/internal/shared/biztime"
)

// checkDelegatedAccess resolves access through delegation edges: if any of
// the dependent's delegates (teacher assignment or group membership) holds
// an active claim for the content, the dependent is granted access on that
// claim. No claim row is created for the dependent; usage attribution is
// recorded on the delegate's claim instead.
func (s *Service) checkDelegatedAccess(ctx context.Context, dependentID uint, ref catalog.ContentRef) (*Result, error) {
	delegates, err := s.delegationRepo.FindDelegates(ctx, dependentID)
	if err != nil {
		s.logger.Errorw("failed to enumerate delegates",
			"error", err,
			"principal_id", dependentID,
		)
		return nil, fmt.Errorf("failed to enumerate delegates: %w", err)
	}
	if len(delegates) == 0 {
		return denied(ReasonNoAccess, nil), nil
	}

	// Collect the delegates' active subscriptions, remembering which
	// delegate each one belongs to.
	subscriptionOwner := make(map[uint]uint, len(delegates))
	subscriptions := make(map[uint]*subscription.Subscription, len(delegates))
	subscriptionIDs := make([]uint, 0, len(delegates))
	for _, delegateID := range delegates {
		sub, err := s.subscriptionRepo.GetActiveByPrincipal(ctx, delegateID)
		if err != nil {
			s.logger.Errorw("failed to resolve delegate subscription",
				"error", err,
				"delegate_id", delegateID,
			)
			return nil, fmt.Errorf("failed to resolve delegate subscription: %w", err)
		}
		if sub == nil {
			continue
		}
		subscriptionOwner[sub.ID()] = delegateID
		subscriptions[sub.ID()] = sub
		subscriptionIDs = append(subscriptionIDs, sub.ID())
	}
	if len(subscriptionIDs) == 0 {
		return denied(ReasonNoTeacherClaims, nil), nil
	}

	claims, err := s.claimRepo.ListActiveByContentAny(ctx, subscriptionIDs, ref)
	if err != nil {
		s.logger.Errorw("failed to scan delegate claims",
			"error", err,
			"principal_id", dependentID,
			"content", ref.String(),
		)
		return nil, fmt.Errorf("failed to scan delegate claims: %w", err)
	}
	if len(claims) == 0 {
		return denied(ReasonNoTeacherClaims, nil), nil
	}

	// A delegate's claim only serves if their subscription still includes
	// the benefit, mirroring the direct-claim rule.
	var matched *claim.Claim
	for _, c := range claims {
		benefits, err := s.effectiveBenefits(ctx, subscriptions[c.SubscriptionID()])
		if err != nil {
			return nil, err
		}
		if benefits.Includes(ref.Type) {
			matched = c
			break
		}
	}
	if matched == nil {
		return denied(ReasonNoTeacherClaims, nil), nil
	}
	delegateID := subscriptionOwner[matched.SubscriptionID()]

	// Attribution is best effort: the grant stands even if the usage write
	// fails.
	matched.RecordDelegatedUse(biztime.NowUTC())
	if err := s.claimRepo.UpdateUsage(ctx, matched); err != nil {
		s.logger.Warnw("failed to record delegated use",
			"error", err,
			"claim_id", matched.ID(),
			"dependent_id", dependentID,
		)
	}

	s.logger.Debugw("delegated access granted",
		"dependent_id", dependentID,
		"delegate_id", delegateID,
		"claim_id", matched.ID(),
		"content", ref.String(),
	)

	result := granted(AccessTypeDelegated, nil)
	result.DelegateID = delegateID
	return result, nil
}
