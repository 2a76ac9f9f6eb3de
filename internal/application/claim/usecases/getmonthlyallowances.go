package usecases

import (
	"context"
	"fmt"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/domain/claim"
	"github.com/atelier-edu/atelier/internal/domain/subscription"
	"github.com/atelier-edu/atelier/internal/shared/biztime"
	"github.com/atelier-edu/atelier/internal/shared/errors"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

// Allowance describes one content type's quota state for a period.
type Allowance struct {
	ContentType     catalog.ContentType `json:"content_type"`
	Unlimited       bool                `json:"unlimited"`
	Limit           uint                `json:"limit"`
	Used            uint                `json:"used"`
	Remaining       uint                `json:"remaining"`
	NotIncluded     bool                `json:"not_included"`
	HasReachedLimit bool                `json:"has_reached_limit"`
}

// AllowanceSnapshot is the full per-type allowance picture for one
// subscription in one calendar period.
type AllowanceSnapshot struct {
	SubscriptionID  uint                              `json:"subscription_id"`
	SubscriptionSID string                            `json:"subscription_sid"`
	Period          string                            `json:"period"`
	Allowances      map[catalog.ContentType]Allowance `json:"allowances"`
}

// For returns the allowance entry for a content type. Types absent from the
// benefit map come back as not included.
func (s *AllowanceSnapshot) For(ct catalog.ContentType) Allowance {
	if a, ok := s.Allowances[ct]; ok {
		return a
	}
	return Allowance{ContentType: ct, NotIncluded: true, HasReachedLimit: true}
}

type GetMonthlyAllowancesQuery struct {
	PrincipalID uint
	Period      string // "YYYY-MM"; empty means the current calendar month
	SkipCache   bool   // claim flows need fresh counts
}

// GetMonthlyAllowancesUseCase is the allowance calculator: it resolves the
// principal's active subscription, its effective benefit map, and the
// period-scoped claim counts. Limits are per calendar month with no
// rollover; a new period simply starts counting from zero.
type GetMonthlyAllowancesUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	claimRepo        claim.Repository
	cache            AllowanceCache // optional
	logger           logger.Interface
}

func NewGetMonthlyAllowancesUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	claimRepo claim.Repository,
	log logger.Interface,
) *GetMonthlyAllowancesUseCase {
	return &GetMonthlyAllowancesUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		claimRepo:        claimRepo,
		logger:           log.Named("allowances"),
	}
}

// SetCache installs an allowance cache (optional).
func (uc *GetMonthlyAllowancesUseCase) SetCache(cache AllowanceCache) {
	uc.cache = cache
}

// Execute computes the allowance snapshot. Returns (nil, nil) when the
// principal has no active subscription.
func (uc *GetMonthlyAllowancesUseCase) Execute(ctx context.Context, query GetMonthlyAllowancesQuery) (*AllowanceSnapshot, error) {
	period := query.Period
	if period == "" {
		period = biztime.CurrentPeriod()
	} else if _, _, err := biztime.ParsePeriod(period); err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid period %q", period))
	}

	sub, err := uc.subscriptionRepo.GetActiveByPrincipal(ctx, query.PrincipalID)
	if err != nil {
		uc.logger.Errorw("failed to resolve active subscription",
			"error", err,
			"principal_id", query.PrincipalID,
		)
		return nil, fmt.Errorf("failed to resolve active subscription: %w", err)
	}
	if sub == nil {
		return nil, nil
	}

	if uc.cache != nil && !query.SkipCache {
		cached, err := uc.cache.GetSnapshot(ctx, sub.ID(), period)
		if err != nil {
			uc.logger.Warnw("allowance cache read failed",
				"error", err,
				"subscription_id", sub.ID(),
			)
		} else if cached != nil {
			return cached, nil
		}
	}

	snapshot, err := uc.compute(ctx, sub, period)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetSnapshot(ctx, snapshot); err != nil {
			uc.logger.Warnw("allowance cache write failed",
				"error", err,
				"subscription_id", sub.ID(),
			)
		}
	}
	return snapshot, nil
}

func (uc *GetMonthlyAllowancesUseCase) compute(ctx context.Context, sub *subscription.Subscription, period string) (*AllowanceSnapshot, error) {
	benefits, err := uc.effectiveBenefits(ctx, sub)
	if err != nil {
		return nil, err
	}

	used, err := uc.claimRepo.CountActiveByPeriod(ctx, sub.ID(), period)
	if err != nil {
		uc.logger.Errorw("failed to count claims for period",
			"error", err,
			"subscription_id", sub.ID(),
			"period", period,
		)
		return nil, fmt.Errorf("failed to count claims: %w", err)
	}

	allowances := make(map[catalog.ContentType]Allowance, len(benefits))
	for ct, benefit := range benefits {
		entry := Allowance{ContentType: ct, Used: used[ct]}
		if benefit.IsUnlimited() {
			entry.Unlimited = true
		} else {
			entry.Limit = benefit.Limit()
			if entry.Used < entry.Limit {
				entry.Remaining = entry.Limit - entry.Used
			}
			entry.HasReachedLimit = entry.Used >= entry.Limit
		}
		allowances[ct] = entry
	}

	// Claims can exist for types a changed benefit map no longer includes;
	// surface them as exhausted rather than hiding the usage.
	for ct, count := range used {
		if _, ok := allowances[ct]; !ok {
			allowances[ct] = Allowance{
				ContentType:     ct,
				Used:            count,
				NotIncluded:     true,
				HasReachedLimit: true,
			}
		}
	}

	return &AllowanceSnapshot{
		SubscriptionID:  sub.ID(),
		SubscriptionSID: sub.SID(),
		Period:          period,
		Allowances:      allowances,
	}, nil
}

func (uc *GetMonthlyAllowancesUseCase) effectiveBenefits(ctx context.Context, sub *subscription.Subscription) (subscription.BenefitMap, error) {
	if snapshot := sub.BenefitSnapshot(); snapshot != nil {
		return snapshot, nil
	}
	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		uc.logger.Errorw("failed to resolve plan for legacy subscription",
			"error", err,
			"subscription_id", sub.ID(),
			"plan_id", sub.PlanID(),
		)
		return nil, fmt.Errorf("failed to resolve plan: %w", err)
	}
	return sub.EffectiveBenefits(plan), nil
}
