package access

import (
	"context"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/domain/claim"
	"github.com/atelier-edu/atelier/internal/domain/principal"
	"github.com/atelier-edu/atelier/internal/domain/purchase"
	"github.com/atelier-edu/atelier/internal/domain/subscription"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

type mockCatalogRepository struct {
	FindProductFunc func(ctx context.Context, ref catalog.ContentRef) (*catalog.Product, error)
}

func (m *mockCatalogRepository) FindProduct(ctx context.Context, ref catalog.ContentRef) (*catalog.Product, error) {
	if m.FindProductFunc != nil {
		return m.FindProductFunc(ctx, ref)
	}
	return nil, nil
}

type mockPurchaseRepository struct {
	FindCompletedFunc func(ctx context.Context, principalID uint, ref catalog.ContentRef) (*purchase.Purchase, error)
}

func (m *mockPurchaseRepository) FindCompleted(ctx context.Context, principalID uint, ref catalog.ContentRef) (*purchase.Purchase, error) {
	if m.FindCompletedFunc != nil {
		return m.FindCompletedFunc(ctx, principalID, ref)
	}
	return nil, nil
}

type mockPrincipalRepository struct {
	GetByIDFunc func(ctx context.Context, principalID uint) (*principal.Principal, error)
}

func (m *mockPrincipalRepository) GetByID(ctx context.Context, principalID uint) (*principal.Principal, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, principalID)
	}
	return nil, nil
}

type mockDelegationRepository struct {
	FindDelegatesFunc func(ctx context.Context, dependentID uint) ([]uint, error)
}

func (m *mockDelegationRepository) FindDelegates(ctx context.Context, dependentID uint) ([]uint, error) {
	if m.FindDelegatesFunc != nil {
		return m.FindDelegatesFunc(ctx, dependentID)
	}
	return nil, nil
}

type mockSubscriptionRepository struct {
	GetActiveByPrincipalFunc  func(ctx context.Context, principalID uint) (*subscription.Subscription, error)
	GetByIDFunc               func(ctx context.Context, subscriptionID uint) (*subscription.Subscription, error)
	UpdateBenefitSnapshotFunc func(ctx context.Context, sub *subscription.Subscription) error
}

func (m *mockSubscriptionRepository) GetActiveByPrincipal(ctx context.Context, principalID uint) (*subscription.Subscription, error) {
	if m.GetActiveByPrincipalFunc != nil {
		return m.GetActiveByPrincipalFunc(ctx, principalID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, subscriptionID uint) (*subscription.Subscription, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, subscriptionID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) UpdateBenefitSnapshot(ctx context.Context, sub *subscription.Subscription) error {
	if m.UpdateBenefitSnapshotFunc != nil {
		return m.UpdateBenefitSnapshotFunc(ctx, sub)
	}
	return nil
}

type mockPlanRepository struct {
	GetByIDFunc func(ctx context.Context, planID uint) (*subscription.Plan, error)
}

func (m *mockPlanRepository) GetByID(ctx context.Context, planID uint) (*subscription.Plan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, planID)
	}
	return nil, nil
}

type mockClaimRepository struct {
	CreateFunc                   func(ctx context.Context, c *claim.Claim) error
	GetByIDFunc                  func(ctx context.Context, id uint) (*claim.Claim, error)
	GetBySIDFunc                 func(ctx context.Context, sid string) (*claim.Claim, error)
	GetBySubscriptionContentFunc func(ctx context.Context, subscriptionID uint, ref catalog.ContentRef) (*claim.Claim, error)
	GetActiveByContentFunc       func(ctx context.Context, subscriptionID uint, ref catalog.ContentRef) (*claim.Claim, error)
	ListActiveByContentAnyFunc   func(ctx context.Context, subscriptionIDs []uint, ref catalog.ContentRef) ([]*claim.Claim, error)
	CountActiveByPeriodFunc      func(ctx context.Context, subscriptionID uint, period string) (map[catalog.ContentType]uint, error)
	GetChildrenFunc              func(ctx context.Context, parentID uint) ([]*claim.Claim, error)
	UpdateStatusFunc             func(ctx context.Context, c *claim.Claim) error
	UpdateUsageFunc              func(ctx context.Context, c *claim.Claim) error
}

func (m *mockClaimRepository) Create(ctx context.Context, c *claim.Claim) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *mockClaimRepository) GetByID(ctx context.Context, id uint) (*claim.Claim, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, claim.ErrClaimNotFound
}

func (m *mockClaimRepository) GetBySID(ctx context.Context, sid string) (*claim.Claim, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, claim.ErrClaimNotFound
}

func (m *mockClaimRepository) GetBySubscriptionContent(ctx context.Context, subscriptionID uint, ref catalog.ContentRef) (*claim.Claim, error) {
	if m.GetBySubscriptionContentFunc != nil {
		return m.GetBySubscriptionContentFunc(ctx, subscriptionID, ref)
	}
	return nil, nil
}

func (m *mockClaimRepository) GetActiveByContent(ctx context.Context, subscriptionID uint, ref catalog.ContentRef) (*claim.Claim, error) {
	if m.GetActiveByContentFunc != nil {
		return m.GetActiveByContentFunc(ctx, subscriptionID, ref)
	}
	return nil, nil
}

func (m *mockClaimRepository) ListActiveByContentAny(ctx context.Context, subscriptionIDs []uint, ref catalog.ContentRef) ([]*claim.Claim, error) {
	if m.ListActiveByContentAnyFunc != nil {
		return m.ListActiveByContentAnyFunc(ctx, subscriptionIDs, ref)
	}
	return nil, nil
}

func (m *mockClaimRepository) CountActiveByPeriod(ctx context.Context, subscriptionID uint, period string) (map[catalog.ContentType]uint, error) {
	if m.CountActiveByPeriodFunc != nil {
		return m.CountActiveByPeriodFunc(ctx, subscriptionID, period)
	}
	return map[catalog.ContentType]uint{}, nil
}

func (m *mockClaimRepository) GetChildren(ctx context.Context, parentID uint) ([]*claim.Claim, error) {
	if m.GetChildrenFunc != nil {
		return m.GetChildrenFunc(ctx, parentID)
	}
	return nil, nil
}

func (m *mockClaimRepository) UpdateStatus(ctx context.Context, c *claim.Claim) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, c)
	}
	return nil
}

func (m *mockClaimRepository) UpdateUsage(ctx context.Context, c *claim.Claim) error {
	if m.UpdateUsageFunc != nil {
		return m.UpdateUsageFunc(ctx, c)
	}
	return nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                    {}
func (m *mockLogger) Info(msg string, args ...any)                     {}
func (m *mockLogger) Warn(msg string, args ...any)                     {}
func (m *mockLogger) Error(msg string, args ...any)                    {}
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})   {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})   {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) With(args ...any) logger.Interface                { return m }
func (m *mockLogger) Named(name string) logger.Interface               { return m }
