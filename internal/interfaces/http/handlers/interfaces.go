package handlers

import (
	"context"

	"github.com/atelier-edu/atelier/internal/application/access"
	"github.com/atelier-edu/atelier/internal/application/claim/usecases"
	"github.com/atelier-edu/atelier/internal/domain/catalog"
)

// Use case interfaces consumed by the HTTP handlers.

type accessChecker interface {
	CheckAccess(ctx context.Context, principalID uint, ref catalog.ContentRef) (*access.Result, error)
}

type claimProductUseCase interface {
	Execute(ctx context.Context, cmd usecases.ClaimProductCommand) (*usecases.ClaimProductResult, error)
}

type canClaimProductUseCase interface {
	Execute(ctx context.Context, query usecases.CanClaimProductQuery) (*usecases.CanClaimResult, error)
}

type revokeClaimUseCase interface {
	Execute(ctx context.Context, cmd usecases.RevokeClaimCommand) (*usecases.RevokeClaimResult, error)
}

type getMonthlyAllowancesUseCase interface {
	Execute(ctx context.Context, query usecases.GetMonthlyAllowancesQuery) (*usecases.AllowanceSnapshot, error)
}
