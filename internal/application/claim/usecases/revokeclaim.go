package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/atelier-edu/atelier/internal/domain/claim"
	"github.com/atelier-edu/atelier/internal/shared/errors"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

type RevokeClaimCommand struct {
	ClaimID  uint   // internal ID (used if ClaimSID is empty)
	ClaimSID string // Stripe-style claim SID (takes precedence over ClaimID)
}

type RevokeClaimResult struct {
	RevokedCount int
}

// RevokeClaimUseCase terminates a claim and, transactionally, every child
// claim derived from it. Unlike creation, revocation is not idempotent:
// revoking a revoked claim is a conflict, which keeps the audit trail
// honest about who revoked what.
type RevokeClaimUseCase struct {
	claimRepo claim.Repository
	tx        Transactor
	cache     AllowanceCache // optional
	logger    logger.Interface
}

func NewRevokeClaimUseCase(
	claimRepo claim.Repository,
	tx Transactor,
	log logger.Interface,
) *RevokeClaimUseCase {
	return &RevokeClaimUseCase{
		claimRepo: claimRepo,
		tx:        tx,
		logger:    log.Named("revoke_claim"),
	}
}

// SetCache installs an allowance cache to invalidate after revocation
// (optional).
func (uc *RevokeClaimUseCase) SetCache(cache AllowanceCache) {
	uc.cache = cache
}

func (uc *RevokeClaimUseCase) Execute(ctx context.Context, cmd RevokeClaimCommand) (*RevokeClaimResult, error) {
	target, err := uc.resolve(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if target.Status() == claim.StatusRevoked {
		return nil, errors.NewAlreadyRevokedError(target.SID())
	}

	children, err := uc.claimRepo.GetChildren(ctx, target.ID())
	if err != nil {
		uc.logger.Errorw("failed to load child claims",
			"error", err,
			"claim_id", target.ID(),
		)
		return nil, fmt.Errorf("failed to load child claims: %w", err)
	}

	revoked := 0
	txErr := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := target.Revoke(); err != nil {
			return err
		}
		if err := uc.claimRepo.UpdateStatus(txCtx, target); err != nil {
			if stderrors.Is(err, claim.ErrAlreadyRevoked) {
				// A concurrent revoke won the race; only one caller gets
				// credited on the audit trail.
				return errors.NewAlreadyRevokedError(target.SID())
			}
			return fmt.Errorf("failed to revoke claim: %w", err)
		}
		revoked++

		for _, child := range children {
			if child.Status() == claim.StatusRevoked {
				continue
			}
			if err := child.Revoke(); err != nil {
				return err
			}
			if err := uc.claimRepo.UpdateStatus(txCtx, child); err != nil {
				if stderrors.Is(err, claim.ErrAlreadyRevoked) {
					continue
				}
				return fmt.Errorf("failed to revoke child claim %d: %w", child.ID(), err)
			}
			revoked++
		}
		return nil
	})
	if txErr != nil {
		uc.logger.Errorw("claim revocation rolled back",
			"error", txErr,
			"claim_id", target.ID(),
		)
		return nil, txErr
	}

	uc.invalidateCache(ctx, target)
	for _, child := range children {
		if child.SubscriptionID() != target.SubscriptionID() {
			uc.invalidateCache(ctx, child)
		}
	}

	uc.logger.Infow("claim revoked",
		"claim_id", target.ID(),
		"claim_sid", target.SID(),
		"revoked_count", revoked,
	)
	return &RevokeClaimResult{RevokedCount: revoked}, nil
}

func (uc *RevokeClaimUseCase) resolve(ctx context.Context, cmd RevokeClaimCommand) (*claim.Claim, error) {
	var (
		target *claim.Claim
		err    error
	)
	if cmd.ClaimSID != "" {
		target, err = uc.claimRepo.GetBySID(ctx, cmd.ClaimSID)
	} else {
		target, err = uc.claimRepo.GetByID(ctx, cmd.ClaimID)
	}
	if err != nil {
		if errors.IsNotFoundError(err) || isClaimNotFound(err) {
			return nil, errors.NewNotFoundError("claim not found")
		}
		uc.logger.Errorw("failed to load claim",
			"error", err,
			"claim_id", cmd.ClaimID,
			"claim_sid", cmd.ClaimSID,
		)
		return nil, fmt.Errorf("failed to load claim: %w", err)
	}
	if target == nil {
		return nil, errors.NewNotFoundError("claim not found")
	}
	return target, nil
}

func isClaimNotFound(err error) bool {
	return stderrors.Is(err, claim.ErrClaimNotFound)
}

func (uc *RevokeClaimUseCase) invalidateCache(ctx context.Context, c *claim.Claim) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, c.SubscriptionID(), c.Period()); err != nil {
		uc.logger.Warnw("failed to invalidate allowance cache",
			"error", err,
			"subscription_id", c.SubscriptionID(),
			"period", c.Period(),
		)
	}
}
