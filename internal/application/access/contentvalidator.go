package access

import (
	"context"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/domain/principal"
	"github.com/atelier-edu/atelier/internal/shared/biztime"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

// TypeValidator applies content-type-specific post-checks to a granted
// result. It may set capability flags or downgrade the result.
type TypeValidator interface {
	Validate(ctx context.Context, p *principal.Principal, product *catalog.Product, result *Result) error
}

// TypeValidatorFunc adapts a function to the TypeValidator interface.
type TypeValidatorFunc func(ctx context.Context, p *principal.Principal, product *catalog.Product, result *Result) error

func (f TypeValidatorFunc) Validate(ctx context.Context, p *principal.Principal, product *catalog.Product, result *Result) error {
	return f(ctx, p, product, result)
}

// ValidatorRegistry holds one validator per content type plus the rules
// shared by every type (publication status, minimum-age gating).
type ValidatorRegistry struct {
	validators map[catalog.ContentType]TypeValidator
	logger     logger.Interface
}

// NewValidatorRegistry creates a registry pre-populated with the default
// per-type validators.
func NewValidatorRegistry(log logger.Interface) *ValidatorRegistry {
	r := &ValidatorRegistry{
		validators: make(map[catalog.ContentType]TypeValidator),
		logger:     log.Named("content_validator"),
	}

	r.Register(catalog.ContentTypeGame, TypeValidatorFunc(validateGame))
	r.Register(catalog.ContentTypeWorkshop, TypeValidatorFunc(validateGame))
	r.Register(catalog.ContentTypeTool, TypeValidatorFunc(validateTool))

	return r
}

// Register installs the validator for a content type, replacing any
// previous one.
func (r *ValidatorRegistry) Register(ct catalog.ContentType, v TypeValidator) {
	r.validators[ct] = v
}

// Apply runs the shared rules and the type-specific validator against an
// already granted result, mutating it in place. Rule failures downgrade
// the grant; unexpected validator errors fail open because base access
// was already proven, but they are always logged.
func (r *ValidatorRegistry) Apply(ctx context.Context, p *principal.Principal, product *catalog.Product, result *Result) {
	if !result.HasAccess {
		return
	}

	if !product.IsPublished() && !result.AllowUnpublished {
		r.logger.Debugw("downgrading access to unpublished content",
			"content", product.Ref().String(),
			"access_type", result.AccessType,
		)
		result.downgrade(ReasonUnpublished)
		return
	}

	if min := product.MinimumAge(); min > 0 && p != nil {
		if age, ok := p.AgeAt(biztime.NowUTC()); ok && age < min {
			r.logger.Debugw("downgrading access for age restriction",
				"content", product.Ref().String(),
				"minimum_age", min,
				"principal_id", p.ID(),
			)
			result.downgrade(ReasonAgeRestricted)
			return
		}
	}

	v, ok := r.validators[product.ContentType()]
	if !ok {
		return
	}
	if err := v.Validate(ctx, p, product, result); err != nil {
		// Base access is proven; a broken validator must not lock users out.
		r.logger.Errorw("content validator failed, failing open",
			"error", err,
			"content", product.Ref().String(),
			"principal_id", principalIDOf(p),
		)
	}
}

func principalIDOf(p *principal.Principal) uint {
	if p == nil {
		return 0
	}
	return p.ID()
}

// validateGame grants session capabilities. Delegated access is join-only:
// dependents play through a delegate's claim but cannot host.
func validateGame(_ context.Context, _ *principal.Principal, _ *catalog.Product, result *Result) error {
	result.Capabilities.CanJoinSessions = true
	result.Capabilities.CanCreateSessions = result.AccessType != AccessTypeDelegated
	return nil
}

// validateTool withholds customization from delegated access.
func validateTool(_ context.Context, _ *principal.Principal, _ *catalog.Product, result *Result) error {
	result.Capabilities.CanCustomize = result.AccessType != AccessTypeDelegated
	return nil
}
