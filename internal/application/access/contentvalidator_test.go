package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/domain/principal"
)

func gameProduct(t *testing.T, published bool, minAge int) *catalog.Product {
	t.Helper()
	now := time.Now()
	p, err := catalog.ReconstructProduct(8, "prod_game", catalog.ContentTypeGame, "Quiz", 99, published, minAge, &now, now, now)
	require.NoError(t, err)
	return p
}

func TestValidatorRegistry_GameCapabilities(t *testing.T) {
	reg := NewValidatorRegistry(&mockLogger{})
	product := gameProduct(t, true, 0)

	t.Run("direct claim can host sessions", func(t *testing.T) {
		result := granted(AccessTypeClaim, nil)
		reg.Apply(context.Background(), nil, product, result)
		assert.True(t, result.HasAccess)
		assert.True(t, result.Capabilities.CanCreateSessions)
		assert.True(t, result.Capabilities.CanJoinSessions)
	})

	t.Run("delegated access is join only", func(t *testing.T) {
		result := granted(AccessTypeDelegated, nil)
		reg.Apply(context.Background(), nil, product, result)
		assert.True(t, result.HasAccess)
		assert.False(t, result.Capabilities.CanCreateSessions)
		assert.True(t, result.Capabilities.CanJoinSessions)
	})
}

func TestValidatorRegistry_UnpublishedDowngrade(t *testing.T) {
	reg := NewValidatorRegistry(&mockLogger{})
	product := gameProduct(t, false, 0)

	result := granted(AccessTypeClaim, nil)
	reg.Apply(context.Background(), nil, product, result)
	assert.False(t, result.HasAccess)
	assert.Equal(t, ReasonUnpublished, result.Reason)

	owner := granted(AccessTypeOwnership, nil)
	owner.AllowUnpublished = true
	reg.Apply(context.Background(), nil, product, owner)
	assert.True(t, owner.HasAccess, "the owner bypasses the publication check")
}

func TestValidatorRegistry_MinimumAge(t *testing.T) {
	reg := NewValidatorRegistry(&mockLogger{})
	product := gameProduct(t, true, 13)
	now := time.Now()

	young := now.AddDate(-10, 0, 0)
	kid, err := principal.ReconstructPrincipal(1, "usr_kid", principal.RoleStudent, nil, &young, now, now)
	require.NoError(t, err)

	result := granted(AccessTypeClaim, nil)
	reg.Apply(context.Background(), kid, product, result)
	assert.False(t, result.HasAccess)
	assert.Equal(t, ReasonAgeRestricted, result.Reason)

	old := now.AddDate(-30, 0, 0)
	adult, err := principal.ReconstructPrincipal(2, "usr_adult", principal.RoleTeacher, nil, &old, now, now)
	require.NoError(t, err)

	result = granted(AccessTypeClaim, nil)
	reg.Apply(context.Background(), adult, product, result)
	assert.True(t, result.HasAccess)
}

func TestValidatorRegistry_FailsOpenOnValidatorError(t *testing.T) {
	reg := NewValidatorRegistry(&mockLogger{})
	reg.Register(catalog.ContentTypeGame, TypeValidatorFunc(
		func(_ context.Context, _ *principal.Principal, _ *catalog.Product, _ *Result) error {
			return errors.New("validator panic-adjacent failure")
		}))

	result := granted(AccessTypeClaim, nil)
	reg.Apply(context.Background(), nil, gameProduct(t, true, 0), result)
	assert.True(t, result.HasAccess, "base access was proven; validator errors fail open")
}
