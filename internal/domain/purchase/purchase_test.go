package purchase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
)

func reconstruct(t *testing.T, status Status, expiresAt *time.Time) *Purchase {
	t.Helper()
	p, err := ReconstructPurchase(1, 10, catalog.ContentRef{Type: catalog.ContentTypeGame, ID: 42}, status, expiresAt, time.Now())
	require.NoError(t, err)
	return p
}

func TestPurchase_GrantsAccessAt(t *testing.T) {
	now := time.Now()

	t.Run("completed lifetime purchase grants access", func(t *testing.T) {
		p := reconstruct(t, StatusCompleted, nil)
		assert.True(t, p.GrantsAccessAt(now))
		assert.True(t, p.GrantsAccessAt(now.AddDate(10, 0, 0)))
	})

	t.Run("unexpired purchase grants access", func(t *testing.T) {
		exp := now.Add(time.Hour)
		p := reconstruct(t, StatusCompleted, &exp)
		assert.True(t, p.GrantsAccessAt(now))
	})

	t.Run("expired purchase denies access", func(t *testing.T) {
		exp := now.Add(-time.Hour)
		p := reconstruct(t, StatusCompleted, &exp)
		assert.False(t, p.GrantsAccessAt(now))
	})

	t.Run("expiry instant itself denies access", func(t *testing.T) {
		p := reconstruct(t, StatusCompleted, &now)
		assert.False(t, p.GrantsAccessAt(now))
	})

	t.Run("pending and refunded purchases deny access", func(t *testing.T) {
		assert.False(t, reconstruct(t, StatusPending, nil).GrantsAccessAt(now))
		assert.False(t, reconstruct(t, StatusRefunded, nil).GrantsAccessAt(now))
	})
}

func TestReconstructPurchase_Validation(t *testing.T) {
	ref := catalog.ContentRef{Type: catalog.ContentTypeFile, ID: 1}

	_, err := ReconstructPurchase(0, 10, ref, StatusCompleted, nil, time.Now())
	assert.Error(t, err)

	_, err = ReconstructPurchase(1, 0, ref, StatusCompleted, nil, time.Now())
	assert.Error(t, err)

	_, err = ReconstructPurchase(1, 10, ref, Status("chargeback"), nil, time.Now())
	assert.Error(t, err)
}
