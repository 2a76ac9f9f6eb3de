package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-edu/atelier/internal/application/claim/usecases"
	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/domain/claim"
	"github.com/atelier-edu/atelier/internal/interfaces/http/handlers/testutil"
	"github.com/atelier-edu/atelier/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockClaimProductUC struct {
	result *usecases.ClaimProductResult
	err    error

	gotCmd usecases.ClaimProductCommand
}

func (m *mockClaimProductUC) Execute(ctx context.Context, cmd usecases.ClaimProductCommand) (*usecases.ClaimProductResult, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockCanClaimUC struct {
	result *usecases.CanClaimResult
	err    error
}

func (m *mockCanClaimUC) Execute(ctx context.Context, query usecases.CanClaimProductQuery) (*usecases.CanClaimResult, error) {
	return m.result, m.err
}

type mockRevokeClaimUC struct {
	result *usecases.RevokeClaimResult
	err    error

	gotCmd usecases.RevokeClaimCommand
}

func (m *mockRevokeClaimUC) Execute(ctx context.Context, cmd usecases.RevokeClaimCommand) (*usecases.RevokeClaimResult, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

// =====================================================================
// Test helpers
// =====================================================================

func createTestClaim(t *testing.T) *claim.Claim {
	t.Helper()
	ref, err := catalog.NewContentRef(catalog.ContentTypeCourse, 42)
	require.NoError(t, err)
	c, err := claim.NewClaim(1, 7, "clm_test123", ref, "2026-08")
	require.NoError(t, err)
	require.NoError(t, c.SetID(10))
	return c
}

func newTestClaimHandler(
	claimUC claimProductUseCase,
	canClaimUC canClaimProductUseCase,
	revokeUC revokeClaimUseCase,
) *ClaimHandler {
	return NewClaimHandler(claimUC, canClaimUC, revokeUC, testutil.NewMockLogger())
}

// =====================================================================
// TestClaimHandler_ClaimProduct
// =====================================================================

func TestClaimHandler_ClaimProduct_Success(t *testing.T) {
	remaining := uint(2)
	mockUC := &mockClaimProductUC{
		result: &usecases.ClaimProductResult{
			Success:   true,
			Remaining: &remaining,
			Claim:     createTestClaim(t),
		},
	}
	handler := newTestClaimHandler(mockUC, nil, nil)

	reqBody := ClaimProductRequest{ContentType: "course", ContentID: 42}
	c, w := testutil.NewTestContext(http.MethodPost, "/claims", reqBody)
	testutil.SetAuthContext(c, 7)

	handler.ClaimProduct(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(7), mockUC.gotCmd.PrincipalID)
	assert.Equal(t, catalog.ContentTypeCourse, mockUC.gotCmd.Ref.Type)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var body ClaimProductResponse
	require.NoError(t, json.Unmarshal(resp.Data, &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Remaining)
	assert.Equal(t, uint(2), *body.Remaining)
	require.NotNil(t, body.Claim)
	assert.Equal(t, "clm_test123", body.Claim.SID)
	assert.Equal(t, "course", body.Claim.ContentType)
	assert.Equal(t, "2026-08", body.Claim.Period)
}

func TestClaimHandler_ClaimProduct_AlreadyClaimed(t *testing.T) {
	mockUC := &mockClaimProductUC{
		result: &usecases.ClaimProductResult{
			Success:        true,
			AlreadyClaimed: true,
			Claim:          createTestClaim(t),
		},
	}
	handler := newTestClaimHandler(mockUC, nil, nil)

	reqBody := ClaimProductRequest{ContentType: "course", ContentID: 42}
	c, w := testutil.NewTestContext(http.MethodPost, "/claims", reqBody)
	testutil.SetAuthContext(c, 7)

	handler.ClaimProduct(c)

	// idempotent replays are 200, not 201
	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var body ClaimProductResponse
	require.NoError(t, json.Unmarshal(resp.Data, &body))
	assert.True(t, body.AlreadyClaimed)
}

func TestClaimHandler_ClaimProduct_NeedsConfirmation(t *testing.T) {
	remaining := uint(1)
	mockUC := &mockClaimProductUC{
		result: &usecases.ClaimProductResult{
			NeedsConfirmation: true,
			Remaining:         &remaining,
		},
	}
	handler := newTestClaimHandler(mockUC, nil, nil)

	reqBody := ClaimProductRequest{ContentType: "workshop", ContentID: 5}
	c, w := testutil.NewTestContext(http.MethodPost, "/claims", reqBody)
	testutil.SetAuthContext(c, 7)

	handler.ClaimProduct(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var body ClaimProductResponse
	require.NoError(t, json.Unmarshal(resp.Data, &body))
	assert.False(t, body.Success)
	assert.True(t, body.NeedsConfirmation)
}

func TestClaimHandler_ClaimProduct_SkipConfirmationForwarded(t *testing.T) {
	mockUC := &mockClaimProductUC{
		result: &usecases.ClaimProductResult{Success: true, Claim: createTestClaim(t)},
	}
	handler := newTestClaimHandler(mockUC, nil, nil)

	reqBody := ClaimProductRequest{ContentType: "course", ContentID: 42, SkipConfirmation: true}
	c, w := testutil.NewTestContext(http.MethodPost, "/claims", reqBody)
	testutil.SetAuthContext(c, 7)

	handler.ClaimProduct(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, mockUC.gotCmd.SkipConfirmation)
}

func TestClaimHandler_ClaimProduct_InvalidRequest(t *testing.T) {
	handler := newTestClaimHandler(&mockClaimProductUC{}, nil, nil)

	reqBody := map[string]string{"content_type": "course"} // missing content_id
	c, w := testutil.NewTestContext(http.MethodPost, "/claims", reqBody)
	testutil.SetAuthContext(c, 7)

	handler.ClaimProduct(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClaimHandler_ClaimProduct_UnknownContentType(t *testing.T) {
	handler := newTestClaimHandler(&mockClaimProductUC{}, nil, nil)

	reqBody := map[string]interface{}{"content_type": "movie", "content_id": 42}
	c, w := testutil.NewTestContext(http.MethodPost, "/claims", reqBody)
	testutil.SetAuthContext(c, 7)

	handler.ClaimProduct(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClaimHandler_ClaimProduct_Unauthenticated(t *testing.T) {
	handler := newTestClaimHandler(&mockClaimProductUC{}, nil, nil)

	reqBody := ClaimProductRequest{ContentType: "course", ContentID: 42}
	c, w := testutil.NewTestContext(http.MethodPost, "/claims", reqBody)

	handler.ClaimProduct(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClaimHandler_ClaimProduct_UseCaseError(t *testing.T) {
	mockUC := &mockClaimProductUC{err: errors.NewNotFoundError("no active subscription")}
	handler := newTestClaimHandler(mockUC, nil, nil)

	reqBody := ClaimProductRequest{ContentType: "course", ContentID: 42}
	c, w := testutil.NewTestContext(http.MethodPost, "/claims", reqBody)
	testutil.SetAuthContext(c, 7)

	handler.ClaimProduct(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =====================================================================
// TestClaimHandler_CanClaim
// =====================================================================

func TestClaimHandler_CanClaim_Allowed(t *testing.T) {
	remaining := uint(3)
	mockUC := &mockCanClaimUC{
		result: &usecases.CanClaimResult{CanClaim: true, Remaining: &remaining},
	}
	handler := newTestClaimHandler(nil, mockUC, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/claims/can-claim/course/42", nil)
	testutil.SetAuthContext(c, 7)
	testutil.SetURLParam(c, "content_type", "course")
	testutil.SetURLParam(c, "content_id", "42")

	handler.CanClaim(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var body CanClaimResponse
	require.NoError(t, json.Unmarshal(resp.Data, &body))
	assert.True(t, body.CanClaim)
	require.NotNil(t, body.Remaining)
	assert.Equal(t, uint(3), *body.Remaining)
}

func TestClaimHandler_CanClaim_LimitReached(t *testing.T) {
	mockUC := &mockCanClaimUC{
		result: &usecases.CanClaimResult{CanClaim: false, Reason: "claim_limit_reached"},
	}
	handler := newTestClaimHandler(nil, mockUC, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/claims/can-claim/game/9", nil)
	testutil.SetAuthContext(c, 7)
	testutil.SetURLParam(c, "content_type", "game")
	testutil.SetURLParam(c, "content_id", "9")

	handler.CanClaim(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var body CanClaimResponse
	require.NoError(t, json.Unmarshal(resp.Data, &body))
	assert.False(t, body.CanClaim)
	assert.Equal(t, "claim_limit_reached", body.Reason)
}

func TestClaimHandler_CanClaim_InvalidContentType(t *testing.T) {
	handler := newTestClaimHandler(nil, &mockCanClaimUC{}, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/claims/can-claim/movie/9", nil)
	testutil.SetAuthContext(c, 7)
	testutil.SetURLParam(c, "content_type", "movie")
	testutil.SetURLParam(c, "content_id", "9")

	handler.CanClaim(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// TestClaimHandler_RevokeClaim
// =====================================================================

func TestClaimHandler_RevokeClaim_BySID(t *testing.T) {
	mockUC := &mockRevokeClaimUC{result: &usecases.RevokeClaimResult{RevokedCount: 3}}
	handler := newTestClaimHandler(nil, nil, mockUC)

	c, w := testutil.NewTestContext(http.MethodDelete, "/claims/clm_test123", nil)
	testutil.SetAuthContext(c, 7)
	testutil.SetURLParam(c, "id", "clm_test123")

	handler.RevokeClaim(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "clm_test123", mockUC.gotCmd.ClaimSID)
	assert.Zero(t, mockUC.gotCmd.ClaimID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var body RevokeClaimResponse
	require.NoError(t, json.Unmarshal(resp.Data, &body))
	assert.Equal(t, 3, body.RevokedCount)
}

func TestClaimHandler_RevokeClaim_ByNumericID(t *testing.T) {
	mockUC := &mockRevokeClaimUC{result: &usecases.RevokeClaimResult{RevokedCount: 1}}
	handler := newTestClaimHandler(nil, nil, mockUC)

	c, w := testutil.NewTestContext(http.MethodDelete, "/claims/10", nil)
	testutil.SetAuthContext(c, 7)
	testutil.SetURLParam(c, "id", "10")

	handler.RevokeClaim(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(10), mockUC.gotCmd.ClaimID)
	assert.Empty(t, mockUC.gotCmd.ClaimSID)
}

func TestClaimHandler_RevokeClaim_InvalidID(t *testing.T) {
	handler := newTestClaimHandler(nil, nil, &mockRevokeClaimUC{})

	c, w := testutil.NewTestContext(http.MethodDelete, "/claims/not-an-id", nil)
	testutil.SetAuthContext(c, 7)
	testutil.SetURLParam(c, "id", "not-an-id")

	handler.RevokeClaim(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClaimHandler_RevokeClaim_AlreadyRevoked(t *testing.T) {
	mockUC := &mockRevokeClaimUC{err: errors.NewAlreadyRevokedError("clm_test123")}
	handler := newTestClaimHandler(nil, nil, mockUC)

	c, w := testutil.NewTestContext(http.MethodDelete, "/claims/clm_test123", nil)
	testutil.SetAuthContext(c, 7)
	testutil.SetURLParam(c, "id", "clm_test123")

	handler.RevokeClaim(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
