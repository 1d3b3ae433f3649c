package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mobile-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testJWT = utils.JWTConfig{Secret: "test-secret", Issuer: "mobile-booking"}

func protected(t *testing.T, roles ...string) (http.Handler, *uuid.UUID, *string) {
	t.Helper()
	var (
		gotID   uuid.UUID
		gotRole string
	)
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = utils.GetUserIDFromContext(r.Context())
		gotRole, _ = utils.GetRoleFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	var h http.Handler = final
	if len(roles) > 0 {
		h = RequireRole(zap.NewNop(), roles...)(h)
	}
	return Auth(testJWT, zap.NewNop())(h), &gotID, &gotRole
}

func call(h http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	token, err := SignToken(testJWT.Secret, testJWT.Issuer, userID, "customer", time.Hour)
	require.NoError(t, err)

	h, gotID, gotRole := protected(t)
	rec := call(h, "Bearer "+token)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, userID, *gotID)
	assert.Equal(t, "customer", *gotRole)
}

func TestAuth_Rejects(t *testing.T) {
	userID := uuid.New()
	expired, err := SignToken(testJWT.Secret, testJWT.Issuer, userID, "customer", -time.Minute)
	require.NoError(t, err)
	wrongSecret, err := SignToken("other", testJWT.Issuer, userID, "customer", time.Hour)
	require.NoError(t, err)
	wrongIssuer, err := SignToken(testJWT.Secret, "someone-else", userID, "customer", time.Hour)
	require.NoError(t, err)
	noRole, err := SignToken(testJWT.Secret, testJWT.Issuer, userID, "", time.Hour)
	require.NoError(t, err)

	h, _, _ := protected(t)
	for name, header := range map[string]string{
		"missing":      "",
		"not bearer":   "Basic abc",
		"garbage":      "Bearer not.a.jwt",
		"expired":      "Bearer " + expired,
		"wrong secret": "Bearer " + wrongSecret,
		"wrong issuer": "Bearer " + wrongIssuer,
		"no role":      "Bearer " + noRole,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, call(h, header).Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	h, _, _ := protected(t, "admin", "staff")

	staff, err := SignToken(testJWT.Secret, testJWT.Issuer, uuid.New(), "staff", time.Hour)
	require.NoError(t, err)
	customer, err := SignToken(testJWT.Secret, testJWT.Issuer, uuid.New(), "customer", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, call(h, "Bearer "+staff).Code)
	assert.Equal(t, http.StatusForbidden, call(h, "Bearer "+customer).Code)
}
