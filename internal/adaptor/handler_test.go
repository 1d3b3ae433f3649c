package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"mobile-booking/internal/apperror"
	"mobile-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleServiceError_StatusByCode(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperror.ValidationField("email", "Invalid email format"), http.StatusBadRequest},
		{apperror.NotFound("booking", "x"), http.StatusNotFound},
		{apperror.SlotUnavailable("s1"), http.StatusConflict},
		{fmt.Errorf("wrapped: %w", apperror.TimeSlotUnavailable("2026-03-10", "10:00")), http.StatusConflict},
		{apperror.InvalidTransition("cannot move booking from completed to pending"), http.StatusUnprocessableEntity},
		{apperror.DependencyFailure("geocoder", errors.New("timeout")), http.StatusServiceUnavailable},
		{apperror.Internal(errors.New("db down")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		handleServiceError(rec, zap.NewNop(), tc.err, "test")
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
	}
}

func TestHandleServiceError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, zap.NewNop(), apperror.Internal(errors.New(`relation "bookings" does not exist`)), "create booking")

	var body utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Status)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, rec.Body.String(), "relation")
}

func TestHandleServiceError_ValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, zap.NewNop(), apperror.Validation(map[string]string{
		"vehicle.size":        "Must be one of: small medium large extra_large",
		"address.postal_code": "Must be a valid postal code",
	}), "create booking")

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Errors, 2)
}
