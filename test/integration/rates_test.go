package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"masseurmatch_backend/internal/appErrors"
	"masseurmatch_backend/internal/repositories"
	"masseurmatch_backend/internal/services"
	"masseurmatch_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateRate(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginTherapist(t, ts, tx)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/rates", token, map[string]interface{}{
		"context":          "incall",
		"duration_minutes": 60,
		"price_cents":      12000,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var rate struct {
		ID              string `json:"id"`
		Context         string `json:"context"`
		DurationMinutes int    `json:"duration_minutes"`
		PriceCents      int64  `json:"price_cents"`
		IsActive        bool   `json:"is_active"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &rate))
	assert.NotEmpty(t, rate.ID)
	assert.Equal(t, "incall", rate.Context)
	assert.True(t, rate.IsActive)

	res, body = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/rates", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, rate.ID)
}

func TestCreateRate_33PercentViolation(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginTherapist(t, ts, tx)

	// Base: 60 min at $120 = $2.00/min.
	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/rates", token, map[string]interface{}{
		"context":          "incall",
		"duration_minutes": 60,
		"price_cents":      12000,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	// 90 min at $270 = $3.00/min, above the $2.66/min ceiling.
	res, body = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/rates", token, map[string]interface{}{
		"context":          "incall",
		"duration_minutes": 90,
		"price_cents":      27000,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode, body)
	assert.Contains(t, body, "exceeds 33%")

	// A different context has its own base and is unconstrained.
	res, body = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/rates", token, map[string]interface{}{
		"context":          "outcall",
		"duration_minutes": 90,
		"price_cents":      27000,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)
}

func TestCreateRate_ShorterCandidateBecomesBase(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginTherapist(t, ts, tx)

	// Existing: 90 min at $270 = $3.00/min.
	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/rates", token, map[string]interface{}{
		"context":          "incall",
		"duration_minutes": 90,
		"price_cents":      27000,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	// Candidate 30 min at $60 = $2.00/min would make the existing rate's
	// $3.00/min exceed 133% of the new base.
	res, body = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/rates", token, map[string]interface{}{
		"context":          "incall",
		"duration_minutes": 30,
		"price_cents":      6000,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode, body)
	assert.Contains(t, body, "exceeds 33%")
}

func TestCreateRate_InvalidDuration(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginTherapist(t, ts, tx)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/rates", token, map[string]interface{}{
		"context":          "incall",
		"duration_minutes": 45,
		"price_cents":      9000,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode, body)
	assert.Contains(t, body, "Duration must be one of")
}

func TestCreateRate_ReplacesSameDuration(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginTherapist(t, ts, tx)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/rates", token, map[string]interface{}{
		"context":          "incall",
		"duration_minutes": 60,
		"price_cents":      12000,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/rates", token, map[string]interface{}{
		"context":          "incall",
		"duration_minutes": 60,
		"price_cents":      13000,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/rates", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var list struct {
		Items []struct {
			DurationMinutes int   `json:"duration_minutes"`
			PriceCents      int64 `json:"price_cents"`
			IsActive        bool  `json:"is_active"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &list))

	var active []int64
	for _, item := range list.Items {
		if item.IsActive {
			active = append(active, item.PriceCents)
		}
	}
	require.Len(t, active, 1, "old rate for the same slot should be deactivated")
	assert.Equal(t, int64(13000), active[0])
}

func TestDeactivateRate_NotOwned(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, _ := helpers.CreateAndLoginTherapist(t, ts, tx)
	otherToken, _ := helpers.CreateAndLoginTherapist(t, ts, tx)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/rates", ownerToken, map[string]interface{}{
		"context":          "incall",
		"duration_minutes": 60,
		"price_cents":      12000,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var rate struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &rate))

	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/rates/"+rate.ID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/rates/"+rate.ID, ownerToken, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
}

func TestCreateRate_ReplacingBaseIgnoresOutgoingRate(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginTherapist(t, ts, tx)

	for _, rate := range []map[string]interface{}{
		{"context": "incall", "duration_minutes": 30, "price_cents": 6000},
		{"context": "incall", "duration_minutes": 60, "price_cents": 10000},
	} {
		res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/rates", token, rate)
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
	}

	// Repricing the 30-minute slot is judged against the rates that stay
	// active, not against the row it replaces.
	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/rates", token, map[string]interface{}{
		"context":          "incall",
		"duration_minutes": 30,
		"price_cents":      12000,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
}

// publicationSyncStub fails the post-deactivation publication sync with a
// typed error so the propagated status code can be asserted.
type publicationSyncStub struct {
	services.OnboardingService
}

func (publicationSyncStub) SyncPublication(db *gorm.DB, userID string) error {
	return appErrors.ErrChecklistIncomplete
}

func TestDeactivateRatePreservesTypedErrors(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginTherapist(t, ts, tx)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/rates", token, map[string]interface{}{
		"context":          "incall",
		"duration_minutes": 60,
		"price_cents":      12000,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var rate struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &rate))

	svc := services.NewRateService(
		repositories.NewProfileRepository(),
		repositories.NewRateRepository(),
		publicationSyncStub{},
	)

	err := svc.DeactivateRate(tx, user.ID, rate.ID)
	var appErr *appErrors.AppError
	require.True(t, appErrors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrChecklistIncomplete.Code, appErr.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPCode)
}
