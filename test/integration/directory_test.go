package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"masseurmatch_backend/internal/models"
	"masseurmatch_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectorySearch(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, liveUser := helpers.CreateAndLoginTherapist(t, ts, tx)
	live := helpers.MakeLive(t, tx, liveUser)

	// A profile that never went public must stay invisible.
	_, draftUser := helpers.CreateAndLoginTherapist(t, ts, tx)
	draft := helpers.MakeSubmittable(t, tx, draftUser)

	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/directory/therapists?city=austin", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, live.Slug)
	assert.NotContains(t, body, draft.Slug)

	var page struct {
		Items []map[string]interface{} `json:"items"`
		Total int64                    `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &page))
	require.NotEmpty(t, page.Items)

	// Cards never expose onboarding internals.
	for _, item := range page.Items {
		assert.NotContains(t, item, "onboarding_stage")
		assert.NotContains(t, item, "profile_views")
	}
}

func TestDirectorySearchFilters(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginTherapist(t, ts, tx)
	live := helpers.MakeLive(t, tx, user)

	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/directory/therapists?language=english&incall=true", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, live.Slug)

	res, body = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/directory/therapists?language=german", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.NotContains(t, body, live.Slug)
}

func TestDirectoryGetBySlug(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginTherapist(t, ts, tx)
	live := helpers.MakeLive(t, tx, user)

	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/directory/therapists/"+live.Slug, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, live.DisplayName)

	// The detail view carries active rates and approved photos.
	var detail struct {
		Rates []struct {
			PriceCents int64 `json:"price_cents"`
		} `json:"rates"`
		Photos []struct {
			Status string `json:"status"`
		} `json:"photos"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &detail))
	require.Len(t, detail.Rates, 1)
	assert.Equal(t, int64(12000), detail.Rates[0].PriceCents)
	require.Len(t, detail.Photos, 1)
	assert.Equal(t, "approved", detail.Photos[0].Status)

	// Each public view bumps the counter.
	var profile models.Profile
	require.NoError(t, tx.First(&profile, "id = ?", live.ID).Error)
	assert.Equal(t, 1, profile.ProfileViews)
}

func TestDirectoryGetBySlugHidesPrivateProfiles(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginTherapist(t, ts, tx)
	draft := helpers.MakeSubmittable(t, tx, user)

	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/directory/therapists/"+draft.Slug, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/directory/therapists/no-such-slug", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
