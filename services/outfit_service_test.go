package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylu-app/backend/models"
)

func newTestOutfitService() *OutfitService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewOutfitService(NewSupabase(testProjectURL, "anon-key", "service-key"), log)
}

func decodeItems(t *testing.T, refs string) []models.ItemRef {
	t.Helper()
	var out []models.ItemRef
	require.NoError(t, json.Unmarshal([]byte(refs), &out))
	return out
}

func TestCreate_BareIDsPersistWithoutLayout(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", `=~^https://project\.supabase\.test/rest/v1/outfit$`,
		httpmock.NewStringResponder(http.StatusCreated, `[{"outfit_id":7,"outfit_name":"Friday","user_id":"u1"}]`))

	var itemRows []map[string]any
	httpmock.RegisterResponder("POST", `=~^https://project\.supabase\.test/rest/v1/outfit_item`,
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&itemRows))
			return httpmock.NewStringResponse(http.StatusCreated, ``), nil
		})

	created, err := newTestOutfitService().Create(context.Background(), "tok", "u1", models.CreateOutfitRequest{
		Name:  "Friday",
		Items: decodeItems(t, `[52, 54, 65]`),
	})

	require.NoError(t, err)
	assert.Equal(t, 7, created.OutfitID)
	require.Len(t, itemRows, 3)
	for i, wantID := range []float64{52, 54, 65} {
		assert.Equal(t, float64(7), itemRows[i]["outfit_id"])
		assert.Equal(t, wantID, itemRows[i]["item_id"])
		assert.NotContains(t, itemRows[i], "layout_data")
	}
}

func TestCreate_LayoutObjectsPersistLayout(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", `=~^https://project\.supabase\.test/rest/v1/outfit$`,
		httpmock.NewStringResponder(http.StatusCreated, `[{"outfit_id":8}]`))

	var itemRows []map[string]any
	httpmock.RegisterResponder("POST", `=~^https://project\.supabase\.test/rest/v1/outfit_item`,
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&itemRows))
			return httpmock.NewStringResponse(http.StatusCreated, ``), nil
		})

	created, err := newTestOutfitService().Create(context.Background(), "tok", "u1", models.CreateOutfitRequest{
		Name:  "Canvas",
		Items: decodeItems(t, `[{"itemId":52,"x":1,"y":2,"scale":1,"width":100,"height":100}]`),
	})

	require.NoError(t, err)
	assert.Equal(t, 8, created.OutfitID)
	require.Len(t, itemRows, 1)
	layout, ok := itemRows[0]["layout_data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), layout["x"])
	assert.Equal(t, float64(2), layout["y"])
}

func TestCreate_LegacyItemIDsField(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", `=~^https://project\.supabase\.test/rest/v1/outfit$`,
		httpmock.NewStringResponder(http.StatusCreated, `[{"outfit_id":9}]`))

	var itemRows []map[string]any
	httpmock.RegisterResponder("POST", `=~^https://project\.supabase\.test/rest/v1/outfit_item`,
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&itemRows))
			return httpmock.NewStringResponse(http.StatusCreated, ``), nil
		})

	_, err := newTestOutfitService().Create(context.Background(), "tok", "u1", models.CreateOutfitRequest{
		Name:    "Legacy",
		ItemIDs: []int{1, 2},
	})

	require.NoError(t, err)
	require.Len(t, itemRows, 2)
	assert.NotContains(t, itemRows[0], "layout_data")
}

func TestCreate_EmptyItemListSkipsBatch(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", `=~^https://project\.supabase\.test/rest/v1/outfit$`,
		httpmock.NewStringResponder(http.StatusCreated, `[{"outfit_id":10}]`))

	batchCalls := 0
	httpmock.RegisterResponder("POST", `=~^https://project\.supabase\.test/rest/v1/outfit_item`,
		func(_ *http.Request) (*http.Response, error) {
			batchCalls++
			return httpmock.NewStringResponse(http.StatusCreated, ``), nil
		})

	created, err := newTestOutfitService().Create(context.Background(), "tok", "u1", models.CreateOutfitRequest{
		Name:  "Empty",
		Items: decodeItems(t, `[]`),
	})

	require.NoError(t, err)
	assert.Equal(t, 10, created.OutfitID)
	assert.Zero(t, batchCalls)
}

func TestCreate_ItemBatchFailureIsPartial(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", `=~^https://project\.supabase\.test/rest/v1/outfit$`,
		httpmock.NewStringResponder(http.StatusCreated, `[{"outfit_id":11}]`))
	httpmock.RegisterResponder("POST", `=~^https://project\.supabase\.test/rest/v1/outfit_item`,
		httpmock.NewStringResponder(http.StatusConflict, `{"message":"duplicate key"}`))

	created, err := newTestOutfitService().Create(context.Background(), "tok", "u1", models.CreateOutfitRequest{
		Name:  "Half",
		Items: decodeItems(t, `[52]`),
	})

	var partial *PartialCreateError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, 11, partial.OutfitID)
	require.NotNil(t, created)
	assert.Equal(t, 11, created.OutfitID)

	var sbErr *SupabaseError
	require.ErrorAs(t, partial.Cause, &sbErr)
	assert.Equal(t, http.StatusConflict, sbErr.Status)
}

func TestUpdate_ReplacesItemSet(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("PATCH", `=~^https://project\.supabase\.test/rest/v1/outfit\b`,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "eq.5", req.URL.Query().Get("outfit_id"))
			assert.Equal(t, "eq.u1", req.URL.Query().Get("user_id"))
			return httpmock.NewStringResponse(http.StatusNoContent, ``), nil
		})

	deleteCalls := 0
	httpmock.RegisterResponder("DELETE", `=~^https://project\.supabase\.test/rest/v1/outfit_item`,
		func(req *http.Request) (*http.Response, error) {
			deleteCalls++
			assert.Equal(t, "eq.5", req.URL.Query().Get("outfit_id"))
			return httpmock.NewStringResponse(http.StatusNoContent, ``), nil
		})

	var itemRows []map[string]any
	httpmock.RegisterResponder("POST", `=~^https://project\.supabase\.test/rest/v1/outfit_item`,
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&itemRows))
			return httpmock.NewStringResponse(http.StatusCreated, ``), nil
		})

	err := newTestOutfitService().Update(context.Background(), "tok", "u1", 5, models.UpdateOutfitRequest{
		Name:  "Renamed",
		Items: decodeItems(t, `[{"itemId":52,"x":0,"y":0,"scale":1,"width":100,"height":100}]`),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, deleteCalls)
	require.Len(t, itemRows, 1)
	assert.Equal(t, float64(52), itemRows[0]["item_id"])
}
