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

func newTestCalendarService() *CalendarService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewCalendarService(NewSupabase(testProjectURL, "anon-key", "service-key"), log)
}

func TestScheduledOutfits_EnrichesAndOrders(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://project\.supabase\.test/rest/v1/outfit_schedule`,
		func(req *http.Request) (*http.Response, error) {
			query := req.URL.Query()
			assert.Equal(t, "eq.user-1", query.Get("user_id"))
			assert.Equal(t, []string{"gte.2024-01-01", "lte.2024-01-31"}, query["event_date"])
			assert.Equal(t, "event_date.asc", query.Get("order"))
			return httpmock.NewStringResponse(http.StatusOK, `[
				{"schedule_id":1,"user_id":"user-1","outfit_id":10,"event_date":"2024-01-05","event_name":"party","notes":null},
				{"schedule_id":2,"user_id":"user-1","outfit_id":11,"event_date":"2024-01-20","event_name":null,"notes":"tbd"}
			]`), nil
		})

	httpmock.RegisterResponder("GET", `=~^https://project\.supabase\.test/rest/v1/outfit\b`,
		func(req *http.Request) (*http.Response, error) {
			switch req.URL.Query().Get("outfit_id") {
			case "eq.10":
				return httpmock.NewStringResponse(http.StatusOK, `[{
					"outfit_id":10,"outfit_name":"Friday","category":"casual",
					"outfit_item":[
						{"item_id":52,"layout_data":{"x":5},"item":{"item_id":52,"item_name":"Shirt","image_url":"http://img/52","colour":"blue","sub_category":{"name":"Shirts"}}},
						{"item_id":54,"layout_data":null,"item":{"item_id":54,"item_name":"Jeans","image_url":"http://img/54","colour":null,"sub_category":null}},
						{"item_id":60,"layout_data":null,"item":null}
					]
				}]`), nil
			case "eq.11":
				// outfit deleted after being scheduled
				return httpmock.NewStringResponse(http.StatusOK, `[]`), nil
			}
			return httpmock.NewStringResponse(http.StatusNotFound, `[]`), nil
		})

	listing, err := newTestCalendarService().ScheduledOutfits(context.Background(), "tok", "user-1", "2024-01-01", "2024-01-31")

	require.NoError(t, err)
	require.Len(t, listing.Schedules, 1)
	assert.Equal(t, []int{2}, listing.OrphanedScheduleIDs)

	entry := listing.Schedules[0]
	assert.Equal(t, 1, entry.ScheduleID)
	assert.Equal(t, "2024-01-05", entry.EventDate)
	require.NotNil(t, entry.EventName)
	assert.Equal(t, "party", *entry.EventName)
	assert.Nil(t, entry.Weather)

	assert.Equal(t, 10, entry.Outfit.OutfitID)
	assert.Equal(t, "Friday", entry.Outfit.Name)
	assert.Equal(t, "casual", entry.Outfit.Category)
	// the item row with a null embedded item is skipped
	require.Len(t, entry.Outfit.Items, 2)

	shirt := entry.Outfit.Items[0]
	assert.Equal(t, "Shirts", shirt.Subcategory)
	require.NotNil(t, shirt.LayoutData)
	assert.Equal(t, models.Layout{X: 5, Y: 0, Scale: 1.0, Width: 100, Height: 100}, *shirt.LayoutData)

	jeans := entry.Outfit.Items[1]
	assert.Empty(t, jeans.Subcategory)
	assert.Nil(t, jeans.LayoutData)
}

func TestScheduledOutfits_OutfitQueryFailureIsIsolated(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://project\.supabase\.test/rest/v1/outfit_schedule`,
		httpmock.NewStringResponder(http.StatusOK,
			`[{"schedule_id":3,"user_id":"user-1","outfit_id":12,"event_date":"2024-02-01","event_name":null,"notes":null}]`))
	httpmock.RegisterResponder("GET", `=~^https://project\.supabase\.test/rest/v1/outfit\b`,
		httpmock.NewStringResponder(http.StatusInternalServerError, `{"message":"boom"}`))

	listing, err := newTestCalendarService().ScheduledOutfits(context.Background(), "tok", "user-1", "2024-02-01", "2024-02-28")

	require.NoError(t, err)
	assert.Empty(t, listing.Schedules)
	assert.Equal(t, []int{3}, listing.OrphanedScheduleIDs)
}

func TestScheduledOutfits_ScheduleQueryFailureIsTerminal(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://project\.supabase\.test/rest/v1/outfit_schedule`,
		httpmock.NewStringResponder(http.StatusUnauthorized, `{"message":"JWT expired"}`))

	listing, err := newTestCalendarService().ScheduledOutfits(context.Background(), "tok", "user-1", "2024-01-01", "2024-01-31")

	require.Nil(t, listing)
	var sbErr *SupabaseError
	require.ErrorAs(t, err, &sbErr)
	assert.Equal(t, http.StatusUnauthorized, sbErr.Status)
	assert.Equal(t, `{"message":"JWT expired"}`, sbErr.Body)
}

func TestSchedule_CreatesAndReshapes(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", `=~^https://project\.supabase\.test/rest/v1/outfit_schedule`,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "return=representation", req.Header.Get("Prefer"))
			return httpmock.NewStringResponse(http.StatusCreated,
				`[{"schedule_id":42,"user_id":"user-1","outfit_id":10,"event_date":"2024-03-01","event_name":"gala","notes":null}]`), nil
		})

	name := "gala"
	created, err := newTestCalendarService().Schedule(context.Background(), "tok", "user-1", models.ScheduleRequest{
		OutfitID:  10,
		EventDate: "2024-03-01",
		EventName: &name,
	})

	require.NoError(t, err)
	assert.Equal(t, 42, created.ScheduleID)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, 10, created.OutfitID)
	assert.Equal(t, "2024-03-01", created.EventDate)
	require.NotNil(t, created.EventName)
	assert.Equal(t, "gala", *created.EventName)
	assert.Nil(t, created.Notes)
}

func TestUpdateSchedule_OnlySuppliedFields(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	var patched map[string]any
	httpmock.RegisterResponder("PATCH", `=~^https://project\.supabase\.test/rest/v1/outfit_schedule`,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "eq.5", req.URL.Query().Get("schedule_id"))
			assert.Equal(t, "eq.user-1", req.URL.Query().Get("user_id"))
			require.NoError(t, json.NewDecoder(req.Body).Decode(&patched))
			return httpmock.NewStringResponse(http.StatusNoContent, ``), nil
		})

	notes := "bring umbrella"
	err := newTestCalendarService().UpdateSchedule(context.Background(), "tok", "user-1", 5,
		models.ScheduleUpdateRequest{Notes: &notes})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"notes": "bring umbrella"}, patched)
}
