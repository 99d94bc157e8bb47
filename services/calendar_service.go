package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/stylu-app/backend/models"
)

const scheduleColumns = "schedule_id,user_id,outfit_id,event_date,event_name,notes"

// outfitDetailColumns embeds each outfit's items, their item rows and the
// resolved subcategory name in a single query.
const outfitDetailColumns = "outfit_id,outfit_name,category," +
	"outfit_item(item_id,layout_data," +
	"item:item_id(item_id,item_name,image_url,colour,sub_category:subcategory_id(name)))"

type CalendarService struct {
	sb  *Supabase
	log *logrus.Logger
}

func NewCalendarService(sb *Supabase, log *logrus.Logger) *CalendarService {
	return &CalendarService{sb: sb, log: log}
}

func (s *CalendarService) Schedule(ctx context.Context, token, userID string, req models.ScheduleRequest) (*models.Schedule, error) {
	payload := map[string]any{
		"user_id":    userID,
		"outfit_id":  req.OutfitID,
		"event_date": req.EventDate,
		"event_name": req.EventName,
		"notes":      req.Notes,
	}

	var created []models.ScheduleRow
	if err := s.sb.From("outfit_schedule").Auth(token).Returning().Insert(ctx, payload, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("schedule insert returned no rows")
	}

	row := created[0]
	return &models.Schedule{
		ScheduleID: row.ScheduleID,
		UserID:     row.UserID,
		OutfitID:   row.OutfitID,
		EventDate:  row.EventDate,
		EventName:  row.EventName,
		Notes:      row.Notes,
	}, nil
}

// ScheduledOutfits lists the caller's schedules inside [startDate, endDate]
// ascending by event date, each enriched with its full outfit. Schedules
// whose outfit is gone (or whose outfit query failed) are reported in the
// orphan list instead of being dropped.
func (s *CalendarService) ScheduledOutfits(ctx context.Context, token, userID, startDate, endDate string) (*models.CalendarListing, error) {
	var rows []models.ScheduleRow
	err := s.sb.From("outfit_schedule").Auth(token).
		Select(scheduleColumns).
		Eq("user_id", userID).
		Gte("event_date", startDate).
		Lte("event_date", endDate).
		OrderAsc("event_date").
		Get(ctx, &rows)
	if err != nil {
		return nil, err
	}

	listing := &models.CalendarListing{
		Schedules:           []models.ScheduledOutfit{},
		OrphanedScheduleIDs: []int{},
	}
	for _, row := range rows {
		detail, err := s.outfitDetail(ctx, token, userID, row.OutfitID)
		if err != nil {
			s.log.WithField("schedule_id", row.ScheduleID).
				WithField("outfit_id", row.OutfitID).
				WithError(err).
				Warn("outfit lookup failed, schedule reported as orphaned")
			listing.OrphanedScheduleIDs = append(listing.OrphanedScheduleIDs, row.ScheduleID)
			continue
		}
		if detail == nil {
			listing.OrphanedScheduleIDs = append(listing.OrphanedScheduleIDs, row.ScheduleID)
			continue
		}
		listing.Schedules = append(listing.Schedules, models.ScheduledOutfit{
			ScheduleID: row.ScheduleID,
			EventDate:  row.EventDate,
			Outfit:     *detail,
			EventName:  row.EventName,
			Notes:      row.Notes,
		})
	}
	return listing, nil
}

// outfitDetail returns nil with no error when the outfit does not exist for
// this user.
func (s *CalendarService) outfitDetail(ctx context.Context, token, userID string, outfitID int) (*models.OutfitDetail, error) {
	var rows []models.OutfitRow
	err := s.sb.From("outfit").Auth(token).
		Select(outfitDetailColumns).
		Eq("outfit_id", strconv.Itoa(outfitID)).
		Eq("user_id", userID).
		Get(ctx, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	detail := &models.OutfitDetail{
		OutfitID: row.OutfitID,
		Name:     row.OutfitName,
		Category: row.Category,
		Items:    []models.OutfitItem{},
	}
	for _, entry := range row.Items {
		if entry.Item == nil {
			continue
		}
		subcategory := ""
		if entry.Item.SubCategory != nil {
			subcategory = entry.Item.SubCategory.Name
		}
		detail.Items = append(detail.Items, models.OutfitItem{
			ItemID:      entry.Item.ItemID,
			Name:        entry.Item.ItemName,
			ImageURL:    entry.Item.ImageURL,
			Colour:      entry.Item.Colour,
			Subcategory: subcategory,
			LayoutData:  entry.LayoutData,
		})
	}
	return detail, nil
}

func (s *CalendarService) UpdateSchedule(ctx context.Context, token, userID string, scheduleID int, req models.ScheduleUpdateRequest) error {
	patch := map[string]any{}
	if req.EventDate != nil {
		patch["event_date"] = *req.EventDate
	}
	if req.EventName != nil {
		patch["event_name"] = *req.EventName
	}
	if req.Notes != nil {
		patch["notes"] = *req.Notes
	}
	if req.OutfitID != nil {
		patch["outfit_id"] = *req.OutfitID
	}
	if len(patch) == 0 {
		return nil
	}
	return s.sb.From("outfit_schedule").Auth(token).
		Eq("schedule_id", strconv.Itoa(scheduleID)).
		Eq("user_id", userID).
		Patch(ctx, patch)
}

func (s *CalendarService) DeleteSchedule(ctx context.Context, token, userID string, scheduleID int) error {
	return s.sb.From("outfit_schedule").Auth(token).
		Eq("schedule_id", strconv.Itoa(scheduleID)).
		Eq("user_id", userID).
		Delete(ctx)
}

// CheckSchedules dumps every schedule for the user and, when both dates are
// given, the range-filtered view next to it. Exists so client developers
// can diagnose off-by-one date range bugs against production data.
func (s *CalendarService) CheckSchedules(ctx context.Context, token, userID, startDate, endDate string) (*models.ScheduleDebug, error) {
	var all []models.ScheduleRow
	err := s.sb.From("outfit_schedule").Auth(token).
		Select(scheduleColumns).
		Eq("user_id", userID).
		OrderAsc("event_date").
		Get(ctx, &all)
	if err != nil {
		return nil, err
	}

	debug := &models.ScheduleDebug{
		UserID:           userID,
		TotalCount:       len(all),
		AllSchedules:     all,
		QueriedStartDate: orNotSpecified(startDate),
		QueriedEndDate:   orNotSpecified(endDate),
	}

	if startDate != "" && endDate != "" {
		var filtered []models.ScheduleRow
		err := s.sb.From("outfit_schedule").Auth(token).
			Select(scheduleColumns).
			Eq("user_id", userID).
			Gte("event_date", startDate).
			Lte("event_date", endDate).
			OrderAsc("event_date").
			Get(ctx, &filtered)
		if err != nil {
			return nil, err
		}
		count := len(filtered)
		debug.FilteredCount = &count
		debug.FilteredSchedules = filtered
	}
	return debug, nil
}

func orNotSpecified(s string) string {
	if s == "" {
		return "not specified"
	}
	return s
}
