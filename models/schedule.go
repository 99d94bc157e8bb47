package models

// ScheduleRow mirrors a row of the outfit_schedule table.
type ScheduleRow struct {
	ScheduleID int     `json:"schedule_id"`
	UserID     string  `json:"user_id"`
	OutfitID   int     `json:"outfit_id"`
	EventDate  string  `json:"event_date"`
	EventName  *string `json:"event_name"`
	Notes      *string `json:"notes"`
}

type ScheduleRequest struct {
	OutfitID  int     `json:"outfitId" binding:"required"`
	EventDate string  `json:"eventDate" binding:"required"`
	EventName *string `json:"eventName"`
	Notes     *string `json:"notes"`
}

// ScheduleUpdateRequest patches a schedule; nil fields are left untouched.
type ScheduleUpdateRequest struct {
	OutfitID  *int    `json:"outfitId"`
	EventDate *string `json:"eventDate"`
	EventName *string `json:"eventName"`
	Notes     *string `json:"notes"`
}

// Schedule is the app-facing shape of a written schedule row.
type Schedule struct {
	ScheduleID int     `json:"scheduleId"`
	UserID     string  `json:"userId"`
	OutfitID   int     `json:"outfitId"`
	EventDate  string  `json:"eventDate"`
	EventName  *string `json:"eventName"`
	Notes      *string `json:"notes"`
}

// ScheduledOutfit is one entry of the calendar listing. Weather is reserved
// for an integration that never shipped and is always null.
type ScheduledOutfit struct {
	ScheduleID int          `json:"scheduleId"`
	EventDate  string       `json:"eventDate"`
	Outfit     OutfitDetail `json:"outfit"`
	EventName  *string      `json:"eventName"`
	Notes      *string      `json:"notes"`
	Weather    any          `json:"weather"`
}

// CalendarListing pairs the enriched schedules with the ids of schedules
// whose outfit could not be resolved, so the client decides how to render
// the gap instead of the row vanishing.
type CalendarListing struct {
	Schedules           []ScheduledOutfit `json:"schedules"`
	OrphanedScheduleIDs []int             `json:"orphanedScheduleIds"`
}

// ScheduleDebug is the payload of the check-schedules debug endpoint.
type ScheduleDebug struct {
	UserID            string        `json:"userId"`
	TotalCount        int           `json:"totalCount"`
	AllSchedules      []ScheduleRow `json:"allSchedules"`
	QueriedStartDate  string        `json:"queriedStartDate"`
	QueriedEndDate    string        `json:"queriedEndDate"`
	FilteredCount     *int          `json:"filteredCount,omitempty"`
	FilteredSchedules []ScheduleRow `json:"filteredSchedules,omitempty"`
}
