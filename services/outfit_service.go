package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/stylu-app/backend/models"
)

// PartialCreateError reports an outfit row that was written before its item
// batch failed, so the handler can tell the client which half succeeded.
type PartialCreateError struct {
	OutfitID int
	Cause    error
}

func (e *PartialCreateError) Error() string {
	return fmt.Sprintf("outfit %d created but item insert failed: %v", e.OutfitID, e.Cause)
}

func (e *PartialCreateError) Unwrap() error { return e.Cause }

type OutfitService struct {
	sb  *Supabase
	log *logrus.Logger
}

func NewOutfitService(sb *Supabase, log *logrus.Logger) *OutfitService {
	return &OutfitService{sb: sb, log: log}
}

// List returns the caller's outfits with embedded items in the raw
// downstream shape; the app consumes the table columns as-is.
func (s *OutfitService) List(ctx context.Context, token, userID string) (json.RawMessage, error) {
	var raw json.RawMessage
	err := s.sb.From("outfit").Auth(token).
		Select("*,outfit_item(item_id,layout_data,item(*))").
		Eq("user_id", userID).
		Get(ctx, &raw)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

type CreatedOutfit struct {
	OutfitID int             `json:"outfitId"`
	Data     json.RawMessage `json:"data"`
}

func (s *OutfitService) Create(ctx context.Context, token, userID string, req models.CreateOutfitRequest) (*CreatedOutfit, error) {
	payload := map[string]any{
		"user_id":     userID,
		"outfit_name": req.Name,
	}
	if req.Schedule != nil && *req.Schedule != "" {
		payload["schedule"] = *req.Schedule
	}

	var created []json.RawMessage
	if err := s.sb.From("outfit").Auth(token).Returning().Insert(ctx, payload, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("outfit insert returned no rows")
	}

	var idHolder struct {
		OutfitID int `json:"outfit_id"`
	}
	if err := json.Unmarshal(created[0], &idHolder); err != nil {
		return nil, err
	}
	out := &CreatedOutfit{OutfitID: idHolder.OutfitID, Data: created[0]}

	refs := req.Items
	if len(refs) == 0 && len(req.ItemIDs) > 0 {
		for _, itemID := range req.ItemIDs {
			refs = append(refs, models.ItemRef{ItemID: itemID})
		}
	}
	if len(refs) == 0 {
		return out, nil
	}

	if err := s.insertItems(ctx, token, out.OutfitID, refs); err != nil {
		return out, &PartialCreateError{OutfitID: out.OutfitID, Cause: err}
	}
	s.log.WithField("outfit_id", out.OutfitID).
		WithField("item_count", len(refs)).
		Info("outfit created")
	return out, nil
}

func (s *OutfitService) Update(ctx context.Context, token, userID string, outfitID int, req models.UpdateOutfitRequest) error {
	patch := map[string]any{"outfit_name": req.Name}
	err := s.sb.From("outfit").Auth(token).
		Eq("outfit_id", strconv.Itoa(outfitID)).
		Eq("user_id", userID).
		Patch(ctx, patch)
	if err != nil {
		return err
	}

	// replace the item set wholesale
	err = s.sb.From("outfit_item").Auth(token).
		Eq("outfit_id", strconv.Itoa(outfitID)).
		Delete(ctx)
	if err != nil {
		s.log.WithField("outfit_id", outfitID).WithError(err).Warn("failed to clear outfit items before rewrite")
	}

	if len(req.Items) == 0 {
		return nil
	}
	return s.insertItems(ctx, token, outfitID, req.Items)
}

// Items returns the raw outfit_item rows with their embedded item details.
func (s *OutfitService) Items(ctx context.Context, token string, outfitID int) (json.RawMessage, error) {
	var raw json.RawMessage
	err := s.sb.From("outfit_item").Auth(token).
		Select("*,item(*)").
		Eq("outfit_id", strconv.Itoa(outfitID)).
		Get(ctx, &raw)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *OutfitService) Delete(ctx context.Context, token, userID string, outfitID int) error {
	return s.sb.From("outfit").Auth(token).
		Eq("outfit_id", strconv.Itoa(outfitID)).
		Eq("user_id", userID).
		Delete(ctx)
}

func (s *OutfitService) insertItems(ctx context.Context, token string, outfitID int, refs []models.ItemRef) error {
	rows := make([]models.OutfitItemInsert, 0, len(refs))
	for _, ref := range refs {
		rows = append(rows, models.OutfitItemInsert{
			OutfitID:   outfitID,
			ItemID:     ref.ItemID,
			LayoutData: ref.Layout,
		})
	}
	return s.sb.From("outfit_item").Auth(token).Insert(ctx, rows, nil)
}
