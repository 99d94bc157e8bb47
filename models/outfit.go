package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Layout is the visual placement of an item on the outfit canvas. Decoding
// fills missing sub-fields with the canvas defaults, so an empty object
// decodes to the default placement and a complete one round-trips unchanged.
type Layout struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Scale  float64 `json:"scale"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
}

// DefaultLayout is the placement used when a client supplies none.
func DefaultLayout() Layout {
	return Layout{X: 0, Y: 0, Scale: 1.0, Width: 100, Height: 100}
}

func (l *Layout) UnmarshalJSON(data []byte) error {
	var raw struct {
		X      *float64 `json:"x"`
		Y      *float64 `json:"y"`
		Scale  *float64 `json:"scale"`
		Width  *int     `json:"width"`
		Height *int     `json:"height"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = DefaultLayout()
	if raw.X != nil {
		l.X = *raw.X
	}
	if raw.Y != nil {
		l.Y = *raw.Y
	}
	if raw.Scale != nil {
		l.Scale = *raw.Scale
	}
	if raw.Width != nil {
		l.Width = *raw.Width
	}
	if raw.Height != nil {
		l.Height = *raw.Height
	}
	return nil
}

// ItemRef is one element of a create/update item list. Current clients send
// an object carrying itemId and either a nested layout or the flattened
// x/y/scale/width/height fields; the legacy Android client sends the bare
// item id as a number. Both decode here, at the contract boundary.
type ItemRef struct {
	ItemID int
	Layout *Layout
}

func (r *ItemRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return errors.New("item entry must be an item id or an object")
	}
	if trimmed[0] != '{' {
		// legacy shape: bare item id, no layout
		r.Layout = nil
		if err := json.Unmarshal(trimmed, &r.ItemID); err != nil {
			return err
		}
		if r.ItemID <= 0 {
			return errors.New("item id must be a positive number")
		}
		return nil
	}

	var obj struct {
		ItemID int      `json:"itemId"`
		Layout *Layout  `json:"layout"`
		X      *float64 `json:"x"`
		Y      *float64 `json:"y"`
		Scale  *float64 `json:"scale"`
		Width  *int     `json:"width"`
		Height *int     `json:"height"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return err
	}
	if obj.ItemID <= 0 {
		return errors.New("itemId is required and must be positive")
	}
	r.ItemID = obj.ItemID
	switch {
	case obj.Layout != nil:
		r.Layout = obj.Layout
	case obj.X != nil || obj.Y != nil || obj.Scale != nil || obj.Width != nil || obj.Height != nil:
		layout := DefaultLayout()
		if obj.X != nil {
			layout.X = *obj.X
		}
		if obj.Y != nil {
			layout.Y = *obj.Y
		}
		if obj.Scale != nil {
			layout.Scale = *obj.Scale
		}
		if obj.Width != nil {
			layout.Width = *obj.Width
		}
		if obj.Height != nil {
			layout.Height = *obj.Height
		}
		r.Layout = &layout
	default:
		r.Layout = nil
	}
	return nil
}

type CreateOutfitRequest struct {
	Name     string    `json:"name" binding:"required"`
	Schedule *string   `json:"schedule"`
	Items    []ItemRef `json:"items"`
	// ItemIDs is what the legacy Android client sends instead of Items.
	ItemIDs []int `json:"itemIds"`
}

type UpdateOutfitRequest struct {
	Name  string    `json:"name" binding:"required"`
	Items []ItemRef `json:"items"`
}

// OutfitItemInsert is the outfit_item row written on create/update. Rows
// from the legacy id-only path carry no layout_data at all.
type OutfitItemInsert struct {
	OutfitID   int     `json:"outfit_id"`
	ItemID     int     `json:"item_id"`
	LayoutData *Layout `json:"layout_data,omitempty"`
}

// OutfitRow mirrors the nested outfit embed used by the calendar listing.
type OutfitRow struct {
	OutfitID   int             `json:"outfit_id"`
	OutfitName string          `json:"outfit_name"`
	Category   string          `json:"category"`
	Items      []OutfitItemRow `json:"outfit_item"`
}

type OutfitItemRow struct {
	ItemID     int      `json:"item_id"`
	LayoutData *Layout  `json:"layout_data"`
	Item       *ItemRow `json:"item"`
}

type ItemRow struct {
	ItemID      int     `json:"item_id"`
	ItemName    string  `json:"item_name"`
	ImageURL    string  `json:"image_url"`
	Colour      *string `json:"colour"`
	SubCategory *struct {
		Name string `json:"name"`
	} `json:"sub_category"`
}

// OutfitDetail is the app-facing outfit inside a calendar entry.
type OutfitDetail struct {
	OutfitID int          `json:"outfitId"`
	Name     string       `json:"name"`
	Category string       `json:"category"`
	Items    []OutfitItem `json:"items"`
}

type OutfitItem struct {
	ItemID      int     `json:"itemId"`
	Name        string  `json:"name"`
	ImageURL    string  `json:"imageUrl"`
	Colour      *string `json:"colour"`
	Subcategory string  `json:"subcategory"`
	LayoutData  *Layout `json:"layoutData"`
}
