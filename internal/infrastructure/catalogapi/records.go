package catalogapi

import (
	"encoding/json"
	"strings"

	"github.com/collection-point-service/internal/domain"
	"github.com/collection-point-service/internal/pkg/validator"
)

// categoryWire accepts both the documented field names and the legacy
// ones ("titulo", "image_url") still served by older backends.
type categoryWire struct {
	ID       *int64  `json:"id"`
	Label    *string `json:"label"`
	Title    *string `json:"title"`
	Titulo   *string `json:"titulo"`
	IconRef  *string `json:"iconRef"`
	ImageURL *string `json:"image_url"`
}

type categoryRecord struct {
	ID      *int64 `validate:"required,gt=0"`
	Label   string `validate:"required"`
	IconRef string
}

type pointWire struct {
	ID        *int64   `json:"id"`
	Name      *string  `json:"name"`
	ImageRef  *string  `json:"imageRef"`
	Image     *string  `json:"image"`
	ImageURL  *string  `json:"image_url"`
	Latitude  *float64 `json:"latitude"`
	Lattitude *float64 `json:"lattitude"`
	Longitude *float64 `json:"longitude"`
	Email     *string  `json:"email"`
	WhatsApp  *string  `json:"whatsapp"`
	City      *string  `json:"city"`
	UF        *string  `json:"uf"`
	Region    *string  `json:"region"`
	Address   *string  `json:"address"`
}

type pointRecord struct {
	ID        *int64 `validate:"required,gt=0"`
	Name      string `validate:"required"`
	ImageRef  string
	Latitude  *float64 `validate:"required,latitude"`
	Longitude *float64 `validate:"required,longitude"`
}

type detailWire struct {
	Point *json.RawMessage `json:"point"`
	Items []struct {
		Title  *string `json:"title"`
		Label  *string `json:"label"`
		Titulo *string `json:"titulo"`
	} `json:"items"`
}

func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if v != nil {
			if s := strings.TrimSpace(*v); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstFloat(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// decodeCategory returns false for records that fail the boundary checks.
func decodeCategory(raw json.RawMessage) (domain.Category, bool) {
	var w categoryWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.Category{}, false
	}

	rec := categoryRecord{
		ID:      w.ID,
		Label:   firstNonEmpty(w.Label, w.Title, w.Titulo),
		IconRef: firstNonEmpty(w.IconRef, w.ImageURL),
	}
	if err := validator.Validate(&rec); err != nil {
		return domain.Category{}, false
	}

	return domain.Category{
		ID:      *rec.ID,
		Label:   rec.Label,
		IconRef: rec.IconRef,
	}, true
}

func decodePoint(raw json.RawMessage) (pointWire, domain.Point, bool) {
	var w pointWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return w, domain.Point{}, false
	}

	rec := pointRecord{
		ID:        w.ID,
		Name:      firstNonEmpty(w.Name),
		ImageRef:  firstNonEmpty(w.ImageRef, w.Image, w.ImageURL),
		Latitude:  firstFloat(w.Latitude, w.Lattitude),
		Longitude: w.Longitude,
	}
	if err := validator.Validate(&rec); err != nil {
		return w, domain.Point{}, false
	}

	return w, domain.Point{
		ID:       *rec.ID,
		Name:     rec.Name,
		ImageRef: rec.ImageRef,
		Coordinate: domain.Coordinate{
			Latitude:  *rec.Latitude,
			Longitude: *rec.Longitude,
		},
	}, true
}
