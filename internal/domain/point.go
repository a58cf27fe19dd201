package domain

import (
	"strings"
	"unicode"
)

// Point - пункт сбора отходов
type Point struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	ImageRef   string     `json:"image_ref"`
	Coordinate Coordinate `json:"coordinate"`
}

// PointDetail - полная карточка пункта сбора (экран деталей)
type PointDetail struct {
	Point      Point        `json:"point"`
	Categories []string     `json:"categories"`
	Address    string       `json:"address,omitempty"`
	City       string       `json:"city,omitempty"`
	Region     string       `json:"region,omitempty"`
	Email      string       `json:"email,omitempty"`
	WhatsApp   string       `json:"whatsapp,omitempty"`
	Contacts   ContactLinks `json:"contacts"`
}

// ContactLinks - готовые ссылки для кнопок связи
type ContactLinks struct {
	Mail     string `json:"mail,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

// BuildContactLinks derives mailto: and wa.me links from the raw contact fields.
func BuildContactLinks(email, whatsapp string) ContactLinks {
	var links ContactLinks
	if email = strings.TrimSpace(email); email != "" {
		links.Mail = "mailto:" + email
	}

	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, whatsapp)
	if digits != "" {
		links.WhatsApp = "https://wa.me/" + digits
	}
	return links
}

// Location formats the "City - Region, address" line shown under the point name.
func (d *PointDetail) Location() string {
	var b strings.Builder
	b.WriteString(d.City)
	if d.Region != "" {
		if b.Len() > 0 {
			b.WriteString(" - ")
		}
		b.WriteString(d.Region)
	}
	if d.Address != "" {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.Address)
	}
	return b.String()
}

// PointBatch - результат запроса точек
type PointBatch struct {
	Points  []Point
	Dropped int
}
