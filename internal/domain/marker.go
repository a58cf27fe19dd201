package domain

// Marker - описание маркера для карты хоста. Пересоздаётся при каждом новом списке точек.
type Marker struct {
	PointID    int64      `json:"point_id"`
	Coordinate Coordinate `json:"coordinate"`
	Label      string     `json:"label"`
	ImageRef   string     `json:"image_ref,omitempty"`

	onSelect func()
}

// NewMarker binds onSelect to the marker; the closure is expected to capture
// the point identity.
func NewMarker(point Point, onSelect func()) Marker {
	return Marker{
		PointID:    point.ID,
		Coordinate: point.Coordinate,
		Label:      point.Name,
		ImageRef:   point.ImageRef,
		onSelect:   onSelect,
	}
}

// Select fires the marker's selection callback.
func (m Marker) Select() {
	if m.onSelect != nil {
		m.onSelect()
	}
}
