package usecase

import (
	"github.com/collection-point-service/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// MarkerProjection turns points into markers whose selection is routed to
// the navigation bridge.
type MarkerProjection struct {
	bridge domain.NavigationBridge
}

func NewMarkerProjection(bridge domain.NavigationBridge) MarkerProjection {
	return MarkerProjection{bridge: bridge}
}

// Project maps every point to exactly one marker, preserving order.
func (p MarkerProjection) Project(points []domain.Point) []domain.Marker {
	markers := make([]domain.Marker, len(points))
	for i, point := range points {
		pointID := point.ID
		markers[i] = domain.NewMarker(point, func() {
			if p.bridge != nil {
				p.bridge.SelectPoint(pointID)
			}
		})
	}
	return markers
}

// FeatureCollection renders markers as GeoJSON points for map widgets.
func FeatureCollection(markers []domain.Marker) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range markers {
		f := geojson.NewFeature(orb.Point{m.Coordinate.Longitude, m.Coordinate.Latitude})
		f.ID = m.PointID
		f.Properties["point_id"] = m.PointID
		f.Properties["label"] = m.Label
		if m.ImageRef != "" {
			f.Properties["image_ref"] = m.ImageRef
		}
		fc.Append(f)
	}
	return fc
}

// MarkerBounds returns the bounding box of markers; ok is false when empty.
func MarkerBounds(markers []domain.Marker) (bound orb.Bound, ok bool) {
	if len(markers) == 0 {
		return orb.Bound{}, false
	}
	mp := make(orb.MultiPoint, len(markers))
	for i, m := range markers {
		mp[i] = orb.Point{m.Coordinate.Longitude, m.Coordinate.Latitude}
	}
	return mp.Bound(), true
}
