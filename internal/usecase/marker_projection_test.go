package usecase_test

import (
	"math/rand"
	"testing"

	"github.com/collection-point-service/internal/domain"
	"github.com/collection-point-service/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkerProjection_Project(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for n := 0; n < 30; n++ {
		ids := make([]int64, n)
		for i := range ids {
			ids[i] = rng.Int63n(1000)
		}
		points := pointsBatch(ids...).Points

		bridge := &recordingBridge{}
		markers := usecase.NewMarkerProjection(bridge).Project(points)

		require.Len(t, markers, len(points))
		for i, m := range markers {
			assert.Equal(t, points[i].ID, m.PointID)
			assert.Equal(t, points[i].Name, m.Label)
			assert.Equal(t, points[i].Coordinate, m.Coordinate)

			m.Select()
		}
		assert.Equal(t, ids, append([]int64{}, bridge.Selected()...))
	}
}

func TestMarkerProjection_SelectPassesPointID(t *testing.T) {
	bridge := &recordingBridge{}
	markers := usecase.NewMarkerProjection(bridge).Project(pointsBatch(3, 7, 11).Points)

	markers[1].Select()

	assert.Equal(t, []int64{7}, bridge.Selected())
}

func TestFeatureCollection(t *testing.T) {
	markers := usecase.NewMarkerProjection(nil).Project([]domain.Point{
		{ID: 7, Name: "Mercado do Jose", ImageRef: "http://img/7.jpg", Coordinate: domain.Coordinate{Latitude: 0.0349, Longitude: -51.0694}},
	})

	fc := usecase.FeatureCollection(markers)

	require.Len(t, fc.Features, 1)
	f := fc.Features[0]
	assert.Equal(t, -51.0694, f.Point().Lon())
	assert.Equal(t, 0.0349, f.Point().Lat())
	assert.Equal(t, "Mercado do Jose", f.Properties.MustString("label"))
	assert.Equal(t, int64(7), f.Properties["point_id"])
}

func TestMarkerBounds(t *testing.T) {
	_, ok := usecase.MarkerBounds(nil)
	assert.False(t, ok)

	markers := usecase.NewMarkerProjection(nil).Project([]domain.Point{
		{ID: 1, Name: "a", Coordinate: domain.Coordinate{Latitude: 1, Longitude: -2}},
		{ID: 2, Name: "b", Coordinate: domain.Coordinate{Latitude: -3, Longitude: 4}},
	})

	bound, ok := usecase.MarkerBounds(markers)
	require.True(t, ok)
	assert.Equal(t, -3.0, bound.Min.Lat())
	assert.Equal(t, -2.0, bound.Min.Lon())
	assert.Equal(t, 1.0, bound.Max.Lat())
	assert.Equal(t, 4.0, bound.Max.Lon())
}
