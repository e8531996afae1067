package driven

import "github.com/custodia-labs/geosearch/internal/core/domain"

// LayerID identifies a marker layer added to the map.
type LayerID int

// MapWidget is the map the control drives.
type MapWidget interface {
	// SetView centres the map on lat/lng at zoom.
	SetView(lat, lng float64, zoom int)

	// FitBounds moves the viewport to show bounds.
	FitBounds(bounds domain.BoundingBox)

	// AddMarkerLayer draws markers as one layer.
	AddMarkerLayer(markers []domain.Marker) LayerID

	// RemoveLayer removes a previously added layer.
	RemoveLayer(id LayerID)

	// OpenPopup opens the popup of the marker at index within layer.
	OpenPopup(id LayerID, index int)

	// CurrentZoom returns the current zoom level.
	CurrentZoom() int

	// Focus gives keyboard focus back to the map.
	Focus()

	// Fire emits an observable map event.
	Fire(event domain.MapEvent)
}
