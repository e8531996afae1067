package domain

// Map event names fired by the control.
const (
	EventFoundLocations = "geosearch_foundlocations"
	EventShowLocation   = "geosearch_showlocation"
	EventError          = "geosearch_error"
	EventShowInfo       = "geosearch_showinfo"
)

// Marker is a result pin to be drawn by the map widget.
type Marker struct {
	Location  Location
	Icon      string
	Draggable bool
	Popup     string
}

// MapEvent is an observable event fired on the map.
// Only the fields relevant to Name are set.
type MapEvent struct {
	Name      string
	Locations []Location
	Location  *Location
	Marker    *Marker
	Message   string
}
