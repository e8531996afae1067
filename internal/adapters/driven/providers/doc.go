// Package providers builds lookup providers and their transports from
// settings.
//
// Providers:
//   - nominatim: OpenStreetMap search API over the transport chain
//   - geonames: offline gazetteer in SQLite
package providers
