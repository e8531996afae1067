// Package sqlite stores the offline gazetteer used by the geonames provider.
//
// The adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO.
//
// # Schema
//
// Three tables managed by versioned migrations in migrations/:
//
//   - geoinfo: one row per place (coordinates, population, feature)
//   - geonames: one row per localised full name, ranked by importance
//   - geolinks: external links for a place
//
// # Data Location
//
// By default, the database is stored at ~/.geosearch/data/geonames.db
package sqlite
