// Package services implements the driving ports.
//
// GeoSearchControl is the search control engine. It runs on a single event
// loop supplied by driven.Scheduler, talks to providers through
// ProviderAdapter and reports every visible change as a render instruction.
// SettingsService maps the config store onto domain settings.
package services
