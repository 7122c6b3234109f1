// Package models defines the booking entities, the bulk-sync payload
// records, and the response view types.
package models
