// Package booking exposes the meeting-room booking API: room, reservation
// and settings listings, and the bulk-sync endpoints that reconcile a
// client-posted snapshot against the database.
//
// Reconciliation itself lives in the reconcile subpackage; this package
// owns the HTTP surface, the settings store, and the post-commit dispatch
// of queued notification events.
package booking
