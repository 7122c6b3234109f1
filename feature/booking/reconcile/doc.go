// Package reconcile implements snapshot reconciliation for the booking
// entities.
//
// A client posts the full desired set of rooms or reservations; the
// reconciler diffs it against the database and applies inserts, updates and
// deletes inside one transaction. Two guards protect the data:
//
//   - a bulk-delete safety check rejects snapshots smaller than half the
//     stored set before any write happens, and
//   - room deletions are refused outright while reservations still
//     reference the room (the whole batch rolls back).
//
// Reservation syncs additionally run a field-by-field change detector so
// that no-op updates do not produce notifications, and collect notification
// events for the caller to flush after commit.
package reconcile
