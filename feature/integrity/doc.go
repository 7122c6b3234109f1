// Package integrity provides booking data health checks.
//
// The sync endpoints accept whatever snapshot the client posts, so the
// stored data can drift into states the UI never shows: double bookings,
// inverted time windows, or reservations whose room was removed by hand.
// This package surfaces those states without changing any data.
//
// # Checks Provided
//
//   - Overlaps: Finds reservations in the same room and day whose time
//     windows intersect. Windows are half-open, so back-to-back meetings
//     are fine.
//   - Ranges: Finds reservations whose stored times do not parse as HH:MM
//     or whose start is not before the end.
//   - Orphans: Finds reservations referencing rooms that no longer exist.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/overlaps : Runs the overlap check.
//   - GET /integrity/ranges : Runs the time range check.
//   - GET /integrity/orphans : Runs the orphan check.
package integrity
