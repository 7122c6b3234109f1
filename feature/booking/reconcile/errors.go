package reconcile

import (
	"fmt"
	"strings"
)

// CodeBulkDeleteDetected is the machine-readable code returned to clients
// when the bulk-delete safety check rejects a batch.
const CodeBulkDeleteDetected = "BULK_DELETE_DETECTED"

// ValidationError reports a malformed record in a sync payload. Index is
// 1-based, matching what the frontend displays to the user.
type ValidationError struct {
	Entity  string
	Index   int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Entity, e.Index, e.Message)
}

// SafetyCheckError reports a batch rejected by the bulk-delete heuristic:
// the incoming snapshot is less than half the size of the stored set.
type SafetyCheckError struct {
	Entity   string
	Existing int
	Incoming int
}

func (e *SafetyCheckError) Error() string {
	return fmt.Sprintf(
		"safety check failed: possible bulk delete (%d %ss stored, only %d in payload); use the admin backend for mass deletions",
		e.Existing, e.Entity, e.Incoming)
}

// Code returns the client-facing error code.
func (e *SafetyCheckError) Code() string { return CodeBulkDeleteDetected }

// ReferenceError reports a refused deletion: at least one room slated for
// removal still has reservations. Nothing in the batch is applied.
type ReferenceError struct {
	Rooms []string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("cannot delete rooms with existing reservations: %s", strings.Join(e.Rooms, ", "))
}
