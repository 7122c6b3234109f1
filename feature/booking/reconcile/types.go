package reconcile

import (
	"strconv"
	"strings"

	"meeting-manager/core/utils"
	"meeting-manager/feature/booking/models"
	"meeting-manager/feature/notify"
)

// IDKind classifies the dynamic id field of a sync record.
type IDKind int

const (
	// IDNew marks a record without a usable id: a new row is created and
	// the store assigns the id.
	IDNew IDKind = iota
	// IDNumeric marks a record carrying a positive numeric id (number or
	// numeric string): upsert by primary key.
	IDNumeric
	// IDPlaceholder marks a frontend token for a never-persisted row
	// (e.g. "room_17"): the reconciler falls back to a name lookup.
	IDPlaceholder
)

// RecordID is the decoded form of a payload id.
type RecordID struct {
	Kind  IDKind
	Value uint
}

// ClassifyID decodes the raw id value of a sync record into one of the
// three variants before any side effect happens.
func ClassifyID(raw any) RecordID {
	switch v := raw.(type) {
	case nil:
		return RecordID{Kind: IDNew}
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return RecordID{Kind: IDNew}
		}
		if n, err := strconv.Atoi(s); err == nil {
			if n > 0 {
				return RecordID{Kind: IDNumeric, Value: uint(n)}
			}
			return RecordID{Kind: IDNew}
		}
		return RecordID{Kind: IDPlaceholder}
	default:
		if n := utils.ToInt(raw); n > 0 {
			return RecordID{Kind: IDNumeric, Value: uint(n)}
		}
		return RecordID{Kind: IDNew}
	}
}

// Event is a notification queued during reconciliation and flushed by the
// caller after the transaction commits. The reservation is a snapshot taken
// while the row still existed, with the room preloaded, so delete
// notifications can be rendered after the row is gone.
type Event struct {
	Action      notify.Action
	Reservation models.Reservation
}
