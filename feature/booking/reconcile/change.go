package reconcile

import (
	"fmt"
	"time"

	"meeting-manager/feature/booking/models"
)

// DetectChange compares a stored reservation against an incoming payload
// record and reports whether a real change occurred, with the first
// mismatching field as the reason. Fields are checked in fixed order:
// room, date, start, end, title, booker, department.
//
// Text fields compare the payload's raw values against the stored ones
// (no trimming). A parse failure on the payload's date or times fails
// open: the save must never be blocked, so the record counts as changed
// and the parse error becomes the reason.
func DetectChange(stored models.Reservation, incoming models.ReservationRecord, roomID uint) (changed bool, reason string) {
	newDate, err := models.ParseDate(incoming.Date)
	if err != nil {
		return true, fmt.Sprintf("invalid date %q: %v", incoming.Date, err)
	}
	newStart, err := time.Parse("15:04", incoming.StartValue())
	if err != nil {
		return true, fmt.Sprintf("invalid start time %q: %v", incoming.StartValue(), err)
	}
	newEnd, err := time.Parse("15:04", incoming.EndValue())
	if err != nil {
		return true, fmt.Sprintf("invalid end time %q: %v", incoming.EndValue(), err)
	}

	if stored.RoomID != roomID {
		return true, "room changed"
	}
	if stored.DateString() != time.Time(newDate).Format("2006-01-02") {
		return true, "date changed"
	}
	if stored.StartTime != newStart.Format("15:04") {
		return true, "start time changed"
	}
	if stored.EndTime != newEnd.Format("15:04") {
		return true, "end time changed"
	}
	if stored.Title != incoming.Title {
		return true, "title changed"
	}
	if stored.Booker != incoming.Booker {
		return true, "booker changed"
	}
	if stored.Department != incoming.Department {
		return true, "department changed"
	}

	return false, "no change"
}
