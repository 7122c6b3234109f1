package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room statuses. Persisted as-is; the frontend owns the vocabulary.
const (
	StatusAvailable   = "available"
	StatusMaintenance = "maintenance"
	StatusUnavailable = "unavailable"
)

// Room is a bookable meeting room.
type Room struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Capacity    int    `gorm:"not null" json:"capacity"`
	Description string `gorm:"type:text" json:"description"`
	Equipment   string `gorm:"size:255" json:"equipment"`
	Status      string `gorm:"size:20;default:available" json:"status"`
}

// Reservation is a time-boxed booking of a room.
//
// Start and end are stored as zero-padded "HH:MM" strings, the exact wire
// format of the sync payloads, so equality checks and ordering are plain
// string operations. The room reference is a plain foreign key: deleting a
// room that still has reservations is refused by the reconciler, never
// cascaded.
type Reservation struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	RoomID     uint           `gorm:"not null;index" json:"room_id"`
	Room       Room           `gorm:"foreignKey:RoomID" json:"-"`
	Date       datatypes.Date `gorm:"not null" json:"date"`
	StartTime  string         `gorm:"size:5;not null" json:"start_time"`
	EndTime    string         `gorm:"size:5;not null" json:"end_time"`
	Title      string         `gorm:"size:255;not null" json:"title"`
	Booker     string         `gorm:"size:100;not null" json:"booker"`
	Department string         `gorm:"size:100" json:"department"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// DateString renders the reservation date as ISO 8601 (YYYY-MM-DD).
func (r *Reservation) DateString() string {
	return time.Time(r.Date).Format("2006-01-02")
}

// Setting is a key/value configuration row (webhook URL, debug flag).
type Setting struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Key   string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

// Migrate creates or updates the booking schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Room{}, &Reservation{}, &Setting{})
}

// ParseDate parses an ISO date in the local timezone, so the calendar day
// survives the round trip through drivers that store dates as timestamps.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}
