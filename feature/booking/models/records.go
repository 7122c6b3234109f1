package models

// RoomRecord is one element of a room bulk-sync payload. The id is dynamic:
// absent, a number, a numeric string, or a frontend placeholder token for a
// row that has never been persisted. Capacity arrives as a number or string.
type RoomRecord struct {
	ID          any    `json:"id"`
	Name        string `json:"name"`
	Capacity    any    `json:"capacity"`
	Description string `json:"description"`
	Equipment   string `json:"equipment"`
	Status      string `json:"status"`
}

// ReservationRecord is one element of a reservation bulk-sync payload.
// Times are accepted under both start_time/end_time and start/end keys.
type ReservationRecord struct {
	ID         any    `json:"id"`
	Room       any    `json:"room"`
	Date       string `json:"date"`
	Start      string `json:"start"`
	End        string `json:"end"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Title      string `json:"title"`
	Booker     string `json:"booker"`
	Department string `json:"department"`
}

// StartValue resolves the start time, preferring the start_time key.
func (r ReservationRecord) StartValue() string {
	if r.StartTime != "" {
		return r.StartTime
	}
	return r.Start
}

// EndValue resolves the end time, preferring the end_time key.
func (r ReservationRecord) EndValue() string {
	if r.EndTime != "" {
		return r.EndTime
	}
	return r.End
}

// ReservationPayload is the enveloped form of a reservation sync body.
type ReservationPayload struct {
	Reservations []ReservationRecord `json:"reservations"`
}

// RoomView is the JSON shape of a room in list responses. Ids are rendered
// as strings because that is what the frontend sends back.
type RoomView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
	Equipment   string `json:"equipment"`
	Status      string `json:"status"`
}

// ReservationView is the JSON shape of a reservation in list responses.
type ReservationView struct {
	ID         uint   `json:"id"`
	Room       string `json:"room"`
	Date       string `json:"date"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Title      string `json:"title"`
	Booker     string `json:"booker"`
	Department string `json:"department"`
	RoomID     uint   `json:"room_id"`
	RoomName   string `json:"room_name"`
	CreatedAt  string `json:"created_at"`
}
