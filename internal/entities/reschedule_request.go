package entities

type EventType string

const (
	EventPickup EventType = "pickup"
	EventReturn EventType = "return"
)

// Valid reports whether e names a pickup or a return.
func (e EventType) Valid() bool {
	return e == EventPickup || e == EventReturn
}

type RescheduleRequest struct {
	RescheduleType EventType `json:"rescheduleType" validate:"required,oneof=pickup return"`
	NewDate        string    `json:"newDate" validate:"required,datetime=2006-01-02"`
	PreviousDate   string    `json:"previousDate" validate:"omitempty,datetime=2006-01-02"`
}

type BookingsQuery struct {
	StationID int    `validate:"gte=0"`
	StartDate string `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `validate:"omitempty,datetime=2006-01-02"`
}
