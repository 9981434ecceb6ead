package entities

type RescheduleEmailData struct {
	CustomerName string
	BookingID    string
	VehicleModel string
	VehiclePlate string
	EventLabel   string
	PreviousDate string
	NewDate      string
	CurrentYear  int
}
