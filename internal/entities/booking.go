package entities

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusPending   BookingStatus = "pending"
	StatusCompleted BookingStatus = "completed"
)

// DateLayout is the calendar-day format used for booking start and end dates.
const DateLayout = "2006-01-02"

type Booking struct {
	ID              string        `json:"id"`
	CustomerName    string        `json:"customerName"`
	StartDate       string        `json:"startDate"`
	EndDate         string        `json:"endDate"`
	PickupStationID int           `json:"pickupStationId"`
	ReturnStationID int           `json:"returnStationId"`
	VehicleModel    string        `json:"vehicleModel"`
	VehiclePlate    string        `json:"vehiclePlate"`
	Status          BookingStatus `json:"status"`
	PickupTime      string        `json:"pickupTime"`
	ReturnTime      string        `json:"returnTime"`
}

// BookingDetails is the full record shown on the booking detail view.
type BookingDetails struct {
	Booking
	CustomerEmail   string   `json:"customerEmail"`
	CustomerPhone   string   `json:"customerPhone"`
	VehicleColor    string   `json:"vehicleColor"`
	TotalPrice      float64  `json:"totalPrice"`
	Currency        string   `json:"currency"`
	BookingDate     string   `json:"bookingDate"`
	SpecialRequests string   `json:"specialRequests"`
	InsuranceType   string   `json:"insuranceType"`
	PickupStation   *Station `json:"pickupStation,omitempty"`
	ReturnStation   *Station `json:"returnStation,omitempty"`
}
