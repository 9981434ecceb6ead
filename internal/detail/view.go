package detail

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"campervan/internal/entities"
)

const LoadFailedMessage = "Failed to load booking details"

type Provider interface {
	FetchBookingDetails(ctx context.Context, id string) *entities.BookingDetails
}

// View shows one booking. Details are fetched on every Load and never
// cached between views.
type View struct {
	mu        sync.Mutex
	provider  Provider
	log       logrus.FieldLogger
	bookingID string
	booking   *entities.BookingDetails
	loading   bool
	err       string
}

// NewView starts in the loading state until the first Load completes.
func NewView(bookingID string, provider Provider, log logrus.FieldLogger) *View {
	return &View{
		provider:  provider,
		log:       log.WithFields(logrus.Fields{"component": "detail", "booking_id": bookingID}),
		bookingID: bookingID,
		loading:   true,
	}
}

// Load fetches the booking. It blocks until the provider answers.
func (v *View) Load(ctx context.Context) {
	v.mu.Lock()
	v.loading = true
	v.err = ""
	v.mu.Unlock()

	details := v.provider.FetchBookingDetails(ctx, v.bookingID)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	v.booking = details
	if details == nil {
		v.err = LoadFailedMessage
		v.log.Warn("Booking details unavailable")
	}
}

func (v *View) BookingID() string { return v.bookingID }

func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Booking returns a copy of the loaded details, or nil.
func (v *View) Booking() *entities.BookingDetails {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.booking == nil {
		return nil
	}
	b := *v.booking
	return &b
}

// Error is the message to show instead of the booking, or "".
func (v *View) Error() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// DurationDays is the number of days between two booking dates,
// regardless of their order.
func DurationDays(startDate, endDate string) (int, error) {
	start, err := time.Parse(entities.DateLayout, startDate)
	if err != nil {
		return 0, fmt.Errorf("parse start date: %w", err)
	}
	end, err := time.Parse(entities.DateLayout, endDate)
	if err != nil {
		return 0, fmt.Errorf("parse end date: %w", err)
	}
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	day := 24 * time.Hour
	return int((diff + day - 1) / day), nil
}

// FormatDate renders a booking date as "Monday, January 15, 2024".
func FormatDate(date string) (string, error) {
	t, err := time.Parse(entities.DateLayout, date)
	if err != nil {
		return "", err
	}
	return t.Format("Monday, January 2, 2006"), nil
}

// StatusLabel capitalises a status for display.
func StatusLabel(s entities.BookingStatus) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}
