// Package client talks to the booking API. The Fetch methods never fail:
// transport and decoding errors are logged and turned into an empty
// result, so views only ever see "nothing to show".
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"campervan/internal/entities"
)

// StatusError is returned for non-2xx API responses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.Code)
	}
	return fmt.Sprintf("api returned status %d: %s", e.Code, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	log     logrus.FieldLogger
}

// New returns a client for the API at baseURL. A nil httpClient gets a
// client with the given timeout.
func New(baseURL string, httpClient *http.Client, timeout time.Duration, log logrus.FieldLogger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     log.WithField("component", "client"),
	}
}

func (c *Client) FetchStations(ctx context.Context, query string) []entities.Station {
	stations := []entities.Station{}
	path := "/api/stations?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &stations); err != nil {
		c.log.WithError(err).WithField("query", query).Error("Error fetching stations")
		return []entities.Station{}
	}
	if stations == nil {
		return []entities.Station{}
	}
	return stations
}

// FetchBookings lists bookings for a station and date range. Empty
// arguments are left out of the query string.
func (c *Client) FetchBookings(ctx context.Context, stationID, startDate, endDate string) []entities.Booking {
	params := url.Values{}
	if stationID != "" {
		params.Set("stationId", stationID)
	}
	if startDate != "" {
		params.Set("startDate", startDate)
	}
	if endDate != "" {
		params.Set("endDate", endDate)
	}
	path := "/api/bookings"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	bookings := []entities.Booking{}
	if err := c.do(ctx, http.MethodGet, path, nil, &bookings); err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"station_id": stationID,
			"start_date": startDate,
			"end_date":   endDate,
		}).Error("Error fetching bookings")
		return []entities.Booking{}
	}
	if bookings == nil {
		return []entities.Booking{}
	}
	return bookings
}

// FetchBookingDetails returns nil when the booking does not exist or the
// request fails.
func (c *Client) FetchBookingDetails(ctx context.Context, id string) *entities.BookingDetails {
	var details entities.BookingDetails
	if err := c.do(ctx, http.MethodGet, "/api/bookings/"+url.PathEscape(id), nil, &details); err != nil {
		c.log.WithError(err).WithField("booking_id", id).Error("Error fetching booking details")
		return nil
	}
	return &details
}

// RescheduleBooking asks the API to move one event of a booking. Unlike
// the Fetch methods it reports failures to the caller.
func (c *Client) RescheduleBooking(ctx context.Context, id string, event entities.EventType, newDate, previousDate string) (*entities.Booking, error) {
	req := entities.RescheduleRequest{
		RescheduleType: event,
		NewDate:        newDate,
		PreviousDate:   previousDate,
	}
	var booking entities.Booking
	if err := c.do(ctx, http.MethodPut, "/api/bookings/"+url.PathEscape(id)+"/reschedule", req, &booking); err != nil {
		return nil, fmt.Errorf("reschedule booking %s: %w", id, err)
	}
	return &booking, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			c.log.WithError(err).WithField("status", resp.StatusCode).Debug("Error response has no JSON body")
		}
		return &StatusError{Code: resp.StatusCode, Message: apiErr.Error}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
