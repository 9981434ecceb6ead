package service

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"campervan/internal/config"
	"campervan/internal/entities"
)

type EmailSender interface {
	SendEmail(toEmail, toName, subject, plainText, html string) error
}

type SMSSender interface {
	SendSMS(toNumber, body string) error
}

type SendGridSender struct {
	client   *sendgrid.Client
	fromName string
	from     string
}

func NewSendGridSender(cfg config.SendGridConfig) *SendGridSender {
	return &SendGridSender{
		client:   sendgrid.NewSendClient(cfg.APIKey),
		fromName: cfg.FromName,
		from:     cfg.FromEmail,
	}
}

func (s *SendGridSender) SendEmail(toEmail, toName, subject, plainText, html string) error {
	message := mail.NewSingleEmail(mail.NewEmail(s.fromName, s.from), subject, mail.NewEmail(toName, toEmail), plainText, html)

	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", toEmail, err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(cfg config.TwilioConfig) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   cfg.AccountSID,
		Password:   cfg.AuthToken,
		AccountSid: cfg.AccountSID,
	})
	return &TwilioSender{client: client, from: cfg.FromNumber}
}

func (s *TwilioSender) SendSMS(toNumber, body string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send to %s: %w", toNumber, err)
	}
	return nil
}

var rescheduleEmailTemplate = template.Must(template.New("reschedule_email").Parse(`<html><body>
<p>Hello {{.CustomerName}},</p>
<p>The {{.EventLabel}} date of your booking <strong>{{.BookingID}}</strong> has changed.</p>
<ul>
<li>Vehicle: {{.VehicleModel}} ({{.VehiclePlate}})</li>
<li>Previous date: {{.PreviousDate}}</li>
<li>New date: {{.NewDate}}</li>
</ul>
<p>&copy; {{.CurrentYear}} Campervan Rentals</p>
</body></html>`))

// NotifyService tells customers that a booking date was moved. Each
// channel is optional; a nil sender disables it.
type NotifyService struct {
	email EmailSender
	sms   SMSSender
	log   logrus.FieldLogger
	wg    sync.WaitGroup
}

func NewNotifyService(email EmailSender, sms SMSSender, log logrus.FieldLogger) *NotifyService {
	return &NotifyService{email: email, sms: sms, log: log.WithField("component", "notify")}
}

// NewNotifyServiceFromConfig enables SendGrid and Twilio only when their
// credentials are configured.
func NewNotifyServiceFromConfig(cfg *config.Config, log logrus.FieldLogger) *NotifyService {
	var email EmailSender
	var sms SMSSender
	if cfg.SendGrid.Enabled() {
		email = NewSendGridSender(cfg.SendGrid)
	} else {
		log.Warn("SendGrid is not configured, reschedule emails are disabled")
	}
	if cfg.Twilio.Enabled() {
		sms = NewTwilioSender(cfg.Twilio)
	} else {
		log.Warn("Twilio is not configured, reschedule SMS are disabled")
	}
	return NewNotifyService(email, sms, log)
}

// NotifyReschedule sends the email and SMS in the background.
func (s *NotifyService) NotifyReschedule(b entities.BookingDetails, event entities.EventType, previousDate, newDate string) {
	data := entities.RescheduleEmailData{
		CustomerName: b.CustomerName,
		BookingID:    b.ID,
		VehicleModel: b.VehicleModel,
		VehiclePlate: b.VehiclePlate,
		EventLabel:   string(event),
		PreviousDate: previousDate,
		NewDate:      newDate,
		CurrentYear:  time.Now().Year(),
	}
	log := s.log.WithField("booking_id", b.ID)

	if s.email != nil && b.CustomerEmail != "" {
		subject := fmt.Sprintf("Your booking %s: new %s date %s", b.ID, event, newDate)
		plain := fmt.Sprintf("Hello %s,\n\nThe %s date of your booking %s (%s, %s) moved from %s to %s.\n",
			b.CustomerName, event, b.ID, b.VehicleModel, b.VehiclePlate, previousDate, newDate)

		var html bytes.Buffer
		if err := rescheduleEmailTemplate.Execute(&html, data); err != nil {
			log.WithError(err).Error("Failed to render reschedule email")
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.email.SendEmail(b.CustomerEmail, b.CustomerName, subject, plain, html.String()); err != nil {
				log.WithError(err).Error("Failed to send reschedule email")
				return
			}
			log.Info("Reschedule email sent")
		}()
	}

	if s.sms != nil && b.CustomerPhone != "" {
		to := strings.ReplaceAll(b.CustomerPhone, " ", "")
		body := fmt.Sprintf("Campervan Rentals: booking %s %s moved to %s.", b.ID, event, newDate)

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.sms.SendSMS(to, body); err != nil {
				log.WithError(err).Error("Failed to send reschedule SMS")
				return
			}
			log.Info("Reschedule SMS sent")
		}()
	}
}

// Wait blocks until every notification started so far has finished.
func (s *NotifyService) Wait() {
	s.wg.Wait()
}
