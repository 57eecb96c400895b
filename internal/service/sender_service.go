package service

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"parkease/internal/db"
	"parkease/internal/entities"
)

// SenderNotifier delivers booking events to users over email and SMS.
// Delivery happens in background goroutines; failures are logged and
// never surfaced to the booking flow.
type SenderNotifier struct{}

func NewSenderNotifier() *SenderNotifier {
	return &SenderNotifier{}
}

func (s *SenderNotifier) BookingCreated(event entities.BookingCreatedEvent) {
	subject := fmt.Sprintf("Your ParkEase booking for slot %s is confirmed", event.SlotNumber)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour parking slot is booked.\n\n"+
			"Slot: %s\n"+
			"Vehicle: %s\n"+
			"From: %s\n"+
			"To: %s\n\n"+
			"Thank you for choosing ParkEase.",
		event.UserName, event.SlotNumber, event.VehicleNumber,
		event.StartTime.Format("02 Jan 2006 15:04 MST"),
		event.EndTime.Format("02 Jan 2006 15:04 MST"),
	)

	go func() {
		if event.UserEmail != "" {
			if err := sendEmailWithSendGrid(event.UserEmail, event.UserName, subject, body); err != nil {
				log.Printf("Booking %d created, but confirmation email to %s failed: %v",
					event.BookingID, event.UserEmail, err)
			}
		}
		if event.UserPhone != "" {
			sms := fmt.Sprintf("ParkEase: slot %s booked for %s from %s.",
				event.SlotNumber, event.VehicleNumber, event.StartTime.Format("02/01 15:04"))
			if err := sendSMS(event.UserPhone, sms); err != nil {
				log.Printf("Booking %d created, but confirmation SMS to %s failed: %v",
					event.BookingID, event.UserPhone, err)
			}
		}
	}()
}

func (s *SenderNotifier) SlotChanged(slot db.Slot) {
	log.Printf("Event SlotChanged: slot %s available=%t", slot.SlotNumber, slot.IsAvailable)
}

func sendEmailWithSendGrid(toEmail, toName, subject, plainTextBody string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not configured")
	}
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		return fmt.Errorf("SENDGRID_FROM_EMAIL is not configured")
	}
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "ParkEase"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainTextBody, "")

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sending email through SendGrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("SendGrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func sendSMS(toNumber, messageBody string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")
	if accountSid == "" || authToken == "" || fromNumber == "" {
		return fmt.Errorf("Twilio credentials not fully configured")
	}
	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("Destination number %q is not in E.164 format, SMS may fail", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(messageBody)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("sending SMS: %w", err)
	}
	return nil
}
