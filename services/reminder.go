package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"metalic-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService sends a daily dues SMS to every customer carrying an
// unsettled balance. The send function is a field so tests can swap out the
// Twilio call.
type ReminderService struct {
	db       *gorm.DB
	balances *BalanceService
	client   *twilio.RestClient
	send     func(to, body string) error
	cron     *cron.Cron
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	s := &ReminderService{
		db:       db,
		balances: NewBalanceService(db),
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
	s.send = s.sendSMS
	return s
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Every day at 9 AM.
	_, err := c.AddFunc("0 9 * * *", func() {
		s.SendDueReminders()
	})
	if err != nil {
		log.Printf("Failed to schedule due reminders: %v", err)
		return
	}

	c.Start()
	s.cron = c
	log.Println("Due reminder scheduler started")
}

// SendDueReminders messages every customer with a non-zero balance and logs
// each attempt. A customer without a mobile number is skipped.
func (s *ReminderService) SendDueReminders() {
	log.Println("Starting due reminder processing...")

	pending, err := s.balances.PendingCustomers()
	if err != nil {
		log.Printf("Failed to fetch pending customers: %v", err)
		return
	}

	for _, balance := range pending {
		if balance.CustomerMobile == "" {
			continue
		}

		message := dueMessage(balance)
		status := "sent"
		errorMsg := ""
		if err := s.send(balance.CustomerMobile, message); err != nil {
			log.Printf("Failed to send reminder to %s: %v", balance.CustomerMobile, err)
			status = "failed"
			errorMsg = err.Error()
		}

		reminderLog := models.ReminderLog{
			CustomerID:   balance.CustomerID,
			Message:      message,
			Status:       status,
			ErrorMessage: errorMsg,
			SentAt:       time.Now(),
		}
		if err := s.db.Create(&reminderLog).Error; err != nil {
			log.Printf("Failed to log reminder for customer %s: %v", balance.CustomerID, err)
		}
	}

	log.Println("Due reminder processing completed")
}

func dueMessage(balance CustomerBalance) string {
	return fmt.Sprintf(
		"Dear %s, your pending balance with us is %.3f fine and Rs %.2f. Kindly visit to settle. - Metalic Jewelers",
		balance.CustomerName, balance.RemainingFine, balance.RemainingAmount,
	)
}

func (s *ReminderService) sendSMS(to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(body)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", to, *resp.Sid)
	}
	return nil
}
