package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email through SendGrid. Callers treat failures
// as non-fatal; nothing in a request path depends on delivery.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig == nil || config.AppConfig.SendgridApiKey == "" {
		return fmt.Errorf("sendgrid api key is not configured")
	}

	from := mail.NewEmail("Course Marketplace", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// NotifyCreatorOfReview emails a course creator about a new review.
// Errors are logged and swallowed.
func NotifyCreatorOfReview(creatorEmail, creatorName, courseTitle string, rating int) {
	subject := fmt.Sprintf("New review on %q", courseTitle)
	body := fmt.Sprintf(`
	<html>
	<body style="font-family: Helvetica, Arial, sans-serif; color: #222;">
		<h2>Your course received a new review</h2>
		<p>Hi %s,</p>
		<p><strong>%s</strong> just received a new %d-star review.</p>
		<p>Log in to your creator dashboard to read it.</p>
	</body>
	</html>`, creatorName, courseTitle, rating)

	if err := SendEmail(creatorEmail, creatorName, subject, body); err != nil {
		log.Printf("Failed to send review notification to %s: %v", creatorEmail, err)
	}
}
