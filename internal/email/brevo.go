package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"innovision/internal/config"
	"innovision/internal/qerrors"
)

const defaultBaseURL = "https://api.brevo.com/v3"

// Client sends transactional email through the Brevo API.
type Client struct {
	apiKey      string
	senderName  string
	senderEmail string
	appURL      string
	baseURL     string
	httpClient  *http.Client
}

func NewClient() *Client {
	return &Client{
		apiKey:      config.Config.BrevoAPIKey,
		senderName:  config.Config.SenderName,
		senderEmail: config.Config.SenderEmail,
		appURL:      config.Config.AppURL,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

type recipient struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type sendEmailRequest struct {
	Sender      recipient   `json:"sender"`
	To          []recipient `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
	TextContent string      `json:"textContent"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// SendEmail posts a transactional email envelope. A non-2xx response is a
// fatal per-call error carrying the provider's message.
func (c *Client) SendEmail(to string, subject string, htmlContent string, textContent string) error {
	if c.apiKey == "" {
		return qerrors.EmailSendError
	}

	payload, err := json.Marshal(sendEmailRequest{
		Sender:      recipient{Name: c.senderName, Email: c.senderEmail},
		To:          []recipient{{Email: to}},
		Subject:     subject,
		HTMLContent: htmlContent,
		TextContent: textContent,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/smtp/email", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiError errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiError)
		if apiError.Message != "" {
			return fmt.Errorf("brevo API error: %s", apiError.Message)
		}
		return fmt.Errorf("brevo API returned %d", resp.StatusCode)
	}

	return nil
}

// SendCourseCompletionEmail congratulates a user on finishing a course.
func (c *Client) SendCourseCompletionEmail(userEmail string, userName string, courseTitle string) error {
	if userName == "" {
		userName = "Learner"
	}

	subject := fmt.Sprintf("Congratulations! You've completed %s", courseTitle)
	htmlContent := fmt.Sprintf(completionHTMLTemplate, userName, courseTitle, c.appURL)
	textContent := fmt.Sprintf("Congratulations! You have successfully completed the course: %s. Keep up the great work!", courseTitle)

	return c.SendEmail(userEmail, subject, htmlContent, textContent)
}

// SendInactivityReminderEmail nudges an inactive user back to a course.
func (c *Client) SendInactivityReminderEmail(userEmail string, userName string, courseTitle string) error {
	if userName == "" {
		userName = "Learner"
	}

	subject := fmt.Sprintf("Don't stop now! Continue your journey with %s", courseTitle)
	htmlContent := fmt.Sprintf(reminderHTMLTemplate, userName, courseTitle, c.appURL)
	textContent := fmt.Sprintf("Ready to jump back in? We noticed you haven't made progress on your course %s recently. Why not spend 10 minutes today?", courseTitle)

	return c.SendEmail(userEmail, subject, htmlContent, textContent)
}

const completionHTMLTemplate = `
<div style="font-family: sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #eee; border-radius: 10px;">
	<h2 style="color: #6366f1;">Mission Accomplished!</h2>
	<p>Hi %s,</p>
	<p>Amazing job! You have successfully completed the course: <strong>%s</strong>.</p>
	<p>Your dedication to learning is inspiring. Keep up the great work and check out more roadmaps to continue your journey.</p>
	<div style="margin-top: 30px; text-align: center;">
		<a href="%s/roadmap" style="background-color: #6366f1; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; font-weight: bold;">Continue Learning</a>
	</div>
	<p style="margin-top: 30px; font-size: 0.8em; color: #666;">Best regards,<br>The Innovision Team</p>
</div>
`

const reminderHTMLTemplate = `
<div style="font-family: sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #eee; border-radius: 10px;">
	<h2 style="color: #6366f1;">Ready to jump back in?</h2>
	<p>Hi %s,</p>
	<p>We noticed you haven't made progress on your course <strong>%s</strong> recently.</p>
	<p>Every small step counts towards mastering your goals. Why not spend just 10 minutes today to keep the momentum going?</p>
	<div style="margin-top: 30px; text-align: center;">
		<a href="%s/roadmap" style="background-color: #6366f1; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; font-weight: bold;">Resume Course</a>
	</div>
	<p style="margin-top: 30px; font-size: 0.8em; color: #666;">Best regards,<br>The Innovision Team</p>
</div>
`
