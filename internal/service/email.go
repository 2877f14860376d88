package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// EmailService sends transactional mail through Resend.
// In development messages are only logged.
type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

func (s *EmailService) SendWelcomeEmail(email, username string) error {
	recipesURL := fmt.Sprintf("%s/recipes/new", s.appURL)
	subject, body := welcomeEmailTemplate(username, recipesURL, s.appName)
	return s.send("welcome", email, subject, body, "url", recipesURL)
}

func (s *EmailService) SendNewReviewEmail(email, ownerName, reviewerName, recipeTitle, recipeID string, rating int) error {
	recipeURL := fmt.Sprintf("%s/recipes/%s", s.appURL, recipeID)
	subject, body := newReviewEmailTemplate(ownerName, reviewerName, recipeTitle, recipeURL, rating, s.appName)
	return s.send("new_review", email, subject, body, "url", recipeURL)
}

func (s *EmailService) SendAccountDeletedEmail(email, username string) error {
	subject, body := accountDeletedEmailTemplate(username, s.appName)
	return s.send("account_deleted", email, subject, body)
}

func (s *EmailService) send(kind, to, subject, body string, attrs ...any) error {
	if s.isDev {
		args := append([]any{"type", kind, "to", to, "subject", subject}, attrs...)
		slog.Info("email sent (dev mode)", args...)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", kind, "to", to)
	}
	return err
}
