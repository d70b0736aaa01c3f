package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"backoffice/internal/entity"

	"github.com/resend/resend-go/v2"
)

const resendTimeout = 10 * time.Second

// ResendNotifier sends account mail through the Resend API.
type ResendNotifier struct {
	client     *resend.Client
	From       string
	AppBaseURL string
	LoginPath  string
}

func NewResendNotifier(apiKey string, from string, appBaseURL string) (*ResendNotifier, error) {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return nil, errors.New("resend notifier requires an api key and a sender")
	}
	return &ResendNotifier{
		client:     resend.NewCustomClient(&http.Client{Timeout: resendTimeout}, apiKey),
		From:       from,
		AppBaseURL: strings.TrimRight(appBaseURL, "/"),
		LoginPath:  "/admin/login",
	}, nil
}

func (n *ResendNotifier) SendAccountVerified(ctx context.Context, user entity.User) error {
	link := n.loginURL()
	name := html.EscapeString(user.Name)
	request := &resend.SendEmailRequest{
		From:    n.From,
		To:      []string{user.Email},
		Subject: "Your account has been verified",
		Html: fmt.Sprintf("<p>Hello %s,</p><p>An administrator verified your account.</p><p><a href=\"%s\">Sign in</a></p>",
			name, link),
		Text: fmt.Sprintf("Hello %s, an administrator verified your account. Sign in: %s", user.Name, link),
	}
	if _, err := n.client.Emails.SendWithContext(ctx, request); err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

func (n *ResendNotifier) loginURL() string {
	if n.AppBaseURL == "" {
		return n.LoginPath
	}
	return n.AppBaseURL + n.LoginPath
}
