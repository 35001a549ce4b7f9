// Package email delivers customer-facing notification email over SMTP.
package email

import "context"

// Sender sends the order notification emails.
type Sender interface {
	SendOrderConfirmationEmail(ctx context.Context, toEmail, customerName, applianceName, serviceDate string) error
	SendOrderCompletedEmail(ctx context.Context, toEmail, customerName, applianceName string) error
}

// NoopSender drops every message. Used when email delivery is disabled.
type NoopSender struct{}

func (NoopSender) SendOrderConfirmationEmail(ctx context.Context, toEmail, customerName, applianceName, serviceDate string) error {
	return nil
}

func (NoopSender) SendOrderCompletedEmail(ctx context.Context, toEmail, customerName, applianceName string) error {
	return nil
}

var _ Sender = NoopSender{}
