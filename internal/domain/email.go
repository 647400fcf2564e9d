package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// AdminAccessEmailData holds data for the email sent when someone is granted admin access.
type AdminAccessEmailData struct {
	Email     string
	FullName  string
	Tier      RoleTier
	GrantedBy string
}

// RegistrationEmailData holds data for the registration confirmation email.
type RegistrationEmailData struct {
	Email     string
	FullName  string
	EventName string
	EventDate string
	Location  string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendAdminAccessGranted(ctx context.Context, data *AdminAccessEmailData) error
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationEmailData) error
}
