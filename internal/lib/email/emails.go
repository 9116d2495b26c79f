package email

import "context"

const verificationSubject = "Verificación de correo"

// SendVerificationEmail sends the email address verification link.
func (c *Client) SendVerificationEmail(ctx context.Context, to, link string) error {
	data := map[string]string{
		"Link": link,
	}

	return c.SendEmail(ctx, to, verificationSubject, TemplateVerification, data)
}
