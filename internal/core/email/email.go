package email

import "fmt"

// Provider defines the interface for email providers
type Provider interface {
	SendEmail(to, subject, body string) error
	GetProviderName() string
}

// Service wraps the email provider
type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

func (s *Service) SendEmail(to, subject, body string) error {
	if s.provider == nil {
		return fmt.Errorf("no email provider configured")
	}
	return s.provider.SendEmail(to, subject, body)
}

func (s *Service) GetProviderName() string {
	if s.provider == nil {
		return "none"
	}
	return s.provider.GetProviderName()
}

// buildHTMLBody wraps a plain message in the shared notification layout.
func buildHTMLBody(title, message string) string {
	return `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2d6cdf; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .footer { padding: 10px; text-align: center; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>` + title + `</h1>
        </div>
        <div class="content">
            <p>` + message + `</p>
        </div>
        <div class="footer">
            <p>Sent by the Havenstead tenant assistant</p>
        </div>
    </div>
</body>
</html>`
}
