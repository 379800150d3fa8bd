package config

type SmtpConfig interface {
	GetSmtpHost() string
	GetSmtpPort() string
	GetSmtpUser() string
	GetSmtpPassword() string
	GetSmtpFrom() string
}

type Smtp struct{}

var _ SmtpConfig = Smtp{}

func (Smtp) GetSmtpHost() string {
	return GetEnv("SMTP_HOST", "smtp.gmail.com")
}

func (Smtp) GetSmtpPort() string {
	return GetEnv("SMTP_PORT", "587")
}

func (Smtp) GetSmtpUser() string {
	return GetEnv("SMTP_USER", "")
}

func (Smtp) GetSmtpPassword() string {
	return GetEnv("SMTP_PASSWORD", "")
}

func (Smtp) GetSmtpFrom() string {
	return GetEnv("SMTP_FROM", "")
}
