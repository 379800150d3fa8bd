package config

type Config interface {
	EnvConfig
	AuthConfig
	SmtpConfig
}

type mainConfig struct {
	EnvVars
	Auth
	Smtp
}

func New() Config {
	return mainConfig{}
}
