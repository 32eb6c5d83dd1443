package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Auth          AuthConfig
	Turso         TursoConfig
	Mail          MailConfig
}
type AuthConfig struct {
	SigningSecret string
	TokenTTLHours int
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type MailConfig struct {
	ResendAPIKey string
	FromAddress  string
	AppBaseURL   string
}
