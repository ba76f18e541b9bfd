package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	PublicBaseURL string
	CORSOrigins   []string
	Auth          AuthConfig
	Slack         SlackConfig
	Turso         TursoConfig
	PubSub        PubSubConfig
}
type AuthConfig struct {
	JWTSecret string
}
type SlackConfig struct {
	Token     string
	ChannelID string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type PubSubConfig struct {
	ProjectID string
	Topic     string
	// PushToken, when set, must be sent as ?token= by the push subscription.
	PushToken string
}

// SlackEnabled reports whether announcements can be posted.
func (c Config) SlackEnabled() bool {
	return c.Slack.Token != "" && c.Slack.ChannelID != ""
}

// PubSubEnabled reports whether roster events are published to Google Cloud Pub/Sub.
func (c Config) PubSubEnabled() bool {
	return c.PubSub.ProjectID != ""
}
