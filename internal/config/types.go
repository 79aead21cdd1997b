package config

// Config holds all configuration for the application.
type Config struct {
	Port         string      `env:"PORT" envDefault:"8080"`
	DBName       string      `env:"DB_NAME" envDefault:"finding-friends.db"`
	StoreBackend string      `env:"STORE_BACKEND" envDefault:"sqlite"`
	StateFile    string      `env:"STATE_FILE" envDefault:"finding-friends.json"`
	Timezone     string      `env:"TIMEZONE" envDefault:"Local"`
	CORSOrigins  []string    `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	ProjectID    string      `env:"GCP_PROJECT"`
	Slack        SlackConfig `envPrefix:"SLACK_"`
	Turso        TursoConfig `envPrefix:"TURSO_"`
}

type SlackConfig struct {
	Token         string `env:"BOT_TOKEN"`
	ChannelID     string `env:"CHANNEL_ID"`
	SigningSecret string `env:"SIGNING_SECRET"`
}

type TursoConfig struct {
	PrimaryURL string `env:"PRIMARY_URL"`
	AuthToken  string `env:"AUTH_TOKEN"`
}

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)
