package config

import (
	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds all externally supplied settings. MONGODB_URI and
// JWT_SECRET are mandatory; startup fails if either is missing.
type AppConfig struct {
	Port           string `envconfig:"PORT" default:"8080"`
	MongoURI       string `envconfig:"MONGODB_URI" required:"true"`
	MongoDatabase  string `envconfig:"MONGODB_DATABASE" default:"campus_sos"`
	JWTSecret      string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpiryHours int    `envconfig:"JWT_EXPIRY_HOURS" default:"72"`

	RedisAddress  string `envconfig:"REDIS_ADDRESS"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	CloudinaryURL string `envconfig:"CLOUDINARY_URL"`
	ValidatorURL  string `envconfig:"VALIDATOR_URL"`

	DailyIssueLimit int      `envconfig:"DAILY_ISSUE_LIMIT" default:"20"`
	CORSOrigins     []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	LogLevel        string   `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string   `envconfig:"LOG_FORMAT" default:"json"`
}

// App is the process-wide configuration, populated by Load in main.
var App AppConfig

// Load reads the environment into App.
func Load() error {
	return envconfig.Process("", &App)
}
