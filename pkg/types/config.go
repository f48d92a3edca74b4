package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Bearer token signing key. Any sufficiently long random string.
	// openssl rand -base64 32
	// to generate a value
	JWTSecret string `envconfig:"JWT_SECRET"`

	// Issued tokens expire this many hours after issuance. 720h = 30 days.
	TokenTTLHours uint `envconfig:"TOKEN_TTL_HOURS" default:"720"`
}
