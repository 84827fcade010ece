package configs

import (
	"net/url"
	"time"
)

// Gateway configures the external fund-transfer backend. Transfers are
// the only outbound calls the service makes.
type Gateway struct {
	// Addr is the base URL of the payment backend.
	Addr url.URL `env:"ADDRESS" envDefault:"http://localhost:9090"`
	// Token is the bearer token sent with each transfer, if set.
	Token string `env:"TOKEN"`
	// MaxTries bounds retry attempts for retryable transfer failures.
	MaxTries uint `env:"MAX_TRIES" envDefault:"4"`
	// Timeout applies per HTTP request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}
