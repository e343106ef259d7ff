// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig covers ports, TLS, log level and env. Everything
// below is memberhub's own and is loaded in LoadConfig from MEMBERHUB_*
// environment variables, config files or flags.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// JWTSecret signs bearer tokens (HS256).
	JWTSecret string

	// APIPrefix is prepended to every API route ("" mounts them at the root).
	APIPrefix string

	CORSAllowedOrigins []string

	// Phone validation for mobile/whatsapp fields
	StrictPhone bool
	PhoneRegion string

	MetricsEnabled bool

	// Per-request store timeouts
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration

	// Bootstrap admin, created at startup when the email is set and unused.
	BootstrapAdminEmail    string
	BootstrapAdminPassword string
	BootstrapAdminName     string
}
