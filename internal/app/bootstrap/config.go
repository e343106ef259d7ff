// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// DefaultJWTSecret is the development signing secret. It is refused in prod.
const DefaultJWTSecret = "jwt-secret-key"

// appConfigKeys defines the configuration keys for memberhub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: MEMBERHUB_MONGO_URI, MEMBERHUB_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "memberhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size"},

	{Name: "jwt_secret", Default: DefaultJWTSecret, Desc: "HMAC secret for signing bearer tokens (must be changed in production)"},
	{Name: "api_prefix", Default: "/api", Desc: "Path prefix for API routes"},
	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma-separated list of allowed CORS origins"},

	{Name: "strict_phone", Default: false, Desc: "Validate mobile/whatsapp numbers with libphonenumber"},
	{Name: "phone_region", Default: "US", Desc: "Default region for numbers without a country code"},

	{Name: "metrics_enabled", Default: true, Desc: "Expose Prometheus metrics at /metrics"},

	{Name: "timeout_short", Default: "5s", Desc: "Timeout for single-record store operations"},
	{Name: "timeout_medium", Default: "10s", Desc: "Timeout for list and aggregate store operations"},

	{Name: "bootstrap_admin_email", Default: "", Desc: "Email of an admin to create on startup if missing"},
	{Name: "bootstrap_admin_password", Default: "", Desc: "Password for the bootstrap admin"},
	{Name: "bootstrap_admin_name", Default: "Admin", Desc: "Display name for the bootstrap admin"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// Precedence is flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MEMBERHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret:          appValues.String("jwt_secret"),
		APIPrefix:          strings.TrimSpace(appValues.String("api_prefix")),
		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),

		StrictPhone: appValues.Bool("strict_phone"),
		PhoneRegion: appValues.String("phone_region"),

		MetricsEnabled: appValues.Bool("metrics_enabled"),

		TimeoutShort:  appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium: appValues.Duration("timeout_medium", timeouts.DefaultMedium),

		BootstrapAdminEmail:    strings.TrimSpace(appValues.String("bootstrap_admin_email")),
		BootstrapAdminPassword: appValues.String("bootstrap_admin_password"),
		BootstrapAdminName:     appValues.String("bootstrap_admin_name"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation. The MongoDB URI
// is checked here so a typo fails before any connection attempt.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.JWTSecret == "" {
		return errors.New("jwt_secret must not be empty")
	}
	if coreCfg != nil && coreCfg.Env == "prod" && appCfg.JWTSecret == DefaultJWTSecret {
		return errors.New("jwt_secret must be changed from the default in prod")
	}

	if err := validatePrefix(appCfg.APIPrefix); err != nil {
		return err
	}

	if appCfg.BootstrapAdminEmail != "" && appCfg.BootstrapAdminPassword == "" {
		return errors.New("bootstrap_admin_password is required when bootstrap_admin_email is set")
	}
	if appCfg.TimeoutShort < 0 || appCfg.TimeoutMedium < 0 {
		return fmt.Errorf("timeouts must not be negative (short=%s, medium=%s)", appCfg.TimeoutShort, appCfg.TimeoutMedium)
	}

	return nil
}

// validatePrefix accepts "" or a path like "/api" (leading slash, no trailing slash).
func validatePrefix(p string) error {
	if p == "" {
		return nil
	}
	if !strings.HasPrefix(p, "/") || strings.HasSuffix(p, "/") {
		return fmt.Errorf("api_prefix %q must start with '/' and must not end with '/'", p)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
