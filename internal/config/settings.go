package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings is the resolved configuration snapshot.  It is built once at
// process start by Load (or Resolve) and handed to every component that
// needs it.  Nothing in the application mutates it afterwards.
//
// Optional strings use the empty string for "absent".
type Settings struct {
	// API
	APIV1Str    string `env:"API_V1_STR" envDefault:"/api"`
	ProjectName string `env:"PROJECT_NAME" envDefault:"FineTuner"`
	Port        string `env:"PORT" envDefault:"8000"`

	// CORS.  BackendCORSOrigins already includes the entries contributed by
	// AllowedOrigins once Resolve returns.
	BackendCORSOrigins Origins `env:"BACKEND_CORS_ORIGINS" envDefault:"http://localhost:3000,https://finetuner.io,https://www.finetuner.io,https://api.finetuner.io,http://finetuner.io,http://www.finetuner.io,http://api.finetuner.io,https://82.29.173.71:8000"`
	AllowedOrigins     string  `env:"ALLOWED_ORIGINS"`

	// Security
	SecretKey                string `env:"SECRET_KEY" envDefault:"your_secret_key_here"`
	Algorithm                string `env:"ALGORITHM" envDefault:"HS256"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"240"`
	RefreshTokenExpireDays   int    `env:"REFRESH_TOKEN_EXPIRE_DAYS" envDefault:"7"`

	// Database.  DatabaseURL wins over the discrete components, see DatabaseURI.
	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"fintune"`

	// Stripe
	StripeSecretKey       string `env:"STRIPE_SECRET_KEY"`
	StripePublishableKey  string `env:"STRIPE_PUBLISHABLE_KEY"`
	StripeWebhookSecret   string `env:"STRIPE_WEBHOOK_SECRET"`
	StripePriceStarter    string `env:"STRIPE_PRICE_STARTER"`
	StripePricePro        string `env:"STRIPE_PRICE_PRO"`
	StripePriceEnterprise string `env:"STRIPE_PRICE_ENTERPRISE"`
	StripePriceID         string `env:"STRIPE_PRICE_ID"` // one-off character purchases

	// Uploads
	UploadDir     string `env:"UPLOAD_DIR" envDefault:"/tmp/uploads"`
	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB

	RedisURL string `env:"REDIS_URL" envDefault:"redis://redis:6379/0"`
	Debug    bool   `env:"DEBUG" envDefault:"false"`

	// AI providers
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	MistralAPIKey   string `env:"MISTRAL_API_KEY"`
	DefaultAIModel  string `env:"DEFAULT_AI_MODEL" envDefault:"gpt-4.1"`

	FrontendURL string `env:"FRONTEND_URL" envDefault:"https://finetuner.io"`

	// Google OAuth
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleDiscoveryURL string `env:"GOOGLE_DISCOVERY_URL" envDefault:"https://accounts.google.com/.well-known/openid-configuration"`

	// Email
	SMTPHost        string `env:"SMTP_HOST"`
	SMTPPort        int    `env:"SMTP_PORT" envDefault:"465"` // implicit TLS
	SMTPUser        string `env:"SMTP_USER"`
	SMTPPassword    string `env:"SMTP_PASSWORD"`
	SMTPSenderEmail string `env:"SMTP_SENDER_EMAIL" envDefault:"support@finetuner.io"`
	SMTPSenderName  string `env:"SMTP_SENDER_NAME" envDefault:"FineTuner"`
	EmailLogoURL    string `env:"EMAIL_LOGO_URL"`
}

// Load resolves Settings from the env file at envFile (skipped when empty
// or missing) and the live process environment.  The process environment
// never gets modified; the file is only read.
func Load(envFile string) (Settings, error) {
	fileValues, err := readEnvFile(envFile)
	if err != nil {
		return Settings{}, err
	}
	return Resolve(fileValues, env.ToMap(os.Environ()))
}

// Resolve builds Settings from already-loaded sources.  Precedence is
// processEnv > fileValues > field defaults.  Keys that no field declares
// are ignored.  A value that cannot be converted to its field's type is
// returned as an error naming the variable.  A variable set to the empty
// string yields an empty string field; for numeric and boolean fields it
// is an error.
func Resolve(fileValues, processEnv map[string]string) (Settings, error) {
	merged := MergeSources(fileValues, processEnv)

	var s Settings
	err := env.ParseWithOptions(&s, env.Options{
		Environment: merged,
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(false): parseBool,
		},
	})
	if err != nil {
		return Settings{}, fmt.Errorf("invalid configuration: %w", describe(err))
	}
	if err := applyEmptyValues(&s, merged); err != nil {
		return Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}

	s.BackendCORSOrigins = ExtendOrigins(s.BackendCORSOrigins, s.AllowedOrigins)
	return s, nil
}

// MergeSources overlays processEnv on top of fileValues.  A variable that
// is present with an empty value still counts as set and overrides lower
// layers.
func MergeSources(fileValues, processEnv map[string]string) map[string]string {
	merged := make(map[string]string, len(fileValues)+len(processEnv))
	for _, src := range []map[string]string{fileValues, processEnv} {
		for k, v := range src {
			merged[k] = v
		}
	}
	return merged
}

// readEnvFile returns the key/value pairs of path.  An empty path or a
// missing file yields no values.
func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}

// AccessTokenTTL is ACCESS_TOKEN_EXPIRE_MINUTES as a duration.
func (s Settings) AccessTokenTTL() time.Duration {
	return time.Duration(s.AccessTokenExpireMinutes) * time.Minute
}

// RefreshTokenTTL is REFRESH_TOKEN_EXPIRE_DAYS as a duration.
func (s Settings) RefreshTokenTTL() time.Duration {
	return time.Duration(s.RefreshTokenExpireDays) * 24 * time.Hour
}

// SMTPEnabled reports whether enough SMTP settings are present to send mail.
func (s Settings) SMTPEnabled() bool {
	return s.SMTPHost != "" && s.SMTPUser != "" && s.SMTPPassword != ""
}
