package config

import (
	"net/url"
	"strings"

	"go.uber.org/zap/zapcore"
)

const masked = "********"

// MarshalLogObject implements zapcore.ObjectMarshaler so the snapshot can
// be logged with zap.Object.  Secrets are masked and the password in the
// database URI is redacted.
func (s Settings) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("api_v1_str", s.APIV1Str)
	enc.AddString("project_name", s.ProjectName)
	enc.AddString("port", s.Port)
	if err := enc.AddArray("backend_cors_origins", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, o := range s.BackendCORSOrigins {
			arr.AppendString(o)
		}
		return nil
	})); err != nil {
		return err
	}
	enc.AddString("allowed_origins", s.AllowedOrigins)
	enc.AddString("secret_key", mask(s.SecretKey))
	enc.AddString("algorithm", s.Algorithm)
	enc.AddInt("access_token_expire_minutes", s.AccessTokenExpireMinutes)
	enc.AddInt("refresh_token_expire_days", s.RefreshTokenExpireDays)
	enc.AddString("database_uri", redactURI(s.DatabaseURI()))
	enc.AddString("stripe_secret_key", mask(s.StripeSecretKey))
	enc.AddString("stripe_publishable_key", s.StripePublishableKey)
	enc.AddString("stripe_webhook_secret", mask(s.StripeWebhookSecret))
	enc.AddString("stripe_price_starter", s.StripePriceStarter)
	enc.AddString("stripe_price_pro", s.StripePricePro)
	enc.AddString("stripe_price_enterprise", s.StripePriceEnterprise)
	enc.AddString("stripe_price_id", s.StripePriceID)
	enc.AddString("upload_dir", s.UploadDir)
	enc.AddInt64("max_upload_size", s.MaxUploadSize)
	enc.AddString("redis_url", redactURI(s.RedisURL))
	enc.AddBool("debug", s.Debug)
	enc.AddString("openai_api_key", mask(s.OpenAIAPIKey))
	enc.AddString("anthropic_api_key", mask(s.AnthropicAPIKey))
	enc.AddString("mistral_api_key", mask(s.MistralAPIKey))
	enc.AddString("default_ai_model", s.DefaultAIModel)
	enc.AddString("frontend_url", s.FrontendURL)
	enc.AddString("google_client_id", s.GoogleClientID)
	enc.AddString("google_client_secret", mask(s.GoogleClientSecret))
	enc.AddString("google_discovery_url", s.GoogleDiscoveryURL)
	enc.AddString("smtp_host", s.SMTPHost)
	enc.AddInt("smtp_port", s.SMTPPort)
	enc.AddString("smtp_user", s.SMTPUser)
	enc.AddString("smtp_password", mask(s.SMTPPassword))
	enc.AddString("smtp_sender_email", s.SMTPSenderEmail)
	enc.AddString("smtp_sender_name", s.SMTPSenderName)
	enc.AddString("email_logo_url", s.EmailLogoURL)
	return nil
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return masked
}

// redactedQueryKeys are connection parameters that carry credentials.
var redactedQueryKeys = []string{"password", "sslpassword"}

// redactURI hides the password of a connection URL, both in the userinfo
// and in password-like query parameters.  Values that do not parse are
// masked entirely.
func redactURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return masked
	}
	if u.RawQuery != "" {
		q := u.Query()
		redacted := false
		for key := range q {
			for _, secret := range redactedQueryKeys {
				if strings.EqualFold(key, secret) {
					q.Set(key, "xxxxx")
					redacted = true
				}
			}
		}
		if redacted {
			u.RawQuery = q.Encode()
		}
	}
	return u.Redacted()
}
