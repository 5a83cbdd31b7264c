package config

import (
	"github.com/rs/zerolog"
)

// redacted replaces secret values in log output. Empty secrets stay empty so
// a missing value is still visible in the record.
const redacted = "[REDACTED]"

func redactSecret(value string) string {
	if value == "" {
		return ""
	}
	return redacted
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler so the merged
// configuration can be logged at startup without leaking the token sign key,
// the object-store credentials, or the password embedded in the DSN.
func (cfg *StructuredConfig) MarshalZerologObject(e *zerolog.Event) {
	e.Dict("auth", zerolog.Dict().
		Str("token_sign_key", redactSecret(cfg.Auth.TokenSignKey)).
		Str("token_algorithm", cfg.Auth.TokenAlgorithm).
		Str("token_issuer", cfg.Auth.TokenIssuer).
		Dur("token_duration", cfg.Auth.TokenDuration))

	e.Dict("log", zerolog.Dict().
		Str("level", cfg.Log.Level).
		Str("file_path", cfg.Log.FilePath))

	e.Dict("storage", zerolog.Dict().
		Dict("db", zerolog.Dict().
			Str("dsn", redactSecret(cfg.Storage.DB.DSN))).
		Dict("s3", zerolog.Dict().
			Str("endpoint", cfg.Storage.S3.Endpoint).
			Str("region", cfg.Storage.S3.Region).
			Str("access_key_id", cfg.Storage.S3.AccessKeyID).
			Str("secret_access_key", redactSecret(cfg.Storage.S3.SecretAccessKey)).
			Str("bucket", cfg.Storage.S3.Bucket).
			Str("temp_folder", cfg.Storage.S3.TempFolder).
			Dur("url_expiry", cfg.Storage.S3.URLExpiry)))

	e.Dict("server", zerolog.Dict().
		Str("http_address", cfg.Server.HTTPAddress).
		Dur("request_timeout", cfg.Server.RequestTimeout))

	e.Dict("scheduler", zerolog.Dict().
		Bool("enabled", cfg.Scheduler.Enabled).
		Str("cleanup_schedule", cfg.Scheduler.CleanupSchedule))

	e.Dict("workers", zerolog.Dict().
		Int("queue_size", cfg.Workers.QueueSize).
		Int("concurrency", cfg.Workers.Concurrency).
		Int("max_retries", cfg.Workers.MaxRetries))
}
