package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Auth struct {
		TokenSignKey   string   `json:"token_sign_key"`
		TokenAlgorithm string   `json:"token_algorithm"`
		TokenIssuer    string   `json:"token_issuer"`
		TokenDuration  Duration `json:"token_duration"`
	} `json:"auth,omitempty"`

	Log struct {
		Level    string `json:"level"`
		FilePath string `json:"file_path"`
	} `json:"log,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		S3 struct {
			Endpoint        string   `json:"endpoint"`
			Region          string   `json:"region"`
			AccessKeyID     string   `json:"access_key_id"`
			SecretAccessKey string   `json:"secret_access_key"`
			Bucket          string   `json:"bucket"`
			TempFolder      string   `json:"temp_folder"`
			URLExpiry       Duration `json:"url_expiry"`
		} `json:"s3,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Scheduler struct {
		Enabled         bool   `json:"enabled"`
		CleanupSchedule string `json:"cleanup_schedule"`
	} `json:"scheduler,omitempty"`

	Workers struct {
		QueueSize   int `json:"queue_size"`
		Concurrency int `json:"concurrency"`
		MaxRetries  int `json:"max_retries"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Auth: Auth{
			TokenSignKey:   jsonCfg.Auth.TokenSignKey,
			TokenAlgorithm: jsonCfg.Auth.TokenAlgorithm,
			TokenIssuer:    jsonCfg.Auth.TokenIssuer,
			TokenDuration:  time.Duration(jsonCfg.Auth.TokenDuration),
		},
		Log: Log{
			Level:    jsonCfg.Log.Level,
			FilePath: jsonCfg.Log.FilePath,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			S3: S3{
				Endpoint:        jsonCfg.Storage.S3.Endpoint,
				Region:          jsonCfg.Storage.S3.Region,
				AccessKeyID:     jsonCfg.Storage.S3.AccessKeyID,
				SecretAccessKey: jsonCfg.Storage.S3.SecretAccessKey,
				Bucket:          jsonCfg.Storage.S3.Bucket,
				TempFolder:      jsonCfg.Storage.S3.TempFolder,
				URLExpiry:       time.Duration(jsonCfg.Storage.S3.URLExpiry),
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Scheduler: Scheduler{
			Enabled:         jsonCfg.Scheduler.Enabled,
			CleanupSchedule: jsonCfg.Scheduler.CleanupSchedule,
		},
		Workers: Workers{
			QueueSize:   jsonCfg.Workers.QueueSize,
			Concurrency: jsonCfg.Workers.Concurrency,
			MaxRetries:  jsonCfg.Workers.MaxRetries,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
