package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/recipehub/internal/flagx"
	"github.com/dmitrijs2005/recipehub/internal/timex"
)

// FileConfig is the on-disk shape of the config file. Durations accept
// both "15m" strings and integer nanoseconds. Zero values are not applied.
type FileConfig struct {
	HTTPAddr                     string         `json:"http_addr" yaml:"http_addr"`
	GRPCAddr                     string         `json:"grpc_addr" yaml:"grpc_addr"`
	DatabaseDSN                  string         `json:"database_dsn" yaml:"database_dsn"`
	StorageBackend               string         `json:"storage_backend" yaml:"storage_backend"`
	SecretKey                    string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	HashCost                     int            `json:"hash_cost" yaml:"hash_cost"`
	HashWorkers                  int            `json:"hash_workers" yaml:"hash_workers"`
	LogLevel                     string         `json:"log_level" yaml:"log_level"`
	LogBackend                   string         `json:"log_backend" yaml:"log_backend"`
	CORSAllowedOrigins           []string       `json:"cors_allowed_origins" yaml:"cors_allowed_origins"`
	RequestTimeout               timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	HealthProbeInterval          timex.Duration `json:"health_probe_interval" yaml:"health_probe_interval"`
	S3AccessKey                  string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey                  string         `json:"s3_secret_key" yaml:"s3_secret_key"`
	S3Bucket                     string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                     string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3PresignTTL                 timex.Duration `json:"s3_presign_ttl" yaml:"s3_presign_ttl"`
	AMQPURL                      string         `json:"amqp_url" yaml:"amqp_url"`
	AMQPExchange                 string         `json:"amqp_exchange" yaml:"amqp_exchange"`
	OTelEndpoint                 string         `json:"otel_endpoint" yaml:"otel_endpoint"`
}

// parseFile overlays the config file given via -c/-config, if any.
// Files ending in .yaml or .yml are decoded as YAML, everything else as JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.HTTPAddr, fc.HTTPAddr)
	setString(&cfg.GRPCAddr, fc.GRPCAddr)
	setString(&cfg.DatabaseDSN, fc.DatabaseDSN)
	setString(&cfg.StorageBackend, fc.StorageBackend)
	setString(&cfg.SecretKey, fc.SecretKey)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogBackend, fc.LogBackend)
	setString(&cfg.S3AccessKey, fc.S3AccessKey)
	setString(&cfg.S3SecretKey, fc.S3SecretKey)
	setString(&cfg.S3Bucket, fc.S3Bucket)
	setString(&cfg.S3Region, fc.S3Region)
	setString(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
	setString(&cfg.AMQPURL, fc.AMQPURL)
	setString(&cfg.AMQPExchange, fc.AMQPExchange)
	setString(&cfg.OTelEndpoint, fc.OTelEndpoint)

	if fc.AccessTokenValidityDuration.Duration > 0 {
		cfg.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if fc.RefreshTokenValidityDuration.Duration > 0 {
		cfg.RefreshTokenValidityDuration = fc.RefreshTokenValidityDuration.Duration
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.HealthProbeInterval.Duration > 0 {
		cfg.HealthProbeInterval = fc.HealthProbeInterval.Duration
	}
	if fc.S3PresignTTL.Duration > 0 {
		cfg.S3PresignTTL = fc.S3PresignTTL.Duration
	}
	if fc.HashCost != 0 {
		cfg.HashCost = fc.HashCost
	}
	if fc.HashWorkers != 0 {
		cfg.HashWorkers = fc.HashWorkers
	}
	if len(fc.CORSAllowedOrigins) > 0 {
		cfg.CORSAllowedOrigins = fc.CORSAllowedOrigins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
