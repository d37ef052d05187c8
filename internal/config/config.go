package config

import (
	"fmt"
	"time"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Scrape    ScrapeConfig    `yaml:"scrape"`
	Admin     AdminConfig     `yaml:"admin"`
}

type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	GRPCPort         int           `yaml:"grpc_port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Name            string        `yaml:"name"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Addresses []string `yaml:"addresses"`
	Password  string   `yaml:"password"`
	DB        int      `yaml:"db"`
	PoolSize  int      `yaml:"pool_size"`
}

type TelemetryConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Backend selects where the service reads the unified record set from.
type Backend string

const (
	BackendFile     Backend = "file"
	BackendPostgres Backend = "postgres"
)

type CatalogConfig struct {
	Backend      Backend        `yaml:"backend"`
	DataDir      string         `yaml:"data_dir"`
	SnapshotPath string         `yaml:"snapshot_path"`
	ExportPath   string         `yaml:"export_path"`
	Sources      []SourceConfig `yaml:"sources"`
}

// SourceConfig describes one attribute CSV produced by an extractor.
type SourceConfig struct {
	Name      string `yaml:"name"`
	Path      string `yaml:"path"`
	Key       string `yaml:"key"` // model_name or model_id
	KeyColumn string `yaml:"key_column"`
	// Columns maps record field -> CSV column.
	Columns map[string]string `yaml:"columns"`
}

type ScoringConfig struct {
	Policy PolicyConfig `yaml:"policy"`
}

type PolicyConfig struct {
	Enabled           bool          `yaml:"enabled"`
	BundlePath        string        `yaml:"bundle_path"`
	EvaluationTimeout time.Duration `yaml:"evaluation_timeout"`
}

type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
}

// AdminConfig guards the /admin endpoints. KeyHashes are SHA-256 hex
// digests of admin API keys; with the postgres backend keys are looked up in
// the admin_keys table instead.
type AdminConfig struct {
	Enabled   bool     `yaml:"enabled"`
	KeyHashes []string `yaml:"key_hashes"`
}

type ScrapeConfig struct {
	CatalogURL            string        `yaml:"catalog_url"`
	BatchURL              string        `yaml:"batch_url"`
	Timeout               time.Duration `yaml:"timeout"`
	FailureThreshold      int           `yaml:"failure_threshold"`
	RecoveryProbeInterval time.Duration `yaml:"recovery_probe_interval"`
}

// DefaultSources mirrors the CSV files written by `catalog scrape`.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{
			Name:      "deployment",
			Path:      "deployment_types.csv",
			Key:       "model_name",
			KeyColumn: "Model Name",
			Columns:   map[string]string{"deployment_type": "Deployment Type"},
		},
		{
			Name:      "latency",
			Path:      "latency_label.csv",
			Key:       "model_id",
			KeyColumn: "model-id",
			Columns:   map[string]string{"latency_support": "support_type"},
		},
		{
			Name:      "modality",
			Path:      "modality_output.csv",
			Key:       "model_name",
			KeyColumn: "Model name",
			Columns: map[string]string{
				"input_modalities":  "Input modalities",
				"output_modalities": "Output modalities",
			},
		},
		{
			Name:      "specificity",
			Path:      "llm_specificity_output.csv",
			Key:       "model_name",
			KeyColumn: "Model name",
			Columns: map[string]string{
				"specificity":          "Classification",
				"specificity_keywords": "Matched Keywords",
			},
		},
	}
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8080,
			GRPCPort:         9091,
			ReadTimeout:      15 * time.Second,
			WriteTimeout:     30 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			Name:            "catalog",
			User:            "catalog",
			MaxOpenConns:    10,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			DB:       0,
			PoolSize: 20,
		},
		Telemetry: TelemetryConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
		Catalog: CatalogConfig{
			Backend:      BackendFile,
			DataDir:      "data",
			SnapshotPath: "data/vendor_database.json",
			ExportPath:   "data/complete_llm_database.csv",
			Sources:      DefaultSources(),
		},
		Scoring: ScoringConfig{
			Policy: PolicyConfig{
				Enabled:           false,
				BundlePath:        "configs/policies",
				EvaluationTimeout: 100 * time.Millisecond,
			},
		},
		RateLimit: RateLimitConfig{
			Enabled:           false,
			RequestsPerMinute: 120,
		},
		Scrape: ScrapeConfig{
			CatalogURL:            "https://docs.aws.amazon.com/bedrock/latest/userguide/models-supported.html",
			BatchURL:              "https://docs.aws.amazon.com/bedrock/latest/userguide/batch-inference-supported.html",
			Timeout:               30 * time.Second,
			FailureThreshold:      3,
			RecoveryProbeInterval: 30 * time.Second,
		},
	}
}
