// Package config loads an explicit configuration record (in place of
// the source's mutable builder) using Viper: YAML file + env vars +
// defaults, unmarshaled into a domain.Config,
// with Validate() returning a *domain.ConfigError before the scoring
// engine is built.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/lirical-go/lirical/internal/domain"
)

// Manager wraps a loaded, validated domain.Config.
type Manager struct {
	config *domain.Config
	v      *viper.Viper
}

// NewManager loads configuration from ./lirical.yaml (or /etc/lirical/),
// environment variables prefixed LIRICAL_, and the defaults below, in
// that order of increasing precedence for env vars over file, file over
// defaults.
func NewManager() (*Manager, error) {
	m := &Manager{v: viper.New()}
	if err := m.loadConfig(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewManagerFromValues wraps an already-assembled domain.Config (e.g.
// one built from CLI flags) without touching Viper's file/env layers.
// Validate() behaves identically regardless of how the Manager was
// constructed.
func NewManagerFromValues(cfg domain.Config) (*Manager, error) {
	return &Manager{config: &cfg, v: viper.New()}, nil
}

func (m *Manager) loadConfig() error {
	v := m.v
	v.SetConfigName("lirical")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/lirical/")

	v.SetEnvPrefix("LIRICAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	m.setDefaults()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return domain.NewConfigError("config_file", err.Error())
		}
		// No config file: defaults and environment variables apply.
	}

	cfg := &domain.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return domain.NewConfigError("unmarshal", err.Error())
	}
	m.config = cfg
	return nil
}

func (m *Manager) setDefaults() {
	m.v.SetDefault("lirical.assembly", string(domain.AssemblyHg38))
	m.v.SetDefault("lirical.transcript_db", string(domain.TranscriptRefSeq))
	m.v.SetDefault("lirical.output_format", string(domain.OutputHTML))
	m.v.SetDefault("lirical.filter_on_filter_column", true)
	m.v.SetDefault("lirical.fuzzy_match", string(domain.FuzzyMatchLive))
	m.v.SetDefault("lirical.cache_dir", ".lirical-cache")

	m.v.SetDefault("logging.level", "info")
	m.v.SetDefault("logging.format", "text")
	m.v.SetDefault("logging.output", "stderr")

	m.v.SetDefault("store.path", ".lirical-cache/runs.db")
}

// GetConfig returns the unmarshaled configuration.
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// Reload re-reads the configuration from disk/env.
func (m *Manager) Reload() error {
	return m.loadConfig()
}

// Validate enforces the config record's contract: required paths
// present, enumerated options recognized, assembly/transcript-db
// pairing sane. Returns *domain.ConfigError, never a bare error, so
// callers can branch on it before constructing the scoring engine.
func (m *Manager) Validate() error {
	c := m.config.Lirical

	if c.DataDir == "" {
		return domain.NewConfigError("lirical.data_dir", "required: path to annotation/ontology data directory")
	}
	if c.PhenopacketPath == "" {
		return domain.NewConfigError("lirical.phenopacket_path", "required: path to observed HPO terms phenopacket")
	}

	switch c.Assembly {
	case domain.AssemblyHg19, domain.AssemblyHg38:
	default:
		return domain.NewConfigError("lirical.assembly", "unrecognized genome assembly: "+string(c.Assembly))
	}

	switch c.TranscriptDB {
	case domain.TranscriptUCSC, domain.TranscriptRefSeq, domain.TranscriptEnsembl:
	default:
		return domain.NewConfigError("lirical.transcript_db", "unrecognized transcript database: "+string(c.TranscriptDB))
	}

	switch c.OutputFormat {
	case domain.OutputHTML, domain.OutputTSV:
	default:
		return domain.NewConfigError("lirical.output_format", "unrecognized output format: "+string(c.OutputFormat))
	}

	switch c.FuzzyMatch {
	case domain.FuzzyMatchLive, domain.FuzzyMatchLegacy, "":
	default:
		return domain.NewConfigError("lirical.fuzzy_match", "unrecognized fuzzy match mode: "+string(c.FuzzyMatch))
	}

	if c.VCFPath != "" && c.TranscriptDB == domain.TranscriptEnsembl && c.Assembly == domain.AssemblyHg19 {
		return domain.NewConfigError("lirical.transcript_db", "ensembl transcript database is not available for hg19; use ucsc or refseq")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(m.config.Logging.Level)] {
		return domain.NewConfigError("logging.level", "invalid log level: "+m.config.Logging.Level)
	}

	return nil
}
