package domain

// Config is an explicit configuration record, in place of the original
// source's mutable builder: every option is enumerated up front, and
// Validate (internal/config.Manager) returns
// a *ConfigError before the scoring engine is constructed.
type Config struct {
	Lirical LiricalConfig `mapstructure:"lirical"`
	Logging LoggingConfig `mapstructure:"logging"`
	Store   StoreConfig   `mapstructure:"store"`
}

// LiricalConfig pins the CLI's input schema.
type LiricalConfig struct {
	DataDir              string         `mapstructure:"data_dir"`
	ExomiserDir          string         `mapstructure:"exomiser_dir"`
	PhenopacketPath      string         `mapstructure:"phenopacket_path"`
	VCFPath              string         `mapstructure:"vcf_path"`
	Assembly             Assembly       `mapstructure:"assembly"`
	TranscriptDB         TranscriptDB   `mapstructure:"transcript_db"`
	BackgroundFile       string         `mapstructure:"background_file"`
	FilterOnFilterColumn bool           `mapstructure:"filter_on_filter_column"`
	OutputFormat         OutputFormat   `mapstructure:"output_format"`
	FuzzyMatch           FuzzyMatchMode `mapstructure:"fuzzy_match"`
	CacheDir             string         `mapstructure:"cache_dir"`
}

// LoggingConfig configures the process-wide structured logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// StoreConfig configures the run/audit sqlite store (internal/store).
type StoreConfig struct {
	Path string `mapstructure:"path"`
}
