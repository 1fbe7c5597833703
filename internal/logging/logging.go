// Package logging builds the single injected *logrus.Logger that the
// CLI driver uses and passes to the components that log (the VCF
// genotype extractor), mirroring how ClassifierService and
// ACMGAMPRuleEngine take a logger in their own constructors: no
// package-level global. The scoring core (evaluator, phenotype and
// genotype LR) takes no logger and does not log.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lirical-go/lirical/internal/domain"
)

// New builds a *logrus.Logger from a domain.LoggingConfig: level parsed
// case-insensitively, format either "json" or "text", output either
// "stdout", "stderr", or a file path.
func New(cfg domain.LoggingConfig) (*logrus.Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	out, err := resolveOutput(cfg.Output)
	if err != nil {
		return nil, err
	}
	logger.SetOutput(out)

	return logger, nil
}

func resolveOutput(output string) (io.Writer, error) {
	switch strings.ToLower(strings.TrimSpace(output)) {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644) // #nosec G302,G304 -- operator-controlled log path
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}
