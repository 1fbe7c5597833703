package domain

import "fmt"

// The scoring core never returns a bare error for a precondition
// violation; it returns one of the typed error kinds below so callers
// can branch on what went wrong with errors.As.

// ConfigError signals a missing required input path, an unrecognized
// genome assembly, or a mismatched assembly/transcript-database pair.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error [%s]: %s", e.Field, e.Message)
}

// NewConfigError builds a ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// UnknownTermError signals a term id not found in the ontology after
// alias canonicalization.
type UnknownTermError struct {
	Term TermId
}

func (e *UnknownTermError) Error() string {
	return fmt.Sprintf("unknown term: %s", e.Term)
}

// NewUnknownTermError builds an UnknownTermError.
func NewUnknownTermError(t TermId) *UnknownTermError {
	return &UnknownTermError{Term: t}
}

// InconsistentInputsError signals that observed and excluded term sets
// overlap. A genotype map entry for a gene unknown to the gene index
// never raises it: internal/genolr only reads the entries of genes
// linked to the disease being scored, so such a gene is skipped, and
// the skip is not logged.
type InconsistentInputsError struct {
	Message string
}

func (e *InconsistentInputsError) Error() string {
	return fmt.Sprintf("inconsistent inputs: %s", e.Message)
}

// NewInconsistentInputsError builds an InconsistentInputsError.
func NewInconsistentInputsError(message string) *InconsistentInputsError {
	return &InconsistentInputsError{Message: message}
}

// NumericError signals a non-finite intermediate (NaN/Inf) that must
// not silently propagate.
type NumericError struct {
	Operation string
	Detail    string
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("numeric error in %s: %s", e.Operation, e.Detail)
}

// NewNumericError builds a NumericError.
func NewNumericError(operation, detail string) *NumericError {
	return &NumericError{Operation: operation, Detail: detail}
}

// MissingBackgroundError signals a term with no entry in the background
// index after construction — a construction bug, fail fast.
type MissingBackgroundError struct {
	Term TermId
}

func (e *MissingBackgroundError) Error() string {
	return fmt.Sprintf("no background frequency computed for term: %s", e.Term)
}

// NewMissingBackgroundError builds a MissingBackgroundError.
func NewMissingBackgroundError(t TermId) *MissingBackgroundError {
	return &MissingBackgroundError{Term: t}
}

// ParseError wraps a parse failure from an external collaborator
// (ontology, annotation, phenopacket, or VCF reader). The scoring core
// never originates one; collaborators surface it before the evaluator
// runs.
type ParseError struct {
	Source string
	Cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Source, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// NewParseError builds a ParseError.
func NewParseError(source string, cause error) *ParseError {
	return &ParseError{Source: source, Cause: cause}
}
