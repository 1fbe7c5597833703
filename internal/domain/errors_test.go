package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownTermError(t *testing.T) {
	err := NewUnknownTermError(TermId("HP:9999999"))
	assert.Contains(t, err.Error(), "HP:9999999")

	var target *UnknownTermError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, TermId("HP:9999999"), target.Term)
}

func TestParseErrorUnwrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := NewParseError("ontology", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "ontology")
}

func TestConfigErrorMessage(t *testing.T) {
	err := NewConfigError("assembly", "unsupported assembly \"hg17\"")
	assert.Contains(t, err.Error(), "assembly")
	assert.Contains(t, err.Error(), "hg17")
}
