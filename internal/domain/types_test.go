package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermIdPrefix(t *testing.T) {
	tests := []struct {
		name string
		term TermId
		want string
	}{
		{"hpo term", TermId("HP:0001250"), "HP"},
		{"no colon", TermId("malformed"), ""},
		{"empty", TermId(""), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.term.Prefix())
		})
	}
}

func TestModeOfInheritanceExpectedAlleleCount(t *testing.T) {
	assert.Equal(t, 1, InheritanceDominant.ExpectedAlleleCount())
	assert.Equal(t, 2, InheritanceRecessive.ExpectedAlleleCount())
	assert.Equal(t, 1, InheritanceUnknown.ExpectedAlleleCount(), "missing MoI defaults to dominant-like")
	assert.Equal(t, 1, InheritanceXLinked.ExpectedAlleleCount())
}

func TestFPFloorBounds(t *testing.T) {
	assert.Greater(t, FPFloor, 0.0)
	assert.Less(t, FPFloor, 1.0)
}
