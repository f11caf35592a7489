package handler

import (
	"testing"

	"github.com/fekuna/bao-console/internal/uniform/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariantSpec(t *testing.T) {
	spec, err := ParseVariantSpec("M/Male/PE")
	require.NoError(t, err)
	assert.Equal(t, dto.VariantSpec{Size: "M", Gender: "Male", Type: "PE"}, spec)

	spec, err = ParseVariantSpec("xs / female / Standard Uniform / Skirt")
	require.NoError(t, err)
	assert.Equal(t, "Skirt", spec.Piece)
	assert.Equal(t, "Standard Uniform", spec.Type)

	_, err = ParseVariantSpec("M/Male")
	assert.Error(t, err)
}
