package choice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sendagame/progress/internal/levels"
	"github.com/sendagame/progress/internal/model"
)

func newValidator() *Validator {
	return New(levels.Default())
}

func choicePtr(c model.Choice) *model.Choice {
	return &c
}

func TestValidateGoodChoice(t *testing.T) {
	v := newValidator()

	result, err := v.Validate("senda_ebano", choicePtr("sanar"))
	require.NoError(t, err)
	assert.Equal(t, Good, result.Classification)
	assert.False(t, result.Missing)
}

func TestValidateBadChoice(t *testing.T) {
	v := newValidator()

	result, err := v.Validate("senda_ceniza", choicePtr("castigar"))
	require.NoError(t, err)
	assert.Equal(t, Bad, result.Classification)
	assert.False(t, result.Missing)
}

func TestValidateWrongChoiceForLevel(t *testing.T) {
	v := newValidator()

	// A value valid elsewhere is still invalid here
	_, err := v.Validate("senda_ebano", choicePtr("perdonar"))
	assert.ErrorIs(t, err, model.ErrInvalidChoice)
}

func TestValidateChoiceOnNonDecisionLevel(t *testing.T) {
	v := newValidator()

	_, err := v.Validate("santuario", choicePtr("sanar"))
	assert.ErrorIs(t, err, model.ErrInvalidChoice)
}

func TestValidateAbsentChoiceOnNonDecisionLevel(t *testing.T) {
	v := newValidator()

	result, err := v.Validate("confluencia", nil)
	require.NoError(t, err)
	assert.Equal(t, None, result.Classification)
	assert.False(t, result.Missing)
}

func TestValidateAbsentChoiceOnDecisionLevel(t *testing.T) {
	v := newValidator()

	result, err := v.Validate("senda_bruma", nil)
	require.NoError(t, err)
	assert.Equal(t, None, result.Classification)
	assert.True(t, result.Missing)
}

func TestValidateUnknownLevel(t *testing.T) {
	v := newValidator()

	_, err := v.Validate("senda_falsa", choicePtr("sanar"))
	assert.ErrorIs(t, err, model.ErrInvalidLevel)
}

func TestClassifyRecordedChoices(t *testing.T) {
	v := newValidator()

	cls, err := v.Classify("senda_bruma", "revelar")
	require.NoError(t, err)
	assert.Equal(t, Good, cls)

	cls, err = v.Classify("senda_bruma", "ocultar")
	require.NoError(t, err)
	assert.Equal(t, Bad, cls)
}
