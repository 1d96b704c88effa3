package morality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignment(t *testing.T) {
	assert.Equal(t, 1.0, Alignment(3, 0))
	assert.Equal(t, -1.0, Alignment(0, 4))
	assert.Equal(t, 0.0, Alignment(2, 2))
	assert.InDelta(t, 0.333, Alignment(2, 1), 0.001)
	assert.InDelta(t, -0.2, Alignment(2, 3), 0.0001)
}

func TestAlignmentNoChoices(t *testing.T) {
	assert.Equal(t, 0.0, Alignment(0, 0))
}

func TestMergeAccumulates(t *testing.T) {
	totals := Totals{Good: 4, Bad: 1, Alignment: 0.6}

	merged := Merge(totals, 1, 2)

	assert.Equal(t, 5, merged.Good)
	assert.Equal(t, 3, merged.Bad)
	assert.Equal(t, 0.25, merged.Alignment)
}

func TestMergeFromZero(t *testing.T) {
	merged := Merge(Totals{}, 2, 1)

	assert.Equal(t, 2, merged.Good)
	assert.Equal(t, 1, merged.Bad)
	assert.InDelta(t, 0.333, merged.Alignment, 0.001)
}

func TestMergeEmptySessionKeepsAlignment(t *testing.T) {
	totals := Totals{Good: 3, Bad: 1}

	merged := Merge(totals, 0, 0)

	assert.Equal(t, 3, merged.Good)
	assert.Equal(t, 1, merged.Bad)
	assert.Equal(t, 0.5, merged.Alignment)
}
