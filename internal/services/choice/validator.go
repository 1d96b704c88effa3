package choice

import (
	"fmt"

	"github.com/sendagame/progress/internal/levels"
	"github.com/sendagame/progress/internal/model"
)

// Classification is the ephemeral good/bad/none outcome of validating a
// choice. It feeds the morality accumulator and is never persisted; only
// the raw choice string is stored.
type Classification int

const (
	None Classification = iota
	Good
	Bad
)

// Result carries the classification plus the soft "missing decision"
// signal for decision levels completed without a choice
type Result struct {
	Classification Classification
	Missing        bool
}

// Validator checks submitted choices against the level catalog
type Validator struct {
	catalog *levels.Catalog
}

// New creates a new choice validator
func New(catalog *levels.Catalog) *Validator {
	return &Validator{catalog: catalog}
}

// Validate classifies an optional submitted choice for a level.
//
// Levels without a decision accept only an absent choice. Levels with a
// decision accept the configured good or bad value, or an absent choice
// (flagged Missing, completion still proceeds). Anything else is rejected
// with an error naming the two valid values.
func (v *Validator) Validate(levelID model.LevelID, submitted *model.Choice) (Result, error) {
	level, err := v.catalog.Lookup(levelID)
	if err != nil {
		return Result{}, err
	}

	if !level.HasDecision() {
		if submitted != nil {
			return Result{}, fmt.Errorf("%w: level %q has no moral decision",
				model.ErrInvalidChoice, levelID)
		}
		return Result{Classification: None}, nil
	}

	if submitted == nil {
		return Result{Classification: None, Missing: true}, nil
	}

	switch *submitted {
	case level.Decision.Good:
		return Result{Classification: Good}, nil
	case level.Decision.Bad:
		return Result{Classification: Bad}, nil
	default:
		return Result{}, fmt.Errorf("%w: %q is not valid for level %q (expected %q or %q)",
			model.ErrInvalidChoice, *submitted, levelID,
			level.Decision.Good, level.Decision.Bad)
	}
}

// Classify is Validate for already-recorded choices; used when folding a
// finished session into player stats
func (v *Validator) Classify(levelID model.LevelID, recorded model.Choice) (Classification, error) {
	result, err := v.Validate(levelID, &recorded)
	if err != nil {
		return None, err
	}
	return result.Classification, nil
}
