package levels

import (
	"fmt"

	"github.com/sendagame/progress/internal/model"
)

// Decision is the pair of valid moral-choice values for a level
type Decision struct {
	Good model.Choice
	Bad  model.Choice
}

// Level is one entry in the catalog
type Level struct {
	ID      model.LevelID
	Ordinal int

	// Decision is nil for levels with no moral choice
	Decision *Decision

	// Relic is nil for levels that yield no relic
	Relic *model.RelicID
}

// HasDecision returns true if the level carries a moral choice
func (l *Level) HasDecision() bool {
	return l.Decision != nil
}

// Catalog is the fixed, ordered set of levels. It is the single source of
// truth for which levels exist, which carry a decision, and which yield a
// relic; all other components consult it rather than hardcode level names.
type Catalog struct {
	ordered []model.LevelID
	byID    map[model.LevelID]*Level
}

// NewCatalog builds a catalog from levels in their fixed order
func NewCatalog(entries []Level) *Catalog {
	c := &Catalog{
		ordered: make([]model.LevelID, 0, len(entries)),
		byID:    make(map[model.LevelID]*Level, len(entries)),
	}
	for i := range entries {
		level := entries[i]
		level.Ordinal = i
		c.ordered = append(c.ordered, level.ID)
		c.byID[level.ID] = &level
	}
	return c
}

// Lookup returns the level entry, or ErrInvalidLevel for anything outside
// the fixed set
func (c *Catalog) Lookup(id model.LevelID) (*Level, error) {
	level, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidLevel, id)
	}
	return level, nil
}

// Contains reports whether the level exists in the catalog
func (c *Catalog) Contains(id model.LevelID) bool {
	_, ok := c.byID[id]
	return ok
}

// IDs returns the level identifiers in catalog order
func (c *Catalog) IDs() []model.LevelID {
	out := make([]model.LevelID, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the total number of levels
func (c *Catalog) Len() int {
	return len(c.ordered)
}

// CompletionPercentage derives the completion figure for a number of
// completed levels, always in [0, 100]
func (c *Catalog) CompletionPercentage(completed int) float64 {
	if len(c.ordered) == 0 {
		return 0
	}
	if completed > len(c.ordered) {
		completed = len(c.ordered)
	}
	return float64(completed) / float64(len(c.ordered)) * 100
}
