package stats

import (
	"fmt"
	"log/slog"

	"github.com/sendagame/progress/internal/model"
	"github.com/sendagame/progress/internal/services/choice"
	"github.com/sendagame/progress/internal/services/morality"
)

// Aggregator folds finished sessions into a player's cumulative stats
type Aggregator struct {
	choices *choice.Validator
	logger  *slog.Logger
}

// New creates a new stats aggregator
func New(choices *choice.Validator, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		choices: choices,
		logger:  logger,
	}
}

// Apply mutates the player with a completed session's totals. It is pure
// in-memory aggregation; persisting both records is the caller's job.
// GamesPlayed is not touched here: it increments when the session is
// created, not when it completes.
func (a *Aggregator) Apply(player *model.Player, session *model.GameSession) error {
	if session.Status != model.SessionCompleted {
		return fmt.Errorf("%w: cannot aggregate a %s session",
			model.ErrSessionNotActive, session.Status)
	}

	good, bad, err := a.countChoices(session)
	if err != nil {
		return err
	}

	player.GamesCompleted++
	player.TotalPlaytimeSeconds += session.TotalTimeSeconds
	player.Stats.TotalDeaths += session.Metrics.TotalDeaths

	merged := morality.Merge(morality.Totals{
		Good:      player.Stats.TotalGoodChoices,
		Bad:       player.Stats.TotalBadChoices,
		Alignment: player.Stats.MoralAlignment,
	}, good, bad)
	player.Stats.TotalGoodChoices = merged.Good
	player.Stats.TotalBadChoices = merged.Bad
	player.Stats.MoralAlignment = merged.Alignment

	if best := player.Stats.BestSpeedrunSeconds; best == nil || session.TotalTimeSeconds < *best {
		t := session.TotalTimeSeconds
		player.Stats.BestSpeedrunSeconds = &t
	}

	// Last-write-wins: the most recently obtained relic this session
	if relic := session.LastRelic(); relic != nil {
		player.Stats.FavoriteRelic = relic
	}

	a.logger.Info("player stats aggregated",
		slog.String("player_id", string(player.ID)),
		slog.String("session_id", string(session.ID)),
		slog.Int("session_good", good),
		slog.Int("session_bad", bad),
		slog.Float64("alignment", player.Stats.MoralAlignment),
	)

	return nil
}

// countChoices classifies every recorded choice against the catalog
func (a *Aggregator) countChoices(session *model.GameSession) (good, bad int, err error) {
	for level, recorded := range session.Choices {
		classification, err := a.choices.Classify(level, recorded)
		if err != nil {
			return 0, 0, err
		}
		switch classification {
		case choice.Good:
			good++
		case choice.Bad:
			bad++
		}
	}
	return good, bad, nil
}
