package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sendagame/progress/internal/dependencies/clock"
	"github.com/sendagame/progress/internal/dependencies/random"
	"github.com/sendagame/progress/internal/levels"
	"github.com/sendagame/progress/internal/model"
	"github.com/sendagame/progress/internal/services/choice"
	"github.com/sendagame/progress/internal/services/stats"
	"github.com/sendagame/progress/internal/services/timing"
	"github.com/sendagame/progress/internal/storage"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxSaveAttempts bounds optimistic-concurrency retries per operation
const maxSaveAttempts = 3

// CompleteLevelInput carries the client-submitted fields for CompleteLevel
type CompleteLevelInput struct {
	Level  model.LevelID
	Deaths int
	Choice *model.Choice
	Relic  *model.RelicID

	// DurationOverride is the deprecated manual duration path; the
	// server-computed duration is authoritative when nil
	DurationOverride *int64
}

// Controller orchestrates all game session mutation. It is the only
// component that combines the level catalog, duration clock and choice
// validator, and it owns the one-active-session-per-player invariant.
type Controller struct {
	storage storage.Storage
	catalog *levels.Catalog
	timing  *timing.Service
	choices *choice.Validator
	stats   *stats.Aggregator
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new lifecycle controller
func NewController(
	storage storage.Storage,
	catalog *levels.Catalog,
	timingService *timing.Service,
	choices *choice.Validator,
	aggregator *stats.Aggregator,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		catalog: catalog,
		timing:  timingService,
		choices: choices,
		stats:   aggregator,
		clock:   clk,
		random:  rnd,
		logger:  logger,
	}
}

// CreateGame starts a new session for the player, superseding any
// existing active session by abandoning it first. GamesPlayed increments
// here, at creation.
func (c *Controller) CreateGame(ctx context.Context, playerID model.PlayerID) (*model.GameSession, error) {
	if _, err := c.storage.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}

	session, err := c.createSession(ctx, playerID)
	if err != nil {
		c.logger.Error("failed to save new session",
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := c.updatePlayer(ctx, playerID, func(p *model.Player) error {
		p.GamesPlayed++
		return nil
	}); err != nil {
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("session_id", string(session.ID)),
		slog.String("player_id", string(playerID)),
	)

	return session, nil
}

// createSession supersedes the player's active session and saves a fresh
// in_progress one. Losing the create race to a concurrent session, either
// as a storage-level active conflict or a version conflict on the index,
// loops back through supersession; the race never surfaces to the caller.
func (c *Controller) createSession(ctx context.Context, playerID model.PlayerID) (*model.GameSession, error) {
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		if err := c.supersedeActive(ctx, playerID); err != nil {
			return nil, err
		}

		now := c.clock.Now()
		session := &model.GameSession{
			ID:       model.SessionID(c.random.String(12, idAlphabet)),
			PlayerID: playerID,
			Status:   model.SessionInProgress,
			Choices:  make(map[model.LevelID]model.Choice),
			Metrics: model.SessionMetrics{
				TimePerLevel:   make(map[model.LevelID]int64),
				DeathsPerLevel: make(map[model.LevelID]int),
			},
			LevelStartedAt: make(map[model.LevelID]time.Time),
			StartedAt:      now,
			UpdatedAt:      now,
		}

		err := c.storage.SaveSession(ctx, session)
		if errors.Is(err, model.ErrActiveSessionConflict) || errors.Is(err, model.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return session, nil
	}
	return nil, model.ErrActiveSessionConflict
}

// supersedeActive abandons the player's current active session if one
// exists. Losing the race to a concurrent save is retried; exactly one
// session ends up in_progress afterwards.
func (c *Controller) supersedeActive(ctx context.Context, playerID model.PlayerID) error {
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		active, err := c.storage.FindActiveSessionByPlayer(ctx, playerID)
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		now := c.clock.Now()
		active.Status = model.SessionAbandoned
		active.EndedAt = &now
		active.CurrentLevel = nil
		active.UpdatedAt = now

		err = c.storage.SaveSession(ctx, active)
		if errors.Is(err, model.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return err
		}

		c.logger.Info("active session superseded",
			slog.String("session_id", string(active.ID)),
			slog.String("player_id", string(playerID)),
		)
		return nil
	}
	return model.ErrActiveSessionConflict
}

// GetGame retrieves a session. Non-owners receive ErrForbidden rather
// than ErrSessionNotFound so existence is not leaked; admin reads bypass
// the ownership check.
func (c *Controller) GetGame(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, asAdmin bool) (*model.GameSession, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !asAdmin && session.PlayerID != playerID {
		return nil, model.ErrForbidden
	}
	return session, nil
}

// StartLevel records the start instant for a level. Restarting a
// not-yet-completed level resets its timer; restarting a completed level
// is rejected so recorded metrics are never reset.
func (c *Controller) StartLevel(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, levelID model.LevelID) (*model.GameSession, error) {
	return c.updateSession(ctx, sessionID, playerID, func(session *model.GameSession) error {
		if session.Status != model.SessionInProgress {
			return fmt.Errorf("%w: session is %s", model.ErrSessionNotActive, session.Status)
		}
		if _, err := c.catalog.Lookup(levelID); err != nil {
			return err
		}
		if session.HasCompletedLevel(levelID) {
			return fmt.Errorf("%w: %q", model.ErrLevelAlreadyCompleted, levelID)
		}

		now := c.clock.Now()
		level := levelID
		session.CurrentLevel = &level
		session.LevelStartedAt[levelID] = now
		session.UpdatedAt = now
		return nil
	})
}

// CompleteLevel validates the submission, computes the level duration and
// applies all session metrics. Every validation runs before any mutation,
// so a rejection leaves the session untouched.
func (c *Controller) CompleteLevel(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, input CompleteLevelInput) (*model.GameSession, error) {
	return c.updateSession(ctx, sessionID, playerID, func(session *model.GameSession) error {
		if session.Status != model.SessionInProgress {
			return fmt.Errorf("%w: session is %s", model.ErrSessionNotActive, session.Status)
		}
		if input.Deaths < 0 {
			return fmt.Errorf("%w: %d", model.ErrInvalidDeaths, input.Deaths)
		}
		level, err := c.catalog.Lookup(input.Level)
		if err != nil {
			return err
		}
		if session.HasCompletedLevel(input.Level) {
			return fmt.Errorf("%w: %q", model.ErrLevelAlreadyCompleted, input.Level)
		}

		choiceResult, err := c.choices.Validate(input.Level, input.Choice)
		if err != nil {
			return err
		}

		if input.Relic != nil {
			if level.Relic == nil || *level.Relic != *input.Relic {
				return fmt.Errorf("%w: %q is not the relic of level %q",
					model.ErrInvalidRelic, *input.Relic, input.Level)
			}
		}

		now := c.clock.Now()
		var duration int64
		if input.DurationOverride != nil {
			duration, err = c.timing.Override(*input.DurationOverride)
			if err != nil {
				return err
			}
		} else {
			var start *time.Time
			if t, ok := session.LevelStartedAt[input.Level]; ok {
				start = &t
			}
			duration = c.timing.Elapsed(start, now)
		}

		if choiceResult.Missing {
			c.logger.Warn("level completed without moral decision",
				slog.String("session_id", string(session.ID)),
				slog.String("level", string(input.Level)),
			)
		}

		session.LevelsCompleted = append(session.LevelsCompleted, input.Level)
		if input.Choice != nil {
			session.Choices[input.Level] = *input.Choice
		}
		if input.Relic != nil && !session.HasRelic(*input.Relic) {
			session.Relics = append(session.Relics, *input.Relic)
		}

		session.Metrics.TotalDeaths += input.Deaths
		session.Metrics.DeathsPerLevel[input.Level] = input.Deaths
		session.Metrics.TimePerLevel[input.Level] = duration

		var total int64
		for _, t := range session.Metrics.TimePerLevel {
			total += t
		}
		session.TotalTimeSeconds = total
		session.CompletionPercentage = c.catalog.CompletionPercentage(len(session.LevelsCompleted))

		session.CurrentLevel = nil
		delete(session.LevelStartedAt, input.Level)
		session.UpdatedAt = now
		return nil
	})
}

// CompleteGame finalizes the session and folds it into the player's
// stats. The completed status commits first; if aggregation then fails
// the session stays completed and the error wraps ErrStatsNotApplied so
// the caller can retry via ReapplyStats.
func (c *Controller) CompleteGame(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) (*model.GameSession, error) {
	session, err := c.updateSession(ctx, sessionID, playerID, func(session *model.GameSession) error {
		if session.Status != model.SessionInProgress {
			return fmt.Errorf("%w: session is %s", model.ErrSessionNotActive, session.Status)
		}

		now := c.clock.Now()
		session.Status = model.SessionCompleted
		session.EndedAt = &now
		session.CurrentLevel = nil
		// Only a full run reports 100; partial completions keep their
		// computed figure, no silent inflation
		if len(session.LevelsCompleted) == c.catalog.Len() {
			session.CompletionPercentage = 100
		}
		session.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("game completed",
		slog.String("session_id", string(session.ID)),
		slog.String("player_id", string(playerID)),
		slog.Int64("total_time_seconds", session.TotalTimeSeconds),
		slog.Float64("completion", session.CompletionPercentage),
	)

	if err := c.applyStats(ctx, session); err != nil {
		c.logger.Error("stats aggregation failed after completion",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return session, fmt.Errorf("%w: %w", model.ErrStatsNotApplied, err)
	}

	return session, nil
}

// AbandonGame finalizes the session without stats aggregation. Abandoned
// sessions count toward games played but nothing else.
func (c *Controller) AbandonGame(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) (*model.GameSession, error) {
	session, err := c.updateSession(ctx, sessionID, playerID, func(session *model.GameSession) error {
		if session.Status != model.SessionInProgress {
			return fmt.Errorf("%w: session is %s", model.ErrSessionNotActive, session.Status)
		}

		now := c.clock.Now()
		session.Status = model.SessionAbandoned
		session.EndedAt = &now
		session.CurrentLevel = nil
		session.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("game abandoned",
		slog.String("session_id", string(session.ID)),
		slog.String("player_id", string(playerID)),
	)

	return session, nil
}

// ReapplyStats retries aggregation for a completed session whose stats
// were never applied. Already-aggregated sessions are a no-op success, so
// the retry path is idempotent.
func (c *Controller) ReapplyStats(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) (*model.GameSession, error) {
	session, err := c.GetGame(ctx, sessionID, playerID, false)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionCompleted {
		return nil, fmt.Errorf("%w: session is %s", model.ErrSessionNotActive, session.Status)
	}
	if session.StatsAppliedAt != nil {
		return session, nil
	}

	if err := c.applyStats(ctx, session); err != nil {
		return session, fmt.Errorf("%w: %w", model.ErrStatsNotApplied, err)
	}
	return session, nil
}

// applyStats runs the player-side half of the completion saga. The
// applied-set entry commits in the same player save as the totals, so a
// retry that finds it present skips aggregation even when the session
// marker write below was lost.
func (c *Controller) applyStats(ctx context.Context, session *model.GameSession) error {
	if session.StatsAppliedAt != nil {
		return nil
	}

	if err := c.updatePlayer(ctx, session.PlayerID, func(p *model.Player) error {
		if p.HasAggregated(session.ID) {
			return nil
		}
		if err := c.stats.Apply(p, session); err != nil {
			return err
		}
		p.MarkAggregated(session.ID, c.clock.Now())
		return nil
	}); err != nil {
		return err
	}

	now := c.clock.Now()
	session.StatsAppliedAt = &now
	session.UpdatedAt = now
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("marking session aggregated: %w", err)
	}
	return nil
}

// updateSession is one optimistic read-modify-write of an owned session
func (c *Controller) updateSession(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, mutate func(*model.GameSession) error) (*model.GameSession, error) {
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		session, err := c.storage.GetSession(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if session.PlayerID != playerID {
			return nil, model.ErrForbidden
		}

		if err := mutate(session); err != nil {
			return nil, err
		}

		err = c.storage.SaveSession(ctx, session)
		if errors.Is(err, model.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return session, nil
	}
	return nil, model.ErrVersionConflict
}

// updatePlayer is one optimistic read-modify-write of a player record
func (c *Controller) updatePlayer(ctx context.Context, playerID model.PlayerID, mutate func(*model.Player) error) error {
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		player, err := c.storage.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}

		if err := mutate(player); err != nil {
			return err
		}
		player.UpdatedAt = c.clock.Now()

		err = c.storage.SavePlayer(ctx, player)
		if errors.Is(err, model.ErrVersionConflict) {
			continue
		}
		return err
	}
	return model.ErrVersionConflict
}
