package response

import (
	"time"

	"github.com/sendagame/progress/internal/levels"
	"github.com/sendagame/progress/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID                   string      `json:"id"`
	DisplayName          string      `json:"display_name"`
	GamesPlayed          int         `json:"games_played"`
	GamesCompleted       int         `json:"games_completed"`
	TotalPlaytimeSeconds int64       `json:"total_playtime_seconds"`
	Stats                PlayerStats `json:"stats"`
	CreatedAt            time.Time   `json:"created_at"`
}

// PlayerStats is the aggregated stats block
type PlayerStats struct {
	TotalGoodChoices    int     `json:"total_good_choices"`
	TotalBadChoices     int     `json:"total_bad_choices"`
	TotalDeaths         int     `json:"total_deaths"`
	FavoriteRelic       *string `json:"favorite_relic,omitempty"`
	BestSpeedrunSeconds *int64  `json:"best_speedrun_seconds,omitempty"`
	MoralAlignment      float64 `json:"moral_alignment"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	stats := PlayerStats{
		TotalGoodChoices:    p.Stats.TotalGoodChoices,
		TotalBadChoices:     p.Stats.TotalBadChoices,
		TotalDeaths:         p.Stats.TotalDeaths,
		BestSpeedrunSeconds: p.Stats.BestSpeedrunSeconds,
		MoralAlignment:      p.Stats.MoralAlignment,
	}
	if p.Stats.FavoriteRelic != nil {
		relic := string(*p.Stats.FavoriteRelic)
		stats.FavoriteRelic = &relic
	}
	return Player{
		ID:                   string(p.ID),
		DisplayName:          p.DisplayName,
		GamesPlayed:          p.GamesPlayed,
		GamesCompleted:       p.GamesCompleted,
		TotalPlaytimeSeconds: p.TotalPlaytimeSeconds,
		Stats:                stats,
		CreatedAt:            p.CreatedAt,
	}
}

// GameMetrics is the per-session metrics block
type GameMetrics struct {
	TotalDeaths    int              `json:"total_deaths"`
	TimePerLevel   map[string]int64 `json:"time_per_level"`
	DeathsPerLevel map[string]int   `json:"deaths_per_level"`
}

// Game represents a game session in API responses. The internal level
// start instants are deliberately not part of this shape.
type Game struct {
	ID                   string            `json:"id"`
	PlayerID             string            `json:"player_id"`
	Status               string            `json:"status"`
	CurrentLevel         *string           `json:"current_level,omitempty"`
	LevelsCompleted      []string          `json:"levels_completed"`
	Choices              map[string]string `json:"choices"`
	Relics               []string          `json:"relics"`
	Metrics              GameMetrics       `json:"metrics"`
	TotalTimeSeconds     int64             `json:"total_time_seconds"`
	CompletionPercentage float64           `json:"completion_percentage"`
	StartedAt            time.Time         `json:"started_at"`
	EndedAt              *time.Time        `json:"ended_at,omitempty"`
}

// GameFromModel converts a model.GameSession to a response Game
func GameFromModel(s *model.GameSession) Game {
	g := Game{
		ID:                   string(s.ID),
		PlayerID:             string(s.PlayerID),
		Status:               string(s.Status),
		LevelsCompleted:      make([]string, 0, len(s.LevelsCompleted)),
		Choices:              make(map[string]string, len(s.Choices)),
		Relics:               make([]string, 0, len(s.Relics)),
		TotalTimeSeconds:     s.TotalTimeSeconds,
		CompletionPercentage: s.CompletionPercentage,
		StartedAt:            s.StartedAt,
		EndedAt:              s.EndedAt,
		Metrics: GameMetrics{
			TotalDeaths:    s.Metrics.TotalDeaths,
			TimePerLevel:   make(map[string]int64, len(s.Metrics.TimePerLevel)),
			DeathsPerLevel: make(map[string]int, len(s.Metrics.DeathsPerLevel)),
		},
	}
	if s.CurrentLevel != nil {
		level := string(*s.CurrentLevel)
		g.CurrentLevel = &level
	}
	for _, level := range s.LevelsCompleted {
		g.LevelsCompleted = append(g.LevelsCompleted, string(level))
	}
	for level, c := range s.Choices {
		g.Choices[string(level)] = string(c)
	}
	for _, relic := range s.Relics {
		g.Relics = append(g.Relics, string(relic))
	}
	for level, t := range s.Metrics.TimePerLevel {
		g.Metrics.TimePerLevel[string(level)] = t
	}
	for level, d := range s.Metrics.DeathsPerLevel {
		g.Metrics.DeathsPerLevel[string(level)] = d
	}
	return g
}

// Level represents a catalog entry in API responses
type Level struct {
	ID         string  `json:"id"`
	Ordinal    int     `json:"ordinal"`
	GoodChoice *string `json:"good_choice,omitempty"`
	BadChoice  *string `json:"bad_choice,omitempty"`
	Relic      *string `json:"relic,omitempty"`
}

// LevelFromCatalog converts a catalog level to a response Level
func LevelFromCatalog(l *levels.Level) Level {
	out := Level{
		ID:      string(l.ID),
		Ordinal: l.Ordinal,
	}
	if l.Decision != nil {
		good := string(l.Decision.Good)
		bad := string(l.Decision.Bad)
		out.GoodChoice = &good
		out.BadChoice = &bad
	}
	if l.Relic != nil {
		relic := string(*l.Relic)
		out.Relic = &relic
	}
	return out
}

// LevelsResponse lists the catalog in fixed order
type LevelsResponse struct {
	Levels []Level `json:"levels"`
}
