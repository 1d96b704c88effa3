package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case Game:
		o.printGame(v)
	case LevelList:
		o.printLevels(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID                   string      `json:"id"`
	DisplayName          string      `json:"display_name"`
	GamesPlayed          int         `json:"games_played"`
	GamesCompleted       int         `json:"games_completed"`
	TotalPlaytimeSeconds int64       `json:"total_playtime_seconds"`
	Stats                PlayerStats `json:"stats"`
}

// PlayerStats response type
type PlayerStats struct {
	TotalGoodChoices    int     `json:"total_good_choices"`
	TotalBadChoices     int     `json:"total_bad_choices"`
	TotalDeaths         int     `json:"total_deaths"`
	FavoriteRelic       *string `json:"favorite_relic"`
	BestSpeedrunSeconds *int64  `json:"best_speedrun_seconds"`
	MoralAlignment      float64 `json:"moral_alignment"`
}

// Game response type
type Game struct {
	ID                   string            `json:"id"`
	PlayerID             string            `json:"player_id"`
	Status               string            `json:"status"`
	CurrentLevel         *string           `json:"current_level"`
	LevelsCompleted      []string          `json:"levels_completed"`
	Choices              map[string]string `json:"choices"`
	Relics               []string          `json:"relics"`
	Metrics              GameMetrics       `json:"metrics"`
	TotalTimeSeconds     int64             `json:"total_time_seconds"`
	CompletionPercentage float64           `json:"completion_percentage"`
}

// GameMetrics response type
type GameMetrics struct {
	TotalDeaths    int              `json:"total_deaths"`
	TimePerLevel   map[string]int64 `json:"time_per_level"`
	DeathsPerLevel map[string]int   `json:"deaths_per_level"`
}

// Level response type
type Level struct {
	ID         string  `json:"id"`
	Ordinal    int     `json:"ordinal"`
	GoodChoice *string `json:"good_choice"`
	BadChoice  *string `json:"bad_choice"`
	Relic      *string `json:"relic"`
}

// LevelList response type
type LevelList struct {
	Levels []Level `json:"levels"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Games: %d played, %d completed\n", p.GamesPlayed, p.GamesCompleted)
	fmt.Printf("Playtime: %s\n", (time.Duration(p.TotalPlaytimeSeconds) * time.Second).String())
	fmt.Printf("Choices: %d good, %d bad (alignment %.2f)\n",
		p.Stats.TotalGoodChoices, p.Stats.TotalBadChoices, p.Stats.MoralAlignment)
	fmt.Printf("Deaths: %d\n", p.Stats.TotalDeaths)
	if p.Stats.FavoriteRelic != nil {
		fmt.Printf("Favorite Relic: %s\n", *p.Stats.FavoriteRelic)
	}
	if p.Stats.BestSpeedrunSeconds != nil {
		fmt.Printf("Best Speedrun: %ds\n", *p.Stats.BestSpeedrunSeconds)
	}
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Player: %s\n", g.PlayerID)
	fmt.Printf("Status: %s\n", g.Status)
	if g.CurrentLevel != nil {
		fmt.Printf("Current Level: %s\n", *g.CurrentLevel)
	}
	fmt.Printf("Completion: %.0f%%\n", g.CompletionPercentage)
	fmt.Printf("Total Time: %ds\n", g.TotalTimeSeconds)
	fmt.Printf("Deaths: %d\n", g.Metrics.TotalDeaths)

	if len(g.LevelsCompleted) > 0 {
		fmt.Println("Levels Completed:")
		for _, level := range g.LevelsCompleted {
			line := fmt.Sprintf("  - %s (%ds, %d deaths", level,
				g.Metrics.TimePerLevel[level], g.Metrics.DeathsPerLevel[level])
			if c, ok := g.Choices[level]; ok {
				line += fmt.Sprintf(", chose %q", c)
			}
			fmt.Println(line + ")")
		}
	}

	if len(g.Relics) > 0 {
		fmt.Printf("Relics: %s\n", strings.Join(g.Relics, ", "))
	}
}

func (o *Output) printLevels(l LevelList) {
	levels := append([]Level(nil), l.Levels...)
	sort.Slice(levels, func(i, j int) bool { return levels[i].Ordinal < levels[j].Ordinal })

	fmt.Printf("Levels (%d):\n", len(levels))
	for _, level := range levels {
		line := fmt.Sprintf("  %d. %s", level.Ordinal+1, level.ID)
		if level.GoodChoice != nil && level.BadChoice != nil {
			line += fmt.Sprintf(" [%s / %s]", *level.GoodChoice, *level.BadChoice)
		}
		if level.Relic != nil {
			line += fmt.Sprintf(" (relic: %s)", *level.Relic)
		}
		fmt.Println(line)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
