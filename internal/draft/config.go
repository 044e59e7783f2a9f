package draft

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TeamConfig declares one league team and any picks it resolves automatically
// (keepers designated before the draft).
type TeamConfig struct {
	Name      TeamName   `yaml:"name"`
	SkipPicks []SkipPick `yaml:"skipPicks"`
}

// LeagueConfig is the static configuration a draft runs against. It is loaded
// once at startup; nothing in here changes while a draft is live.
type LeagueConfig struct {
	Rounds           int          `yaml:"rounds"`
	Teams            []TeamConfig `yaml:"teams"`
	FantasyLeagues   []string     `yaml:"fantasyLeagues"`
	MinGamesLastYear int          `yaml:"minGamesLastYear"`
	MinGamesThisYear int          `yaml:"minGamesThisYear"`
	AutoPickExcluded []string     `yaml:"autoPickExcluded"`
}

func LoadLeagueConfig(path string) (LeagueConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return LeagueConfig{}, fmt.Errorf("read league config: %w", err)
	}
	var cfg LeagueConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return LeagueConfig{}, fmt.Errorf("parse league config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return LeagueConfig{}, fmt.Errorf("invalid league config: %w", err)
	}
	return cfg, nil
}

func (c LeagueConfig) Validate() error {
	if c.Rounds < 1 {
		return fmt.Errorf("rounds must be >= 1, got %d", c.Rounds)
	}
	if len(c.Teams) == 0 {
		return fmt.Errorf("no teams configured")
	}
	seen := make(map[TeamName]bool, len(c.Teams))
	for _, t := range c.Teams {
		if t.Name == "" {
			return fmt.Errorf("team with empty name")
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate team name %q", t.Name)
		}
		seen[t.Name] = true
		for _, sp := range t.SkipPicks {
			if sp.Round < 1 || sp.Round > c.Rounds {
				return fmt.Errorf("team %q: skip pick round %d out of range 1..%d", t.Name, sp.Round, c.Rounds)
			}
		}
	}
	return nil
}
