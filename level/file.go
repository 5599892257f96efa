package level

import (
	"fmt"
	"github.com/zucenko/gemblocks/model"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// levelFile is a hand-authored level:
//
//	level: 3
//	score_goal: 120
//	currency_reward: 90
//	stone_goal: {2: 3}
//	start_grid: |
//	  ..2..
//	  .....
//	  ...
//	blocks: [{shape: 0}, {shape: 7, gems: [{row: 0, col: 0, gem: 2}]}]
type levelFile struct {
	Level          int               `yaml:"level"`
	ScoreGoal      int               `yaml:"score_goal"`
	CurrencyReward int               `yaml:"currency_reward"`
	StoneGoal      map[int]int       `yaml:"stone_goal"`
	StartGrid      string            `yaml:"start_grid"`
	Blocks         []model.BlockDraw `yaml:"blocks"`
}

func LoadFile(path string) (model.LevelDefinition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return model.LevelDefinition{}, err
	}
	return Parse(b, path)
}

// Parse decodes a level file; name is only used in errors.
func Parse(b []byte, name string) (model.LevelDefinition, error) {
	var f levelFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return model.LevelDefinition{}, fmt.Errorf("level %s: %w", name, err)
	}
	if f.Level < 1 || f.Level > MAX_LEVEL {
		return model.LevelDefinition{}, fmt.Errorf("level %s: level number must be in 1..%d, got %d", name, MAX_LEVEL, f.Level)
	}
	if f.ScoreGoal < 0 || f.CurrencyReward < 0 {
		return model.LevelDefinition{}, fmt.Errorf("level %s: score_goal and currency_reward must not be negative", name)
	}
	for gem, n := range f.StoneGoal {
		if gem < 0 || gem >= model.GoalGemCount {
			return model.LevelDefinition{}, fmt.Errorf("level %s: stone_goal: gem %d is not a goal gem", name, gem)
		}
		if n <= 0 {
			return model.LevelDefinition{}, fmt.Errorf("level %s: stone_goal: gem %d needs a positive count, got %d", name, gem, n)
		}
	}
	for i, b := range f.Blocks {
		if err := checkAttachments(b); err != nil {
			return model.LevelDefinition{}, fmt.Errorf("level %s: blocks[%d]: %w", name, i, err)
		}
	}
	grid, err := model.ParseGrid(strings.NewReader(f.StartGrid))
	if err != nil {
		return model.LevelDefinition{}, fmt.Errorf("level %s: start_grid: %w", name, err)
	}

	def := model.LevelDefinition{
		Level:          f.Level,
		GridSize:       grid.Size(),
		ScoreGoal:      f.ScoreGoal,
		CurrencyReward: f.CurrencyReward,
		StoneGoal:      make(map[model.GemID]int, len(f.StoneGoal)),
		StartGrid:      grid,
		Blocks:         f.Blocks,
	}
	for gem, n := range f.StoneGoal {
		def.StoneGoal[model.GemID(gem)] = n
	}
	return def, nil
}

// checkAttachments keeps gems on filled cells of the block's shape.
// Unknown shapes are left to the draw, which skips them.
func checkAttachments(b model.BlockDraw) error {
	shape, ok := model.ShapeByID(b.Shape)
	if !ok {
		return nil
	}
	for _, g := range b.Gems {
		if _, ok := model.GemByID(g.Gem); !ok {
			return fmt.Errorf("unknown gem %d", g.Gem)
		}
		if !shape.Filled(g.Row, g.Col) {
			return fmt.Errorf("gem at %d,%d is off shape %d", g.Row, g.Col, b.Shape)
		}
	}
	return nil
}

// LoadDir reads every *.yaml file in dir, ordered by level number.
func LoadDir(dir string) ([]model.LevelDefinition, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	defs := make([]model.LevelDefinition, 0, len(paths))
	for _, p := range paths {
		def, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Level < defs[j].Level })
	return defs, nil
}

// Preload installs hand-authored levels into the cache.
func (c *Cache) Preload(defs []model.LevelDefinition) {
	for _, def := range defs {
		c.Put(def)
	}
}
