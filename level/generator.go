package level

import (
	"github.com/zucenko/gemblocks/model"
	"math/rand/v2"
)

const (
	DEFAULT_ATTEMPTS        = 100
	DEFAULT_SEQUENCE_LENGTH = 30
	// MAX_LEVEL is the highest level number; larger numbers play this level.
	MAX_LEVEL = 1000
	// seedSalt keeps per-level seeds apart from other PCG users.
	seedSalt = 0x9e3779b97f4a7c15
)

type Options struct {
	// Attempts is the random cell budget per goal gem type.
	Attempts int `yaml:"attempts"`
	// ScanFallback places gems the random attempts missed on the first
	// free cells in row-major order.
	ScanFallback bool `yaml:"scan_fallback"`
	// SeedLevels derives the random source from the level number.
	SeedLevels     bool `yaml:"seed_levels"`
	SequenceLength int  `yaml:"sequence_length"`
}

func DefaultOptions() Options {
	return Options{
		Attempts:       DEFAULT_ATTEMPTS,
		ScanFallback:   true,
		SequenceLength: DEFAULT_SEQUENCE_LENGTH,
	}
}

type Generator struct {
	opts Options
	rng  *rand.Rand
}

// NewGenerator uses rng for unseeded levels; nil means a fresh random source.
func NewGenerator(opts Options, rng *rand.Rand) *Generator {
	if opts.Attempts <= 0 {
		opts.Attempts = DEFAULT_ATTEMPTS
	}
	if opts.SequenceLength <= 0 {
		opts.SequenceLength = DEFAULT_SEQUENCE_LENGTH
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{opts: opts, rng: rng}
}

func (g *Generator) Options() Options {
	return g.opts
}

// ClampLevel maps any level number into [1, MAX_LEVEL].
func ClampLevel(levelNumber int) int {
	return max(1, min(levelNumber, MAX_LEVEL))
}

func GridSize(levelNumber int) int {
	return min(model.MAX_GRID_SIZE, model.MIN_GRID_SIZE+ClampLevel(levelNumber)/4)
}

func ScoreGoal(levelNumber int) int {
	return 50 + ClampLevel(levelNumber)*15
}

func CurrencyReward(levelNumber int) int {
	return 75 + ClampLevel(levelNumber)*5
}

// GemAmount is the required count for each goal gem type.
func GemAmount(levelNumber int) int {
	return 2 + ClampLevel(levelNumber)/2
}

func GoalTypes(levelNumber int) int {
	if levelNumber > 10 {
		return 2
	}
	return 1
}

// Generate builds the definition for levelNumber, clamped by ClampLevel.
func (g *Generator) Generate(levelNumber int) model.LevelDefinition {
	levelNumber = ClampLevel(levelNumber)
	rng := g.rng
	if g.opts.SeedLevels {
		rng = rand.New(rand.NewPCG(uint64(levelNumber), seedSalt))
	}

	def := model.LevelDefinition{
		Level:          levelNumber,
		GridSize:       GridSize(levelNumber),
		ScoreGoal:      ScoreGoal(levelNumber),
		CurrencyReward: CurrencyReward(levelNumber),
		StoneGoal:      make(map[model.GemID]int),
	}

	// duplicate draws collapse into one goal
	for i := 0; i < GoalTypes(levelNumber); i++ {
		gem := model.GemID(rng.IntN(model.GoalGemCount))
		if _, ok := def.StoneGoal[gem]; !ok {
			def.StoneGoal[gem] = GemAmount(levelNumber)
		}
	}

	def.StartGrid = model.NewGrid(def.GridSize)
	for _, gem := range def.GoalGems() {
		def.Unplaced += g.placeGems(rng, def.StartGrid, gem, def.StoneGoal[gem])
	}

	def.Blocks = make([]model.BlockDraw, g.opts.SequenceLength)
	for i := range def.Blocks {
		def.Blocks[i] = model.BlockDraw{Shape: model.ShapeID(rng.IntN(int(model.ShapeCount)))}
	}
	return def
}

// placeGems drops amount locked gem cells and returns how many did not fit.
func (g *Generator) placeGems(rng *rand.Rand, grid model.Grid, gem model.GemID, amount int) int {
	side := grid.Size()
	for attempts := 0; amount > 0 && attempts < g.opts.Attempts; attempts++ {
		r, c := rng.IntN(side), rng.IntN(side)
		if grid.Empty(r, c) {
			grid.Set(r, c, model.LockedCell(gem, true))
			amount--
		}
	}
	if !g.opts.ScanFallback {
		return amount
	}
	for r := 0; r < side && amount > 0; r++ {
		for c := 0; c < side && amount > 0; c++ {
			if grid.Empty(r, c) {
				grid.Set(r, c, model.LockedCell(gem, true))
				amount--
			}
		}
	}
	return amount
}
