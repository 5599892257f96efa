package level_test

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/gemblocks/level"
	"github.com/zucenko/gemblocks/model"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
)

func newGenerator(opts level.Options, seed uint64) *level.Generator {
	return level.NewGenerator(opts, rand.New(rand.NewPCG(seed, seed)))
}

func countGems(g model.Grid) map[model.GemID]int {
	out := make(map[model.GemID]int)
	for _, cell := range g.Cells {
		if cell.HasGem {
			out[cell.Gem]++
		}
	}
	return out
}

func TestFormulas(t *testing.T) {
	tests := []struct {
		level, grid, score, reward, amount, types int
	}{
		{1, 5, 65, 80, 2, 1},
		{3, 5, 95, 90, 3, 1},
		{4, 6, 110, 95, 4, 1},
		{10, 7, 200, 125, 7, 1},
		{11, 7, 215, 130, 7, 2},
		{20, 10, 350, 175, 12, 2},
		{40, 10, 650, 275, 22, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.grid, level.GridSize(tt.level), "grid %d", tt.level)
		assert.Equal(t, tt.score, level.ScoreGoal(tt.level), "score %d", tt.level)
		assert.Equal(t, tt.reward, level.CurrencyReward(tt.level), "reward %d", tt.level)
		assert.Equal(t, tt.amount, level.GemAmount(tt.level), "amount %d", tt.level)
		assert.Equal(t, tt.types, level.GoalTypes(tt.level), "types %d", tt.level)
	}
}

func TestGenerate(t *testing.T) {
	g := newGenerator(level.DefaultOptions(), 7)
	for n := 1; n <= 30; n++ {
		def := g.Generate(n)
		assert.Equal(t, n, def.Level)
		assert.Equal(t, level.GridSize(n), def.GridSize)
		assert.Equal(t, def.GridSize, def.StartGrid.Size())
		assert.Equal(t, level.ScoreGoal(n), def.ScoreGoal)
		assert.Equal(t, level.CurrencyReward(n), def.CurrencyReward)

		require.NotEmpty(t, def.StoneGoal)
		assert.LessOrEqual(t, len(def.StoneGoal), level.GoalTypes(n))
		for gem, amount := range def.StoneGoal {
			assert.Less(t, int(gem), model.GoalGemCount)
			assert.Equal(t, level.GemAmount(n), amount)
		}

		assert.Zero(t, def.Unplaced)
		assert.Equal(t, def.StoneGoal, countGems(def.StartGrid))
		for _, cell := range def.StartGrid.Cells {
			if cell.Occupied {
				assert.True(t, cell.Locked)
				assert.Equal(t, model.COLOR_LOCKED, cell.Color)
			}
		}

		require.Len(t, def.Blocks, level.DEFAULT_SEQUENCE_LENGTH)
		for _, b := range def.Blocks {
			_, ok := model.ShapeByID(b.Shape)
			assert.True(t, ok)
			assert.Empty(t, b.Gems)
		}
	}
}

func TestGenerateClampsLevelNumber(t *testing.T) {
	def := newGenerator(level.DefaultOptions(), 1).Generate(0)
	assert.Equal(t, 1, def.Level)
}

func TestLevelNumbersAreClamped(t *testing.T) {
	assert.Equal(t, 1, level.ClampLevel(-4))
	assert.Equal(t, 17, level.ClampLevel(17))
	assert.Equal(t, level.MAX_LEVEL, level.ClampLevel(922337203685477580))

	huge := 922337203685477580
	assert.Equal(t, level.ScoreGoal(level.MAX_LEVEL), level.ScoreGoal(huge))
	assert.Positive(t, level.ScoreGoal(huge))
	assert.Positive(t, level.CurrencyReward(huge))
	assert.Equal(t, model.MAX_GRID_SIZE, level.GridSize(huge))

	def := newGenerator(level.DefaultOptions(), 1).Generate(huge)
	assert.Equal(t, level.MAX_LEVEL, def.Level)
	assert.Equal(t, level.ScoreGoal(level.MAX_LEVEL), def.ScoreGoal)
}

func TestScanFallbackFillsQuota(t *testing.T) {
	opts := level.DefaultOptions()
	opts.Attempts = 1
	def := newGenerator(opts, 3).Generate(9)
	assert.Zero(t, def.Unplaced)
	assert.Equal(t, def.StoneGoal, countGems(def.StartGrid))
}

func TestWithoutFallbackQuotaMayUnderfill(t *testing.T) {
	opts := level.DefaultOptions()
	opts.Attempts = 1
	opts.ScanFallback = false
	def := newGenerator(opts, 3).Generate(9)

	placed := 0
	for _, n := range countGems(def.StartGrid) {
		placed += n
	}
	assert.Equal(t, 1, placed)
	assert.Equal(t, level.GemAmount(9)-1, def.Unplaced)
}

func TestGridFullLeavesRemainderUnplaced(t *testing.T) {
	// level 200: 10x10 grid, two goal types of 102 each at most
	def := newGenerator(level.DefaultOptions(), 5).Generate(200)
	total := 0
	for _, n := range def.StoneGoal {
		total += n
	}
	assert.Equal(t, 100, def.StartGrid.Occupied())
	assert.Equal(t, total-100, def.Unplaced)
}

func TestSeededLevelsRepeat(t *testing.T) {
	opts := level.DefaultOptions()
	opts.SeedLevels = true
	a := newGenerator(opts, 1).Generate(12)
	b := newGenerator(opts, 2).Generate(12)
	assert.Equal(t, a, b)

	c := newGenerator(opts, 1).Generate(13)
	assert.NotEqual(t, a.Blocks, c.Blocks)
}

func TestSequenceLengthOption(t *testing.T) {
	opts := level.DefaultOptions()
	opts.SequenceLength = 4
	def := newGenerator(opts, 1).Generate(2)
	assert.Len(t, def.Blocks, 4)
}

func TestCacheReturnsSameDefinition(t *testing.T) {
	c := level.NewCache(newGenerator(level.DefaultOptions(), 11))
	a := c.Get(5)
	b := c.Get(5)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, c.Len())

	c.Forget(5)
	assert.Zero(t, c.Len())
	c.Get(-2)
	_ = c.Get(1)
	assert.Equal(t, 1, c.Len())
}

func TestCachePeekDoesNotStore(t *testing.T) {
	c := level.NewCache(newGenerator(level.DefaultOptions(), 11))
	def := c.Peek(8)
	assert.Equal(t, 8, def.Level)
	assert.Zero(t, c.Len())

	kept := c.Get(8)
	assert.Equal(t, kept, c.Peek(8))
	assert.Equal(t, 1, c.Len())

	c.Get(5000)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, level.MAX_LEVEL, c.Get(1_000_000).Level)
	assert.Equal(t, 2, c.Len(), "levels past the cap share one entry")
}

func TestCachePutShadowsGeneration(t *testing.T) {
	c := level.NewCache(newGenerator(level.DefaultOptions(), 11))
	def := model.LevelDefinition{Level: 2, GridSize: 5, ScoreGoal: 1, StartGrid: model.NewGrid(5)}
	c.Put(def)
	assert.Equal(t, def, c.Get(2))
}

const levelYAML = `
level: 3
score_goal: 120
currency_reward: 90
stone_goal: {2: 2}
start_grid: |
  ..2..
  .....
  ##.##
  .....
  ...2.
blocks:
  - shape: 0
  - shape: 7
    gems: [{row: 0, col: 0, gem: 2}]
`

func TestParseLevelFile(t *testing.T) {
	def, err := level.Parse([]byte(levelYAML), "inline")
	require.NoError(t, err)
	assert.Equal(t, 3, def.Level)
	assert.Equal(t, 5, def.GridSize)
	assert.Equal(t, 120, def.ScoreGoal)
	assert.Equal(t, 90, def.CurrencyReward)
	assert.Equal(t, map[model.GemID]int{model.GEM_EMERALD: 2}, def.StoneGoal)
	assert.Equal(t, 6, def.StartGrid.Occupied())
	assert.Equal(t, []model.BlockDraw{
		{Shape: model.SHAPE_I4},
		{Shape: model.SHAPE_DOT, Gems: []model.GemAttachment{{Row: 0, Col: 0, Gem: model.GEM_EMERALD}}},
	}, def.Blocks)
}

func TestParseLevelFileErrors(t *testing.T) {
	_, err := level.Parse([]byte("level: 0\nstart_grid: |\n  .....\n"), "zero")
	assert.Error(t, err)
	_, err = level.Parse([]byte("level: 1\nstart_grid: |\n  ...\n"), "small")
	assert.ErrorIs(t, err, model.ErrGridSize)
	_, err = level.Parse([]byte("level: [\n"), "junk")
	assert.Error(t, err)

	const grid5 = "start_grid: |\n  .....\n  .....\n  .....\n  .....\n  .....\n"
	for name, head := range map[string]string{
		"over cap":        "level: 1001\n",
		"negative score":  "level: 1\nscore_goal: -5\n",
		"stone goal":      "level: 1\nstone_goal: {5: 2}\n",
		"unknown gem":     "level: 1\nstone_goal: {9: 2}\n",
		"negative gem":    "level: 1\nstone_goal: {-1: 2}\n",
		"zero count":      "level: 1\nstone_goal: {2: 0}\n",
		"attachment gem":  "level: 1\nblocks: [{shape: 0, gems: [{row: 0, col: 0, gem: 6}]}]\n",
		"attachment cell": "level: 1\nblocks: [{shape: 0, gems: [{row: 3, col: 0, gem: 1}]}]\n",
	} {
		_, err := level.Parse([]byte(head+grid5), name)
		assert.Error(t, err, name)
	}

	def, err := level.Parse([]byte("level: 1\nblocks: [{shape: 99, gems: [{row: 5, col: 5, gem: 1}]}]\n"+grid5), "unknown shape")
	require.NoError(t, err, "unknown shapes are skipped at draw time")
	assert.Len(t, def.Blocks, 1)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	second := []byte("level: 2\nstart_grid: |\n" +
		"  .....\n  .....\n  .....\n  .....\n  .....\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(levelYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), second, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	defs, err := level.LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, 2, defs[0].Level)
	assert.Equal(t, 3, defs[1].Level)

	c := level.NewCache(newGenerator(level.DefaultOptions(), 1))
	c.Preload(defs)
	assert.Equal(t, 120, c.Get(3).ScoreGoal)
}
