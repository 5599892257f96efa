package level

import (
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/gemblocks/model"
	"sync"
)

// Cache keeps one definition per level number for the process lifetime,
// so replaying a level replays the same grid and block sequence.
// It is shared between connections.
type Cache struct {
	mu        sync.RWMutex
	generator *Generator
	levels    map[int]model.LevelDefinition
}

func NewCache(generator *Generator) *Cache {
	return &Cache{
		generator: generator,
		levels:    make(map[int]model.LevelDefinition),
	}
}

// Get returns the cached definition, generating it on first use.
// The returned StartGrid is shared: clone it before playing.
func (c *Cache) Get(levelNumber int) model.LevelDefinition {
	levelNumber = ClampLevel(levelNumber)
	c.mu.RLock()
	def, ok := c.levels[levelNumber]
	c.mu.RUnlock()
	if ok {
		return def
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if def, ok := c.levels[levelNumber]; ok {
		return def
	}
	def = c.generator.Generate(levelNumber)
	c.levels[levelNumber] = def
	fields := log.Fields{
		"level": levelNumber,
		"grid":  def.GridSize,
		"goal":  def.ScoreGoal,
	}
	if def.Unplaced > 0 {
		log.WithFields(fields).Warnf("level generated with %d goal gems unplaced", def.Unplaced)
	} else {
		log.WithFields(fields).Info("level generated")
	}
	return def
}

// Peek returns the cached definition, or a freshly generated one that is
// not kept. Unseeded levels may differ from what a later Get caches.
func (c *Cache) Peek(levelNumber int) model.LevelDefinition {
	levelNumber = ClampLevel(levelNumber)
	c.mu.RLock()
	def, ok := c.levels[levelNumber]
	c.mu.RUnlock()
	if ok {
		return def
	}
	// the generator's random source is guarded by the write lock
	c.mu.Lock()
	defer c.mu.Unlock()
	if def, ok := c.levels[levelNumber]; ok {
		return def
	}
	return c.generator.Generate(levelNumber)
}

// Put installs a definition, replacing any generated one.
func (c *Cache) Put(def model.LevelDefinition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.levels[def.Level] = def
}

func (c *Cache) Forget(levelNumber int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.levels, levelNumber)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.levels)
}
