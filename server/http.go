package server

import (
	"encoding/json"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/gemblocks/level"
	"github.com/zucenko/gemblocks/model"
	"net/http"
	"strconv"
	"strings"
)

type levelPreview struct {
	Level          int            `json:"level"`
	GridSize       int            `json:"grid_size"`
	ScoreGoal      int            `json:"score_goal"`
	CurrencyReward int            `json:"currency_reward"`
	StoneGoal      map[string]int `json:"stone_goal"`
	StartGrid      []string       `json:"start_grid"`
	Blocks         []int          `json:"blocks"`
	Unplaced       int            `json:"unplaced,omitempty"`
}

type shapeInfo struct {
	Id    int      `json:"id"`
	Color string   `json:"color"`
	Mask  []string `json:"mask"`
}

type gemInfo struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	Goal bool   `json:"goal"`
}

type catalog struct {
	Shapes []shapeInfo `json:"shapes"`
	Gems   []gemInfo   `json:"gems"`
	Locked string      `json:"locked_color"`
}

func newLevelPreview(def model.LevelDefinition) levelPreview {
	p := levelPreview{
		Level:          def.Level,
		GridSize:       def.GridSize,
		ScoreGoal:      def.ScoreGoal,
		CurrencyReward: def.CurrencyReward,
		StoneGoal:      make(map[string]int, len(def.StoneGoal)),
		Blocks:         make([]int, len(def.Blocks)),
		Unplaced:       def.Unplaced,
	}
	for _, gem := range def.GoalGems() {
		p.StoneGoal[gem.Name()] = def.StoneGoal[gem]
	}
	for i, b := range def.Blocks {
		p.Blocks[i] = int(b.Shape)
	}
	p.StartGrid = strings.Fields(def.StartGrid.String())
	return p
}

func newCatalog() catalog {
	out := catalog{Locked: model.COLOR_LOCKED.Hex()}
	for _, s := range model.Shapes() {
		info := shapeInfo{Id: int(s.ID), Color: s.Color.Hex()}
		for _, row := range s.Mask {
			line := make([]byte, len(row))
			for c, filled := range row {
				line[c] = '0'
				if filled {
					line[c] = '1'
				}
			}
			info.Mask = append(info.Mask, string(line))
		}
		out.Shapes = append(out.Shapes, info)
	}
	for _, g := range model.Gems() {
		out.Gems = append(out.Gems, gemInfo{
			Id:   int(g.ID),
			Name: g.Name,
			Icon: g.Icon,
			Goal: int(g.ID) < model.GoalGemCount,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("writeJSON")
	}
}

// HandleLevel serves the definition of level :number. A level nobody has
// played yet is generated for the response only, never cached.
func (s *GameServer) HandleLevel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := strconv.Atoi(way.Param(r.Context(), "number"))
		if err != nil || n < 1 || n > level.MAX_LEVEL {
			w.WriteHeader(HTTP_BAD_REQUEST)
			return
		}
		writeJSON(w, newLevelPreview(s.Levels.Peek(n)))
	}
}

func (s *GameServer) HandleCatalog() http.HandlerFunc {
	cat := newCatalog()
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, cat)
	}
}
