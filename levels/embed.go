package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

//go:embed *.json
var LevelsFS embed.FS

// Kind selects the level's win condition.
const (
	KindArena   = "arena"
	KindCircuit = "circuit"
	KindWaves   = "waves"
	KindBoss    = "boss"
)

// Files lists the shipped levels in play order.
var Files = []string{
	"0_yard.json",
	"1_keep.json",
	"2_vault.json",
	"3_siege.json",
	"4_throne.json",
}

type Level struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	PlayerStart Point    `json:"player_start"`
	Walls       []Rect   `json:"walls,omitempty"`
	Gates       []Gate   `json:"gates,omitempty"`
	Entities    []Entity `json:"entities,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Gate is a wall segment that opens when its puzzle or wave fight is done.
type Gate struct {
	ID string `json:"id"`
	Rect
}

type Entity struct {
	Type  string                 `json:"type"`
	X     float64                `json:"x"`
	Y     float64                `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("level %s: invalid size %dx%d", name, lvl.Width, lvl.Height)
	}
	return &lvl, nil
}

// Load returns level n in play order.
func Load(n int) (*Level, error) {
	if n < 0 || n >= len(Files) {
		return nil, fmt.Errorf("level %d: out of range [0,%d)", n, len(Files))
	}
	return LoadLevelFromFS(Files[n])
}

func Count() int {
	return len(Files)
}

func (e Entity) String(key string) string {
	s, _ := e.Props[key].(string)
	return s
}

// Float reads a numeric prop; JSON numbers decode as float64.
func (e Entity) Float(key string, def float64) float64 {
	if v, ok := e.Props[key].(float64); ok {
		return v
	}
	return def
}

func (e Entity) Int(key string, def int) int {
	if v, ok := e.Props[key].(float64); ok {
		return int(v)
	}
	return def
}

func (e Entity) Bool(key string) bool {
	v, _ := e.Props[key].(bool)
	return v
}

func (e Entity) Strings(key string) []string {
	raw, _ := e.Props[key].([]interface{})
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Points reads a prop shaped like [[x, y], ...].
func (e Entity) Points(key string) [][2]float64 {
	raw, _ := e.Props[key].([]interface{})
	out := make([][2]float64, 0, len(raw))
	for _, v := range raw {
		pair, ok := v.([]interface{})
		if !ok || len(pair) != 2 {
			continue
		}
		x, okx := pair[0].(float64)
		y, oky := pair[1].(float64)
		if okx && oky {
			out = append(out, [2]float64{x, y})
		}
	}
	return out
}
