package formats

import (
	"fmt"

	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
	"gopkg.in/yaml.v3"
)

// YAMLLevel is the YAML structure of a level file. A level is either an
// XSB layout or a pair of token grids.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Layout   []string          `yaml:"layout,omitempty"`
	Static   [][]string        `yaml:"static,omitempty"`
	Dynamic  [][]string        `yaml:"dynamic,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("%w: yaml unmarshal: %v", sokoban.ErrMalformedLevel, err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("%w: missing id", sokoban.ErrMalformedLevel)
	}
	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	var level Level
	switch {
	case len(yl.Layout) > 0:
		static, dynamic, err := sokoban.SplitXSB(yl.Layout)
		if err != nil {
			return Level{}, fmt.Errorf("layout: %w", err)
		}
		level = Level{ID: yl.ID, Name: name, Static: static, Dynamic: dynamic}

	case len(yl.Static) > 0:
		if err := checkRows(yl.Static); err != nil {
			return Level{}, fmt.Errorf("static: %w", err)
		}
		if err := checkRows(yl.Dynamic); err != nil {
			return Level{}, fmt.Errorf("dynamic: %w", err)
		}
		var err error
		level, err = levelFromTokenRows(yl.ID, name, yl.Static, yl.Dynamic)
		if err != nil {
			return Level{}, err
		}

	default:
		return Level{}, fmt.Errorf("%w: level %s has neither layout nor static rows", sokoban.ErrMalformedLevel, yl.ID)
	}

	level.Metadata = yl.Metadata
	return level, nil
}

func checkRows(rows [][]string) error {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return fmt.Errorf("%w: no cells", sokoban.ErrMalformedLevel)
	}
	for y, r := range rows {
		if len(r) != len(rows[0]) {
			return fmt.Errorf("%w: row %d has %d cells, want %d", sokoban.ErrMalformedLevel, y, len(r), len(rows[0]))
		}
	}
	return nil
}

// EncodeYAML encodes a level as an XSB layout document.
func EncodeYAML(l Level) ([]byte, error) {
	layout := make([]string, l.Static.Height())
	for y := range layout {
		row := make([]byte, l.Static.Width())
		for x := range row {
			p := sokoban.P(x, y)
			t, _ := l.Static.Get(p)
			e, _ := l.Dynamic.Get(p)
			switch {
			case e == sokoban.EntityPlayer && t == sokoban.TileGoal:
				row[x] = '+'
			case e != sokoban.EntityEmpty:
				row[x] = e.Char()
			default:
				row[x] = t.Char()
			}
		}
		layout[y] = string(row)
	}
	return yaml.Marshal(YAMLLevel{ID: l.ID, Name: l.Name, Layout: layout, Metadata: l.Metadata})
}
