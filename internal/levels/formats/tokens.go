package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

// Token file layout: one token per line, rows separated by a line holding
// "next". A blank cell is an empty line or the literal "null".
const (
	TokenNext  = "next"
	TokenBlank = "null"

	TokenWall      = "wall"
	TokenGoal      = "redmarker"
	TokenPlayer    = "player"
	TokenBox       = "box"
	TokenBoxOnGoal = "boxmarked"
)

// Suffixes of the two files that make up a token level.
const (
	MapSuffix         = "_map.txt"
	InteractiveSuffix = "_interactive.txt"
)

// ParseTokens splits a token file into rows of tokens. Blank cells are
// returned as empty strings. Rows of different length are rejected.
func ParseTokens(data []byte) ([][]string, error) {
	var rows [][]string
	var row []string

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		tok := strings.TrimSpace(sc.Text())
		switch tok {
		case TokenNext:
			rows = append(rows, row)
			row = nil
		case TokenBlank:
			row = append(row, "")
		default:
			row = append(row, tok)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan tokens: %w", err)
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: no cells", sokoban.ErrMalformedLevel)
	}
	for y, r := range rows {
		if len(r) != len(rows[0]) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d",
				sokoban.ErrMalformedLevel, y, len(r), len(rows[0]))
		}
	}
	return rows, nil
}

// TileFromToken maps a static-layer token.
func TileFromToken(tok string) (sokoban.TileKind, error) {
	switch tok {
	case "", TokenBlank:
		return sokoban.TileEmpty, nil
	case TokenWall:
		return sokoban.TileWall, nil
	case TokenGoal:
		return sokoban.TileGoal, nil
	}
	return sokoban.TileEmpty, fmt.Errorf("%w: unknown static token %q", sokoban.ErrMalformedLevel, tok)
}

// EntityFromToken maps a dynamic-layer token.
func EntityFromToken(tok string) (sokoban.EntityKind, error) {
	switch tok {
	case "", TokenBlank:
		return sokoban.EntityEmpty, nil
	case TokenPlayer:
		return sokoban.EntityPlayer, nil
	case TokenBox:
		return sokoban.EntityBox, nil
	case TokenBoxOnGoal:
		return sokoban.EntityBoxOnGoal, nil
	}
	return sokoban.EntityEmpty, fmt.Errorf("%w: unknown dynamic token %q", sokoban.ErrMalformedLevel, tok)
}

// TileToken is the inverse of TileFromToken.
func TileToken(t sokoban.TileKind) string {
	switch t {
	case sokoban.TileWall:
		return TokenWall
	case sokoban.TileGoal:
		return TokenGoal
	}
	return TokenBlank
}

// EntityToken is the inverse of EntityFromToken.
func EntityToken(e sokoban.EntityKind) string {
	switch e {
	case sokoban.EntityPlayer:
		return TokenPlayer
	case sokoban.EntityBox:
		return TokenBox
	case sokoban.EntityBoxOnGoal:
		return TokenBoxOnGoal
	}
	return TokenBlank
}

// gridFromRows converts token rows into a grid using conv.
func gridFromRows[T comparable](rows [][]string, conv func(string) (T, error)) (*sokoban.Grid[T], error) {
	g := sokoban.NewGrid[T](len(rows[0]), len(rows))
	for y, r := range rows {
		for x, tok := range r {
			v, err := conv(tok)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", y, x, err)
			}
			if err := g.Set(sokoban.P(x, y), v); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// ParseTokenPair parses the static (map) and dynamic (interactive) token
// files of one level.
func ParseTokenPair(id string, mapData, interactiveData []byte) (Level, error) {
	staticRows, err := ParseTokens(mapData)
	if err != nil {
		return Level{}, fmt.Errorf("map layer: %w", err)
	}
	dynamicRows, err := ParseTokens(interactiveData)
	if err != nil {
		return Level{}, fmt.Errorf("interactive layer: %w", err)
	}
	return levelFromTokenRows(id, id, staticRows, dynamicRows)
}

func levelFromTokenRows(id, name string, staticRows, dynamicRows [][]string) (Level, error) {
	static, err := gridFromRows(staticRows, TileFromToken)
	if err != nil {
		return Level{}, fmt.Errorf("map layer: %w", err)
	}
	dynamic, err := gridFromRows(dynamicRows, EntityFromToken)
	if err != nil {
		return Level{}, fmt.Errorf("interactive layer: %w", err)
	}
	if static.Width() != dynamic.Width() || static.Height() != dynamic.Height() {
		return Level{}, fmt.Errorf("%w: map is %dx%d, interactive is %dx%d", sokoban.ErrMalformedLevel,
			static.Width(), static.Height(), dynamic.Width(), dynamic.Height())
	}
	return Level{ID: id, Name: name, Static: static, Dynamic: dynamic}, nil
}

// EncodeTokens writes a grid in token file layout.
func EncodeTokens[T comparable](g *sokoban.Grid[T], token func(T) string) []byte {
	var buf bytes.Buffer
	for y := 0; y < g.Height(); y++ {
		if y > 0 {
			buf.WriteString(TokenNext + "\n")
		}
		for x := 0; x < g.Width(); x++ {
			v, _ := g.Get(sokoban.P(x, y))
			buf.WriteString(token(v))
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}
