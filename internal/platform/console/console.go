// Package console implements the line-oriented frontend: the player types
// commands such as "up" or "change 3" and the board is printed as text.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-sokoban/internal/game"
	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

const (
	prompt     = "Enter command: "
	msgUnknown = "Unknown input! Enter \"help\" to see valid commands."
	msgBye     = "Program terminated"
)

// errExit ends the command loop.
var errExit = errors.New("exit")

type command struct {
	names []string
	usage string
	help  string
	run   func(c *Console, args []string) error
}

// commands are matched case-insensitively on the first word of a line.
// The table is filled in init because help refers back to it.
var commands []command

func init() {
	commands = []command{
		{[]string{"up", "w"}, "up", "move up", moveCmd(sokoban.Up)},
		{[]string{"down", "s"}, "down", "move down", moveCmd(sokoban.Down)},
		{[]string{"left", "a"}, "left", "move left", moveCmd(sokoban.Left)},
		{[]string{"right", "d"}, "right", "move right", moveCmd(sokoban.Right)},
		{[]string{"reset"}, "reset", "restart the level", (*Console).reset},
		{[]string{"change"}, "change <n>", "go to level n", (*Console).change},
		{[]string{"next"}, "next", "go to the next level", (*Console).next},
		{[]string{"previous", "prev"}, "previous", "go to the previous level", (*Console).previous},
		{[]string{"save"}, "save [name]", "save the game", (*Console).save},
		{[]string{"load"}, "load [name]", "load a save, the newest by default", (*Console).load},
		{[]string{"info"}, "info", "show level information", (*Console).info},
		{[]string{"help", "?"}, "help", "show this message", (*Console).help},
		{[]string{"exit", "quit"}, "exit", "leave the game", func(*Console, []string) error { return errExit }},
	}
}

// winCommands are the only commands accepted while a level is solved.
var winCommands = map[string]bool{
	"reset": true, "next": true, "previous": true, "prev": true,
	"save": true, "load": true, "info": true, "help": true, "?": true, "exit": true, "quit": true,
}

func lookup(name string) *command {
	for i := range commands {
		for _, n := range commands[i].names {
			if n == name {
				return &commands[i]
			}
		}
	}
	return nil
}

// Console runs the command loop for one game.
type Console struct {
	game    *game.Game
	in      *bufio.Scanner
	out     io.Writer
	notices []sokoban.Notice
	effects []sokoban.Effect
}

func (c *Console) OnEffect(e sokoban.Effect) { c.effects = append(c.effects, e) }
func (c *Console) OnNotice(n sokoban.Notice) { c.notices = append(c.notices, n) }

// New creates a console reading commands from in and writing to out.
func New(g *game.Game, in io.Reader, out io.Writer) *Console {
	return &Console{
		game: g,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// Run prints the board and processes commands until "exit" or the end of
// input.
func (c *Console) Run() error {
	unsubscribe := c.game.Session().Subscribe(c)
	defer unsubscribe()

	c.printf("Console based view\n")
	if err := c.help(nil); err != nil {
		return err
	}
	c.drawBoard()

	for {
		if c.game.Session().Won() {
			c.printWinPrompt()
		} else {
			c.printf(prompt)
		}

		line, ok := c.readLine()
		if !ok {
			return c.in.Err()
		}
		err := c.exec(line)
		if errors.Is(err, errExit) {
			c.printf("%s\n", msgBye)
			return nil
		}
		if err != nil && !errors.Is(err, sokoban.ErrAtBoundary) {
			c.printf("Error: %v\n", err)
		}
		c.flush()
	}
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// exec runs one input line.
func (c *Console) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	if c.game.Session().Won() && !winCommands[name] {
		return nil // the win prompt is printed again
	}
	cmd := lookup(name)
	if cmd == nil {
		c.printf("%s\n", msgUnknown)
		return nil
	}
	return cmd.run(c, args)
}

// flush prints notices and applies the stuck restart.
func (c *Console) flush() {
	redraw := false
	stuck := false
	for _, e := range c.effects {
		switch e {
		case sokoban.EffectMove, sokoban.EffectPush, sokoban.EffectReset, sokoban.EffectLevel:
			redraw = true
		case sokoban.EffectStuck:
			stuck = true
		}
	}
	for _, n := range c.notices {
		if n.Text == sokoban.MsgWon {
			continue // covered by the win prompt
		}
		c.printf("%s\n", n.Text)
	}
	c.effects = c.effects[:0]
	c.notices = c.notices[:0]

	if stuck && c.game.Gameplay().AutoRestartOnStuck {
		c.game.Reset()
		c.effects = c.effects[:0]
		redraw = true
	}
	if redraw {
		c.drawBoard()
	}
}

func (c *Console) drawBoard() {
	l := c.game.Session().Active()
	c.printf("\n%s\n%s\n", c.game.Title(), l.String())
	c.printf("Moves: %d  Pushes: %d  Boxes: %d/%d\n\n", l.Moves(), l.Pushes(), l.BoxesOnGoal(), len(l.Boxes()))
}

func (c *Console) printWinPrompt() {
	c.printf("\nCongratulations!\n" +
		"To reset, enter \"reset\"\n" +
		"To change to the previous level, enter \"previous\"\n" +
		"To change to the next level, enter \"next\"\n" +
		prompt)
}

func (c *Console) printf(format string, args ...any) {
	//nolint:errcheck // Output errors surface as input EOF
	fmt.Fprintf(c.out, format, args...)
}

func moveCmd(d sokoban.Dir) func(*Console, []string) error {
	return func(c *Console, _ []string) error {
		c.game.Move(d)
		return nil
	}
}

func (c *Console) reset([]string) error {
	c.game.Reset()
	return nil
}

// change accepts the level number inline or asks for it.
func (c *Console) change(args []string) error {
	n := c.game.Session().Count()
	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		c.printf("There are %d levels to choose from, 1 to %d.\nEnter new level number: ", n, n)
		line, ok := c.readLine()
		if !ok {
			return errExit
		}
		raw = line
	}
	lvl, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("not a level number: %q", raw)
	}
	return c.game.ChangeLevel(lvl - 1)
}

func (c *Console) next([]string) error     { return c.game.Next() }
func (c *Console) previous([]string) error { return c.game.Previous() }

func (c *Console) save(args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	p, err := c.game.Save(name)
	if err != nil {
		return err
	}
	c.printf("Level saved successfully as %s\n", p)
	return nil
}

func (c *Console) load(args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	} else {
		saves, err := c.game.Saves()
		if err != nil {
			return err
		}
		for _, e := range saves {
			if e.Pack == c.game.PackID() {
				name = e.Name
				break
			}
		}
		if name == "" {
			return fmt.Errorf("no saves for pack %s", c.game.PackID())
		}
	}
	if err := c.game.Load(name); err != nil {
		return err
	}
	c.printf("Level loaded successfully.\n")
	c.drawBoard()
	return nil
}

func (c *Console) info([]string) error {
	c.printf("%s\n", c.game.Info())
	return nil
}

func (c *Console) help([]string) error {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "  %-14s %s", cmd.usage, cmd.help)
		if len(cmd.names) > 1 {
			fmt.Fprintf(&b, " (%s)", strings.Join(cmd.names[1:], ", "))
		}
		b.WriteString("\n")
	}
	c.printf("%s", b.String())
	return nil
}
