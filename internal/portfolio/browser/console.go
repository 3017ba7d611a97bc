package browser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/gartstein/efportfolio/internal/portfolio/engine"
	"github.com/gartstein/efportfolio/internal/portfolio/models"
	"go.uber.org/zap"
)

const helpText = `Commands:
  search [text]        filter by name or description (no text clears)
  status [value|all]   active, inactive or acquired (no value clears)
  industry [tag]       filter by industry tag (no tag clears)
  industries           list the available industry tags
  sort <column>        name, status or year; repeat to flip direction
  open <id>            show company details and founders
  close                close the detail view
  stats                show summary statistics
  list                 redraw the table
  help                 show this help
  quit                 exit`

var errQuit = errors.New("quit")

// Console is a line oriented front end over a Store. Every state change
// redraws the screen.
type Console struct {
	store  *Store
	out    io.Writer
	outMu  sync.Mutex
	logger *zap.Logger
}

func NewConsole(store *Store, out io.Writer, logger *zap.Logger) *Console {
	c := &Console{
		store:  store,
		out:    out,
		logger: logger.Named("console"),
	}
	store.Subscribe(c.redraw)
	return c
}

// Run loads the snapshot and processes commands from in until quit, EOF or
// ctx cancellation.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	// A failed load is already part of the rendered state.
	_ = c.store.Load(ctx)

	scanner := bufio.NewScanner(in)
	for {
		c.write("> ")
		if !scanner.Scan() {
			c.write("\n")
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		if err := c.Exec(ctx, scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			c.write(fmt.Sprintf("error: %v\n", err))
		}
	}
}

// Exec runs one command line.
func (c *Console) Exec(ctx context.Context, line string) error {
	cmd, arg := splitCommand(line)
	switch cmd {
	case "":
		return nil
	case "search":
		c.store.SetSearch(arg)
	case "status":
		arg = strings.ToLower(arg)
		if arg == "" || arg == "all" {
			c.store.SetStatus("")
			return nil
		}
		status, err := models.ParseStatus(arg)
		if err != nil {
			return err
		}
		c.store.SetStatus(status)
	case "industry":
		c.store.SetIndustry(arg)
	case "industries":
		c.write(strings.Join(c.store.View().Industries, "\n") + "\n")
	case "sort":
		column, err := engine.ParseColumn(arg)
		if err != nil {
			return err
		}
		c.store.SortBy(column)
	case "open":
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("open needs a company id, got %q", arg)
		}
		return c.store.Select(ctx, id)
	case "close":
		c.store.CloseDetail()
	case "stats":
		c.outMu.Lock()
		defer c.outMu.Unlock()
		return RenderStats(c.out, c.store.View().Stats)
	case "list":
		c.redraw()
	case "help":
		c.write(helpText + "\n")
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

func (c *Console) redraw() {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	if err := Render(c.out, c.store.View()); err != nil {
		c.logger.Error("Failed to render", zap.Error(err))
	}
}

func (c *Console) write(s string) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	_, _ = io.WriteString(c.out, s)
}

func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	cmd, arg, _ := strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}
