package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/mcoot/connectn/internal/model"
	"github.com/mcoot/connectn/internal/services/match"
)

// QuitCommand ends the match when typed at the column prompt
const QuitCommand = "x"

type readResult struct {
	line string
	err  error
}

// Input asks players for columns on a line-oriented terminal
type Input struct {
	in      io.Reader
	out     io.Writer
	palette Palette
	width   int

	once      sync.Once
	lines     chan readResult
	closeOnce sync.Once
	done      chan struct{}
	stopped   chan struct{}
}

var _ match.InputProvider = (*Input)(nil)

// NewInput creates an Input reading answers from in and writing prompts to out
func NewInput(in io.Reader, out io.Writer, palette Palette) *Input {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &Input{
		in:      in,
		out:     out,
		palette: palette,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Close stops the background reader. A read already blocked on the
// underlying reader ends when that reader returns.
func (i *Input) Close() error {
	i.closeOnce.Do(func() { close(i.done) })
	return nil
}

// GameStarted remembers the board width used in prompts
func (i *Input) GameStarted(ctx context.Context, rules model.Rules) error {
	i.width = rules.Width
	return ctx.Err()
}

// ChooseColumn prompts until the player enters a selectable 1-based column
// or the quit command. The returned column is 0-based.
func (i *Input) ChooseColumn(ctx context.Context, player int, board match.BoardQuery) (int, error) {
	for {
		if _, err := fmt.Fprintf(i.out, "%s - choose column (1-%d): ", i.palette.Label(player), i.width); err != nil {
			return 0, err
		}

		line, err := i.readLine(ctx)
		if err != nil {
			return 0, err
		}

		answer := strings.TrimSpace(line)
		if strings.EqualFold(answer, QuitCommand) {
			return 0, model.ErrQuit
		}
		if n, err := strconv.Atoi(answer); err == nil && board.CanSelectColumn(n-1) {
			return n - 1, nil
		}

		if _, err := fmt.Fprintln(i.out, "Please select proper column"); err != nil {
			return 0, err
		}
	}
}

// readLine waits for the next line or for ctx to finish. Lines are read on a
// single background goroutine so an abandoned wait does not lose input.
func (i *Input) readLine(ctx context.Context) (string, error) {
	i.once.Do(func() {
		i.lines = make(chan readResult)
		go i.scan()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-i.done:
		return "", io.EOF
	case res, ok := <-i.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}

func (i *Input) scan() {
	defer close(i.stopped)
	defer close(i.lines)

	scanner := bufio.NewScanner(i.in)
	for scanner.Scan() {
		if !i.send(readResult{line: scanner.Text()}) {
			return
		}
	}

	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	i.send(readResult{err: err})
}

// send hands a result to readLine, giving up once the input is closed
func (i *Input) send(res readResult) bool {
	select {
	case i.lines <- res:
		return true
	case <-i.done:
		return false
	}
}
