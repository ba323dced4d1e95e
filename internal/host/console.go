package host

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cory-johannsen/skirmish/internal/markup"
)

// Console is a line-based host over a reader and writer. It is both a Sink and
// a Prompter; invalid input is answered with a hint and asked again.
type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	render func(string) string
}

// NewConsole returns a Console. When color is false markup is stripped instead
// of rendered as ANSI.
func NewConsole(in io.Reader, out io.Writer, color bool) *Console {
	render := markup.Strip
	if color {
		render = markup.RenderANSI
	}
	return &Console{in: bufio.NewScanner(in), out: out, render: render}
}

// Emit writes line followed by a newline.
func (c *Console) Emit(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(c.out, c.render(line))
	return err
}

// Prompt prints the question and options, then reads numbers until one is in range.
func (c *Console) Prompt(ctx context.Context, req Request) (Response, error) {
	if err := c.Emit(ctx, req.Question); err != nil {
		return Response{}, err
	}
	for i, opt := range req.Options {
		if err := c.Emit(ctx, fmt.Sprintf("%d. %s", i+1, opt)); err != nil {
			return Response{}, err
		}
	}
	lo, hi := req.Bounds()
	span := fmt.Sprintf("%d-%d", lo, hi)
	for {
		if err := ctx.Err(); err != nil {
			return Response{}, err
		}
		if _, err := fmt.Fprintf(c.out, "[choose a number %s] ", span); err != nil {
			return Response{}, err
		}
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return Response{}, err
			}
			return Response{}, io.ErrUnexpectedEOF
		}
		n, err := strconv.Atoi(strings.TrimSpace(c.in.Text()))
		if err != nil {
			if err := c.Emit(ctx, fmt.Sprintf("Please choose a <red>number</red> %s! Try again.", span)); err != nil {
				return Response{}, err
			}
			continue
		}
		if n < lo || n > hi {
			if err := c.Emit(ctx, fmt.Sprintf("Please choose a number <red>%s</red>! Try again.", span)); err != nil {
				return Response{}, err
			}
			continue
		}
		if req.Kind == KindChoice {
			if err := c.Emit(ctx, " "); err != nil {
				return Response{}, err
			}
			return Response{Value: n - 1}, nil
		}
		return Response{Value: n}, nil
	}
}
