// Package console is a line-oriented output sink that can be shared by many
// goroutines.
//
// Every Say writes exactly one line with a single Write call while holding the
// sink's mutex, so lines from concurrent tasks never interleave. There is no
// ordering guarantee between goroutines beyond that.
//
// A Console is an ordinary value: create one and hand it to the tasks that
// need it instead of reaching for a package-level writer.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Console serializes line writes to an io.Writer.
type Console struct {
	mu         *sync.Mutex
	out        io.Writer
	prefix     string
	color      *color.Color
	timeLayout string
	now        func() time.Time
}

// Option configures a Console.
type Option func(*Console)

// WithPrefix prepends p to every line.
func WithPrefix(p string) Option {
	return func(c *Console) {
		c.prefix = p
	}
}

// WithColor renders every line with the given attributes. Colour output
// follows fatih/color's detection, so it is dropped when the output is not a
// terminal or NO_COLOR is set.
func WithColor(attrs ...color.Attribute) Option {
	return func(c *Console) {
		if len(attrs) > 0 {
			c.color = color.New(attrs...)
		}
	}
}

// WithTimestamp stamps every line with the current time in the given layout.
func WithTimestamp(layout string) Option {
	return func(c *Console) {
		c.timeLayout = layout
	}
}

// New creates a Console writing to out.
func New(out io.Writer, opts ...Option) *Console {
	c := &Console{
		mu:  &sync.Mutex{},
		out: out,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stdout creates a Console on os.Stdout. Every call creates a sink with its
// own lock; use With to give several writers their own prefix or colour while
// sharing one.
func Stdout(opts ...Option) *Console {
	return New(os.Stdout, opts...)
}

// With derives a Console that writes to the same output under the same lock,
// with opts applied on top of c's settings. Lines from c and from every view
// derived from it never interleave.
func (c *Console) With(opts ...Option) *Console {
	view := *c
	for _, opt := range opts {
		opt(&view)
	}
	return &view
}

// Say writes msg as one line. A trailing newline in msg is not duplicated.
func (c *Console) Say(msg string) {
	line := c.format(strings.TrimRight(msg, "\n"))

	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.out, line)
}

// Sayf formats according to a format specifier and writes the result as one line.
func (c *Console) Sayf(format string, args ...any) {
	c.Say(fmt.Sprintf(format, args...))
}

// Write implements io.Writer so a Console can back other writers such as a
// log.Logger. Each call is written as-is under the sink's lock.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.out.Write(p)
}

func (c *Console) format(msg string) string {
	var b strings.Builder
	if c.timeLayout != "" {
		b.WriteString(c.now().Format(c.timeLayout))
		b.WriteByte(' ')
	}
	b.WriteString(c.prefix)
	b.WriteString(msg)

	line := b.String()
	if c.color != nil {
		line = c.color.Sprint(line)
	}
	return line + "\n"
}
