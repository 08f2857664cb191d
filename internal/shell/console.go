package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// Console is the Terminal backed by a real stdin/stdout pair.
type Console struct {
	in     *os.File
	reader *bufio.Reader
	out    io.Writer
	alert  *color.Color
}

func NewConsole(in *os.File, out io.Writer) *Console {
	return &Console{
		in:     in,
		reader: bufio.NewReader(in),
		out:    out,
		alert:  color.New(color.FgRed, color.Bold),
	}
}

func (c *Console) Clear() error {
	_, err := io.WriteString(c.out, ansi.EraseEntireScreen+ansi.CursorHomePosition)
	return err
}

func (c *Console) Print(s string) error {
	_, err := io.WriteString(c.out, s)
	return err
}

func (c *Console) PrintError(s string) error {
	_, err := c.alert.Fprintln(c.out, s)
	return err
}

// ReadLine returns a final unterminated line before reporting io.EOF.
func (c *Console) ReadLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WaitForKey reads a single key in raw mode. When stdin is not a
// terminal it consumes a line instead.
func (c *Console) WaitForKey() error {
	if c.reader.Buffered() > 0 {
		_, err := c.reader.ReadByte()
		return err
	}
	fd := int(c.in.Fd())
	if !term.IsTerminal(fd) {
		_, err := c.reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(fd, state) //nolint:errcheck
	var key [1]byte
	_, err = c.in.Read(key[:])
	return err
}
