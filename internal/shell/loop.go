package shell

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Terminal is what the loop needs from the screen and keyboard.
type Terminal interface {
	Clear() error
	Print(s string) error
	// PrintError writes a line that reports a failure.
	PrintError(s string) error
	// ReadLine returns one line without its terminator, or io.EOF once
	// input is exhausted.
	ReadLine() (string, error)
	WaitForKey() error
}

// Run draws the current page, reads a line and submits it until the
// stack is empty. Any error ends the loop: the message is shown, the user
// presses a key and the error is returned. End of input ends the loop
// without an error.
func Run(ctx context.Context, s *Session, term Terminal, log logrus.FieldLogger) error {
	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := step(ctx, s, term)
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			log.Info("input closed")
			return nil
		}
		log.WithError(err).Error("loop stopped")
		report(term, err)
		return err
	}
	log.Info("board closed")
	return nil
}

func step(ctx context.Context, s *Session, term Terminal) error {
	if err := term.Clear(); err != nil {
		return fmt.Errorf("clear screen: %w", err)
	}
	frame, err := s.Frame(ctx)
	if err != nil {
		return err
	}
	if err := term.Print(frame); err != nil {
		return fmt.Errorf("print frame: %w", err)
	}
	line, err := term.ReadLine()
	if err != nil {
		return err
	}
	return s.Submit(ctx, line)
}

// report is best effort: the loop is already failing.
func report(term Terminal, err error) {
	_ = term.PrintError(fmt.Sprintf("Error rendering page: %v", err))
	_ = term.Print("Press any key to continue...\n")
	_ = term.WaitForKey()
}
