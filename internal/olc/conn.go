package olc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pixil98/go-olc/internal"
	"github.com/pixil98/go-olc/internal/commands"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	minNameLength = 2
	maxNameLength = 20
	maxNameTries  = 3
)

// lineFeed reads a connection on its own goroutine so the session loop can
// wait on input and notices together. Confirmation prompts read from the
// same feed.
type lineFeed struct {
	lines chan string
	done  chan struct{}
	// err is set before lines is closed.
	err error
}

func newLineFeed(r io.Reader) *lineFeed {
	f := &lineFeed{
		lines: make(chan string),
		done:  make(chan struct{}),
	}
	go func() {
		defer close(f.lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case f.lines <- strings.TrimRight(scanner.Text(), "\r"):
			case <-f.done:
				return
			}
		}
		f.err = scanner.Err()
	}()
	return f
}

func (f *lineFeed) ReadLine() (string, error) {
	line, ok := <-f.lines
	if !ok {
		return "", f.closedErr()
	}
	return line, nil
}

func (f *lineFeed) closedErr() error {
	if f.err != nil {
		return f.err
	}
	return io.EOF
}

func (f *lineFeed) stop() {
	close(f.done)
}

func login(in internal.LineReader, w io.Writer) (string, error) {
	name, err := internal.Prompt(in, w, "Who is editing? ",
		internal.WithMaxTries(maxNameTries),
		internal.WithValidator(validName))
	if err != nil {
		return "", err
	}
	return formatName(name), nil
}

func validName(str string) (bool, string) {
	if n := utf8.RuneCountInString(str); n < minNameLength || n > maxNameLength {
		return false, fmt.Sprintf("Names are %d to %d letters long.\n", minNameLength, maxNameLength)
	}
	for _, r := range str {
		if !unicode.IsLetter(r) {
			return false, "Names may only contain letters.\n"
		}
	}
	return true, ""
}

func formatName(name string) string {
	return cases.Title(language.Und).String(name)
}

func (m *Manager) run(ctx context.Context, s *Session, in *lineFeed) error {
	s.Send(fmt.Sprintf("Hello, %s. Type 'help' for a list of commands.", s.Name()))
	if err := prompt(s); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-s.Messages():
			s.Send("\n" + msg)
			if err := prompt(s); err != nil {
				return err
			}

		case line, ok := <-in.lines:
			if !ok {
				if err := in.closedErr(); !errors.Is(err, io.EOF) {
					return err
				}
				return nil
			}

			err := m.cmds.Exec(ctx, s, line)
			if err != nil {
				var userErr *commands.UserError
				if !errors.As(err, &userErr) {
					return fmt.Errorf("command execution failed: %w", err)
				}
				s.Send(userErr.Message)
			}

			if s.Quitting() {
				slog.InfoContext(ctx, "editor quit", "session", s.ID(), "name", s.Name())
				return nil
			}
			if err := prompt(s); err != nil {
				return err
			}
		}
	}
}

// prompt shows what the session is editing, if anything.
func prompt(s *Session) error {
	p := "olc> "
	if kind, vnum, ok := s.Editing(); ok {
		p = fmt.Sprintf("olc %s %d> ", kind, vnum)
	}
	_, err := s.Write([]byte(p))
	return err
}
