package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"repostats/internal/config"
	"strings"

	"golang.org/x/term"
)

// prompter asks for values missing from the config. readPassword reads a
// line without echo.
type prompter struct {
	in           *bufio.Reader
	out          io.Writer
	readPassword func() (string, error)
}

func newTerminalPrompter() *prompter {
	fd := int(os.Stdin.Fd())
	return &prompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stderr,
		readPassword: func() (string, error) {
			b, err := term.ReadPassword(fd)
			return string(b), err
		},
	}
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	s, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// Repo asks for the repository when none is configured.
func (p *prompter) Repo(c *config.Config) error {
	if strings.TrimSpace(c.Target.Repo) != "" {
		return nil
	}
	repo, err := p.line("Repository (owner/name)")
	if err != nil {
		return fmt.Errorf("read repository: %w", err)
	}
	c.Target.Repo = repo
	return nil
}

// Credentials asks for login and password. An empty login keeps the run
// unauthenticated and skips the password prompt.
func (p *prompter) Credentials(c *config.Config) error {
	if c.HasBasicAuth() {
		return nil
	}
	if c.Auth.Login == "" {
		login, err := p.line("GitHub login (empty for anonymous)")
		if err != nil {
			return fmt.Errorf("read login: %w", err)
		}
		if login == "" {
			return nil
		}
		c.Auth.Login = login
	}
	if c.Auth.Password == "" {
		fmt.Fprint(p.out, "Password: ")
		pw, err := p.readPassword()
		fmt.Fprintln(p.out)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		c.Auth.Password = pw
	}
	return nil
}
