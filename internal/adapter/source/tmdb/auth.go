package tmdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

const setupTimeout = 30 * time.Second

// Validate checks the client's API key against the authentication endpoint
func (c *Client) Validate(ctx context.Context) error {
	_, err := c.doRequest(ctx, "/authentication", nil)
	return err
}

// SetupFlow prompts for a TMDB API key on first run and verifies it
type SetupFlow struct {
	opts   Options
	out    io.Writer
	logger *slog.Logger

	// readKey reads the key without echoing it
	readKey func() ([]byte, error)
}

// NewSetupFlow creates a first-run setup flow that reads from the terminal
func NewSetupFlow(opts Options, logger *slog.Logger) *SetupFlow {
	if logger == nil {
		logger = slog.Default()
	}
	return &SetupFlow{
		opts:   opts,
		out:    os.Stdout,
		logger: logger,
		readKey: func() ([]byte, error) {
			return term.ReadPassword(int(os.Stdin.Fd()))
		},
	}
}

// Run asks for the API key (hidden input) and returns it once the catalog accepts it
func (f *SetupFlow) Run(ctx context.Context) (string, error) {
	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, "TMDB API Key")
	fmt.Fprintln(f.out, "━━━━━━━━━━━━")
	fmt.Fprintln(f.out, "Create a key at https://www.themoviedb.org/settings/api")
	fmt.Fprintln(f.out)

	fmt.Fprint(f.out, "API key: ")
	raw, err := f.readKey()
	if err != nil {
		return "", fmt.Errorf("failed to read api key: %w", err)
	}
	fmt.Fprintln(f.out) // Add newline after hidden input

	key := strings.TrimSpace(string(raw))
	if key == "" {
		return "", fmt.Errorf("api key cannot be empty")
	}

	fmt.Fprintln(f.out, "Verifying...")

	ctx, cancel := context.WithTimeout(ctx, setupTimeout)
	defer cancel()

	if err := NewClient(key, f.opts).Validate(ctx); err != nil {
		f.logger.Error("api key verification failed", "error", err)
		return "", err
	}

	fmt.Fprintln(f.out, "Key accepted!")
	return key, nil
}
