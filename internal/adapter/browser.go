package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// MoviePageBase is the public TMDB page prefix for a movie id
const MoviePageBase = "https://www.themoviedb.org/movie/"

// Browser opens catalog pages in an external browser
type Browser struct {
	command string // configured browser command, empty for system default
	args    []string
	goos    string
	start   func(name string, args ...string) error
	logger  *slog.Logger
}

// NewBrowser creates a Browser. command may carry arguments, e.g. "firefox --new-tab".
func NewBrowser(command string, logger *slog.Logger) *Browser {
	if logger == nil {
		logger = slog.Default()
	}

	fields := strings.Fields(command)
	b := &Browser{
		goos:   runtime.GOOS,
		start:  startCommand,
		logger: logger,
	}
	if len(fields) > 0 {
		b.command = fields[0]
		b.args = fields[1:]
	}
	return b
}

// MovieURL returns the TMDB page for a movie
func MovieURL(movieID int) string {
	return fmt.Sprintf("%s%d", MoviePageBase, movieID)
}

// OpenMovie opens the TMDB page for a movie
func (b *Browser) OpenMovie(movieID int) error {
	if movieID <= 0 {
		return fmt.Errorf("invalid movie id %d", movieID)
	}
	return b.Open(MovieURL(movieID))
}

// Open opens a URL in the configured browser or the system default
func (b *Browser) Open(url string) error {
	name, args := b.commandFor(url)
	b.logger.Info("opening browser", "command", name, "url", url)

	if err := b.start(name, args...); err != nil {
		b.logger.Error("failed to open browser", "command", name, "error", err)
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// commandFor builds the command line for url
func (b *Browser) commandFor(url string) (string, []string) {
	if b.command != "" {
		args := append(append([]string{}, b.args...), url)
		return b.command, args
	}

	switch b.goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{url}
	}
}

func startCommand(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	return exec.Command(name, args...).Start() // don't wait for the browser
}
