package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/client"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// maxImageSize caps local files sent by the image command; the server
// enforces its own limit as well.
const maxImageSize = 5 << 20

type App struct {
	config   *config.Config
	client   client.Client
	userName string
	Mode     Mode
	reader   *bufio.Reader
	out      io.Writer
	now      func() time.Time
}

func NewApp(c *config.Config) (*App, error) {
	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	return newApp(c, apiClient, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, cl client.Client, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		client: cl,
		reader: bufio.NewReader(in),
		out:    out,
		now:    time.Now,
	}
}

func (app *App) setMode(mode Mode) {
	if app.Mode != mode {
		app.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	return s
}

// Run starts the connectivity watcher and the REPL, and signs out on exit.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Println("Welcome to PantryKeeper CLI (type 'help' for commands)")

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)

	if a.isLoggedIn() {
		_ = a.Logout(ctx, nil)
	}
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.client.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
