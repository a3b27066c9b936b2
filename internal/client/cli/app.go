package cli

import (
	"bufio"
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/amail/internal/client/client"
	"github.com/dmitrijs2005/amail/internal/client/config"
	"github.com/dmitrijs2005/amail/internal/client/services"
	"github.com/dmitrijs2005/amail/internal/filex"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	mailService services.MailService
	userName    string
	Mode        Mode
	reader      *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	if _, err := filex.EnsureParentDir(c.SessionFile); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.SessionFile)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient, err := client.NewAMailClientService(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, db)
	ms := services.NewMailService(apiClient)

	return &App{config: c, authService: as, mailService: ms, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

// Run resumes the saved session if there is one, starts the connectivity
// watcher and blocks in the REPL until the user leaves.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.authService.Close(context.Background())

	printlnFn("Welcome to AMail CLI (type 'help' for commands)")
	a.resume(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) resume(ctx context.Context) {
	name, err := a.authService.Resume(ctx)
	switch {
	case err == nil:
		a.userName = name
		a.setMode(ModeOnline)
		log.Printf("Session resumed for %s", name)
	case errors.Is(err, services.ErrNoSession):
	case errors.Is(err, client.ErrUnavailable):
		log.Printf("Server unavailable, session kept for later")
		a.setMode(ModeOffline)
	default:
		log.Printf("Saved session rejected: %s", err.Error())
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
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.authService.Ping(ctx)
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
