// Package cli renders the member roster to a terminal through cobra commands.
package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Kerhoff/GymMembers/internal/client"
	"github.com/Kerhoff/GymMembers/internal/roster"
)

// App carries the collaborators shared by every command
type App struct {
	In         io.Reader
	Out        io.Writer
	Logger     *logrus.Logger
	HTTPClient *http.Client
	// IsTerminal reports whether In is interactive; delete prompts only then
	IsTerminal func() bool
	Now        func() time.Time

	apiURL  string
	timeout time.Duration
}

// NewApp returns an App bound to the process stdin/stdout
func NewApp(logger *logrus.Logger) *App {
	return &App{
		In:         os.Stdin,
		Out:        os.Stdout,
		Logger:     logger,
		IsTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		Now:        time.Now,
	}
}

// NewRootCommand builds the memberctl command tree
func (a *App) NewRootCommand(defaultURL string, defaultTimeout time.Duration) *cobra.Command {
	root := &cobra.Command{
		Use:           "memberctl",
		Short:         "Manage gym members through the member API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", defaultURL, "base URL of the member API")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", defaultTimeout, "per-request timeout")

	root.AddCommand(
		a.newListCommand(),
		a.newAddCommand(),
		a.newEditCommand(),
		a.newDeleteCommand(),
	)
	return root
}

// reconciler builds a fresh roster view over the configured API
func (a *App) reconciler() *roster.Reconciler {
	httpClient := a.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if a.timeout > 0 {
		c := *httpClient
		c.Timeout = a.timeout
		httpClient = &c
	}

	now := a.Now
	if now == nil {
		now = time.Now
	}
	return roster.New(client.New(a.apiURL, httpClient), a.Logger, roster.WithClock(now))
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}
