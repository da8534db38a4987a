// Package cli implements the interactive terminal client: a small REPL
// over the server API, with menus for the account and record operations.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/recordkeeper/internal/client/api"
	"github.com/dmitrijs2005/recordkeeper/internal/client/config"
)

type App struct {
	config   *config.Config
	client   *api.Client
	userName string
	reader   *bufio.Reader
	out      *os.File
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		client: api.New(c.ServerBaseURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "RecordKeeper client. Type 'help' for commands.")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.client.IsLoggedIn()
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.userName
	}
	return "not logged in"
}
