// Package cli implements the Furari command line client: auth commands,
// record commands, and a live watch view, all built on the shared client
// library. The session survives between invocations via the session file.
package cli

import (
	"bufio"
	"io"
	"os"

	"github.com/furari-app/furari/internal/client/client"
	"github.com/furari-app/furari/internal/client/config"
	"github.com/furari-app/furari/internal/client/geo"
	"github.com/furari-app/furari/internal/client/records"
	"github.com/furari-app/furari/internal/client/session"
	"github.com/furari-app/furari/internal/client/syncer"
)

// App wires the client stack together for the CLI commands.
type App struct {
	config   *config.Config
	api      *client.Client
	session  *session.Holder
	sync     *syncer.Synchronizer
	mutator  *records.Mutator
	locator  geo.Locator
	resolver *geo.Resolver
	store    *sessionStore

	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds the App and resolves the persisted session, so commands
// start knowing whether a user is signed in.
func NewApp(c *config.Config) (*App, error) {
	api := client.New(c.ServerBaseURL, c.RequestTimeout)
	store := newSessionStore(c.SessionFile)

	persisted, err := store.load()
	if err != nil {
		return nil, err
	}
	api.SetTokens(persisted.AccessToken, persisted.RefreshToken)
	api.OnTokensChanged(func(access, refresh string) {
		_ = store.setTokens(access, refresh)
	})

	holder := session.NewHolder(api)
	holder.Resolve(persisted.UserID, persisted.Email, persisted.hasTokens())

	sync := syncer.New(api, nil)
	// one user's records never bleed into the next session's view
	holder.OnPhaseChange(func(p session.Phase) {
		if p != session.PhaseAuthenticated {
			sync.Reset()
		}
	})

	return &App{
		config:   c,
		api:      api,
		session:  holder,
		sync:     sync,
		mutator:  records.NewMutator(api, holder, sync),
		locator:  geo.NewHTTPLocator(c.LocatorURL),
		resolver: geo.NewResolver(api),
		store:    store,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}
