package e2e

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dquisbert/cartera/internal/api"
	"github.com/dquisbert/cartera/internal/session"
	"github.com/dquisbert/cartera/internal/testutil"
	"github.com/dquisbert/cartera/internal/tokenstore"
	"github.com/dquisbert/cartera/internal/transactions"
)

// Env is a fully wired client stack talking to a scriptable backend,
// with the session persisted in a real file under t.TempDir.
type Env struct {
	Backend      *testutil.Backend
	Store        *tokenstore.FileStore
	StorePath    string
	Sessions     *session.Manager
	Transactions *transactions.Service

	// Reasons the session manager reported on teardown, in order
	EndReasons *[]string
}

// Serve builds the whole client stack against a fresh fake backend
func Serve(t *testing.T) *Env {
	t.Helper()

	backend := testutil.StartBackend(t)

	storePath := filepath.Join(t.TempDir(), "session.json")
	store, err := tokenstore.NewFileStore(storePath)
	require.NoError(t, err)

	client, err := api.New(api.Config{BaseURL: backend.URL(), Tokens: store})
	require.NoError(t, err)

	var reasons []string
	sessions, err := session.NewManager(session.Config{
		API:          client,
		Store:        store,
		OnSessionEnd: func(reason string) { reasons = append(reasons, reason) },
	})
	require.NoError(t, err)

	return &Env{
		Backend:      backend,
		Store:        store,
		StorePath:    storePath,
		Sessions:     sessions,
		Transactions: transactions.NewService(client),
		EndReasons:   &reasons,
	}
}

// Reopen rebuilds the stack on the same session file, as a new process
// launch would. The backend is shared with the original env.
func (e *Env) Reopen(t *testing.T) *Env {
	t.Helper()

	store, err := tokenstore.NewFileStore(e.StorePath)
	require.NoError(t, err)

	client, err := api.New(api.Config{BaseURL: e.Backend.URL(), Tokens: store})
	require.NoError(t, err)

	var reasons []string
	sessions, err := session.NewManager(session.Config{
		API:          client,
		Store:        store,
		OnSessionEnd: func(reason string) { reasons = append(reasons, reason) },
	})
	require.NoError(t, err)

	return &Env{
		Backend:      e.Backend,
		Store:        store,
		StorePath:    e.StorePath,
		Sessions:     sessions,
		Transactions: transactions.NewService(client),
		EndReasons:   &reasons,
	}
}
