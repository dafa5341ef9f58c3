package cmd

import (
	"fmt"

	"invoicectl/internal/api"
	"invoicectl/internal/config"
	"invoicectl/internal/localdata"
	"invoicectl/internal/session"
	"invoicectl/internal/store"
)

// app wires configuration, session, backend and stores for one command
// invocation. The client var is nil in local mode; commands that need the
// remote backend (auth, PDF, email) check via requireAPI.
type app struct {
	cfg      *config.Config
	sess     *session.Session
	client   *api.Client
	invoices *store.InvoiceStore
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	sess, err := session.Load(cfg.SessionFile)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, sess: sess}

	var backend store.Backend
	switch cfg.Backend {
	case config.BackendLocal:
		local, err := localdata.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		backend = local
	default:
		a.client = api.NewClient(cfg.APIURL, sess)
		backend = a.client
	}

	a.invoices = store.NewInvoiceStore(backend, cfg.PageSize)
	return a, nil
}

// requireAPI returns the gateway or an instructive error in local mode.
func (a *app) requireAPI(feature string) (*api.Client, error) {
	if a.client == nil {
		return nil, fmt.Errorf("%s requires INVOICE_BACKEND=api", feature)
	}
	return a.client, nil
}

// auth builds the auth store; authentication only exists against the
// remote backend.
func (a *app) auth() (*store.AuthStore, error) {
	client, err := a.requireAPI("authentication")
	if err != nil {
		return nil, err
	}
	return store.NewAuthStore(client, a.sess), nil
}
