package cmd

import (
	"io"

	"github.com/jimezsa/jobposter/internal/api"
	"github.com/jimezsa/jobposter/internal/config"
	"github.com/jimezsa/jobposter/internal/network"
	"github.com/jimezsa/jobposter/internal/session"
	"github.com/jimezsa/jobposter/internal/ui"
	"github.com/rs/zerolog"
)

// DoerFactory builds an HTTP client routed through proxy, or directly when
// proxy is empty.
type DoerFactory func(proxy string) (network.Doer, error)

type Context struct {
	In         io.Reader
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode
	Doer       network.Doer
	NewDoer    DoerFactory
	Session    *session.Session
}

// APIClient returns a client for the session's current base URL.
func (c *Context) APIClient() *api.Client {
	return c.apiClient(c.Doer)
}

func (c *Context) apiClient(doer network.Doer) *api.Client {
	return api.NewClient(doer, api.Options{
		BaseURL:        c.Session.BaseURL(),
		ModulesTimeout: c.Config.ModulesTimeoutDuration(),
		SubmitTimeout:  c.Config.SubmitTimeoutDuration(),
		Logger:         c.Logger,
	})
}
