// Package api talks to the job distribution API: it lists the publishing
// modules the API offers and submits job postings to it.
package api

import (
	"strings"
	"time"

	"github.com/jimezsa/jobposter/internal/network"
	"github.com/rs/zerolog"
)

const (
	modulesPath = "/api/modules"
	jobsPath    = "/api/jobs"

	defaultModulesTimeout = 20 * time.Second
	defaultSubmitTimeout  = 60 * time.Second
)

type Options struct {
	BaseURL        string
	ModulesTimeout time.Duration
	SubmitTimeout  time.Duration
	Logger         zerolog.Logger
}

type Client struct {
	doer           network.Doer
	baseURL        string
	modulesTimeout time.Duration
	submitTimeout  time.Duration
	logger         zerolog.Logger
}

func NewClient(doer network.Doer, opts Options) *Client {
	modulesTimeout := opts.ModulesTimeout
	if modulesTimeout <= 0 {
		modulesTimeout = defaultModulesTimeout
	}
	submitTimeout := opts.SubmitTimeout
	if submitTimeout <= 0 {
		submitTimeout = defaultSubmitTimeout
	}
	return &Client{
		doer:           doer,
		baseURL:        strings.TrimSpace(opts.BaseURL),
		modulesTimeout: modulesTimeout,
		submitTimeout:  submitTimeout,
		logger:         opts.Logger,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithBaseURL returns a copy of c that targets base instead.
func (c *Client) WithBaseURL(base string) *Client {
	clone := *c
	clone.baseURL = strings.TrimSpace(base)
	return &clone
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.baseURL, "/") + path
}
