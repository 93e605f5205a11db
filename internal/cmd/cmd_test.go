package cmd

import (
	"bytes"
	"errors"
	"io"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobposter/internal/config"
	"github.com/jimezsa/jobposter/internal/network"
	"github.com/jimezsa/jobposter/internal/session"
	"github.com/jimezsa/jobposter/internal/ui"
	"github.com/rs/zerolog"
)

type fakeAPI struct {
	routes   map[string]fakeResponse
	err      error
	requests []string
	bodies   []string
}

type fakeResponse struct {
	status int
	body   string
}

func (f *fakeAPI) Do(req *fhttp.Request) (*fhttp.Response, error) {
	f.requests = append(f.requests, req.Method+" "+req.URL.String())
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		f.bodies = append(f.bodies, string(data))
	}
	if f.err != nil {
		return nil, f.err
	}
	resp, ok := f.routes[req.URL.Path]
	if !ok {
		resp = fakeResponse{status: 404, body: "not found"}
	}
	return &fhttp.Response{
		StatusCode: resp.status,
		Body:       io.NopCloser(strings.NewReader(resp.body)),
		Header:     fhttp.Header{},
	}, nil
}

type testContext struct {
	*Context
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newTestContext(doer *fakeAPI) testContext {
	var out, errOut bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.BaseURL = "https://api.example.com"
	return testContext{
		Context: &Context{
			In:      strings.NewReader(""),
			Out:     &out,
			Err:     &errOut,
			UI:      ui.New(&out, &errOut, ui.ColorNever, true),
			Config:  cfg,
			Logger:  zerolog.Nop(),
			Doer:    doer,
			NewDoer: func(string) (network.Doer, error) { return doer, nil },
			Session: session.New(cfg.BaseURL),
		},
		out:    &out,
		errOut: &errOut,
	}
}

const modulesBody = `{"modules": [
	{"id": "linkedin", "label": "LinkedIn", "requiredFields": ["title", "salary"], "requiredCredentials": ["linkedin.token"]},
	{"id": "site", "label": "Careers site"}
]}`

var errRefused = errors.New("connection refused")
