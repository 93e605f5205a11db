package api

import (
	"context"
	"errors"
	"reflect"
	"testing"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobposter/internal/models"
)

func TestFetchModules(t *testing.T) {
	doer := &fakeDoer{status: 200, body: `{
		"modules": [
			{"id": "linkedin", "label": "LinkedIn", "requiredFields": ["title", "title", "descriptionHTML"], "requiredCredentials": ["linkedin.token"]},
			{"id": "", "label": "Broken"},
			{"id": "site", "label": "Careers site"}
		]
	}`}
	client := newTestClient(doer, "https://api.example.com/")

	modules, err := client.FetchModules(context.Background())
	if err != nil {
		t.Fatalf("FetchModules() error = %v", err)
	}

	want := []models.ModuleDescriptor{
		{ID: "linkedin", Label: "LinkedIn", RequiredFields: []string{"title", "descriptionHTML"}, RequiredCredentials: []string{"linkedin.token"}},
		{ID: "site", Label: "Careers site", RequiredFields: []string{}, RequiredCredentials: []string{}},
	}
	if !reflect.DeepEqual(modules, want) {
		t.Fatalf("FetchModules() = %+v, want %+v", modules, want)
	}

	if len(doer.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(doer.requests))
	}
	req := doer.requests[0]
	if req.Method != fhttp.MethodGet {
		t.Fatalf("method = %s, want GET", req.Method)
	}
	if req.URL.String() != "https://api.example.com/api/modules" {
		t.Fatalf("url = %s", req.URL.String())
	}
}

func TestFetchModulesMissingKey(t *testing.T) {
	for _, body := range []string{`{}`, `{"modules": null}`, `{"modules": []}`} {
		client := newTestClient(&fakeDoer{status: 200, body: body}, "https://api.example.com")

		modules, err := client.FetchModules(context.Background())
		if err != nil {
			t.Fatalf("FetchModules(%s) error = %v", body, err)
		}
		if modules == nil || len(modules) != 0 {
			t.Fatalf("FetchModules(%s) = %#v, want empty non-nil", body, modules)
		}
	}
}

func TestFetchModulesFailures(t *testing.T) {
	cases := []struct {
		name   string
		doer   *fakeDoer
		kind   Kind
		status int
	}{
		{"transport", &fakeDoer{err: errRefused}, KindTransport, 0},
		{"server error", &fakeDoer{status: 503, body: "unavailable"}, KindStatus, 503},
		{"not found", &fakeDoer{status: 404, body: `{"error":"nope"}`}, KindStatus, 404},
		{"html body", &fakeDoer{status: 200, body: "<html>sleeping</html>"}, KindDecode, 200},
		{"wrong shape", &fakeDoer{status: 200, body: `{"modules": "all"}`}, KindDecode, 200},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(tc.doer, "https://api.example.com")

			modules, err := client.FetchModules(context.Background())
			if err == nil {
				t.Fatalf("FetchModules() = %v, want error", modules)
			}
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("FetchModules() error = %T, want *Error", err)
			}
			if apiErr.Kind != tc.kind || apiErr.StatusCode != tc.status {
				t.Fatalf("error kind/status = %s/%d, want %s/%d", apiErr.Kind, apiErr.StatusCode, tc.kind, tc.status)
			}
			if !IsKind(err, tc.kind) {
				t.Fatalf("IsKind(%s) = false", tc.kind)
			}
		})
	}
}

func TestFetchModulesTransportErrorUnwraps(t *testing.T) {
	client := newTestClient(&fakeDoer{err: errRefused}, "https://api.example.com")

	_, err := client.FetchModules(context.Background())
	if !errors.Is(err, errRefused) {
		t.Fatalf("FetchModules() error = %v, want wrapped %v", err, errRefused)
	}
}
