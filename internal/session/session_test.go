package session

import (
	"reflect"
	"testing"

	"github.com/jimezsa/jobposter/internal/models"
)

var catalog = []models.ModuleDescriptor{
	{ID: "linkedin", Label: "LinkedIn"},
	{ID: "site", Label: "Careers site"},
}

func TestSessionRemember(t *testing.T) {
	s := New(" https://api.example.com ")
	if s.BaseURL() != "https://api.example.com" {
		t.Fatalf("BaseURL() = %q", s.BaseURL())
	}

	if modules, ok := s.Modules(); ok || len(modules) != 0 {
		t.Fatalf("Modules() = %v, %v, want nothing fetched", modules, ok)
	}

	s.Remember(catalog)
	modules, ok := s.Modules()
	if !ok || !reflect.DeepEqual(modules, catalog) {
		t.Fatalf("Modules() = %v, %v, want %v", modules, ok, catalog)
	}

	modules[0].ID = "changed"
	if module, ok := s.Module("linkedin"); !ok || module.Label != "LinkedIn" {
		t.Fatalf("Module(linkedin) = %+v, %v", module, ok)
	}
	if _, ok := s.Module("missing"); ok {
		t.Fatalf("Module(missing) ok = true")
	}
}

func TestSessionRememberEmptyCatalog(t *testing.T) {
	s := New("https://api.example.com")
	s.Remember(nil)

	modules, ok := s.Modules()
	if !ok || modules == nil || len(modules) != 0 {
		t.Fatalf("Modules() = %#v, %v, want fetched empty catalog", modules, ok)
	}
	if got := s.Unknown([]string{"linkedin"}); !reflect.DeepEqual(got, []string{"linkedin"}) {
		t.Fatalf("Unknown() = %v, want [linkedin]", got)
	}
}

func TestSessionUnknown(t *testing.T) {
	s := New("https://api.example.com")
	if got := s.Unknown([]string{"anything"}); got != nil {
		t.Fatalf("Unknown() before fetch = %v, want nil", got)
	}

	s.Remember(catalog)
	got := s.Unknown([]string{"site", "xing", "all", "linkedin", "indeed"})
	want := []string{"xing", "indeed"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Unknown() = %v, want %v", got, want)
	}
}

func TestSessionSetBaseURLDropsCatalog(t *testing.T) {
	s := New("https://a.example.com")
	s.Remember(catalog)

	s.SetBaseURL("https://a.example.com")
	if _, ok := s.Modules(); !ok {
		t.Fatalf("same base URL dropped the catalog")
	}

	s.SetBaseURL("https://b.example.com")
	if _, ok := s.Modules(); ok {
		t.Fatalf("Modules() ok = true after switching API")
	}
	if s.BaseURL() != "https://b.example.com" {
		t.Fatalf("BaseURL() = %q", s.BaseURL())
	}
}
