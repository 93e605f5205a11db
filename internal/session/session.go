// Package session holds the state one operator session accumulates: the API
// base URL and the module catalog it last fetched.
package session

import (
	"strings"
	"sync"

	"github.com/jimezsa/jobposter/internal/models"
)

type Session struct {
	mu      sync.Mutex
	baseURL string
	modules []models.ModuleDescriptor
	fetched bool
}

func New(baseURL string) *Session {
	return &Session{baseURL: strings.TrimSpace(baseURL)}
}

func (s *Session) BaseURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseURL
}

// SetBaseURL switches the session to another API. The remembered catalog
// belonged to the previous API and is dropped.
func (s *Session) SetBaseURL(baseURL string) {
	baseURL = strings.TrimSpace(baseURL)
	s.mu.Lock()
	defer s.mu.Unlock()
	if baseURL == s.baseURL {
		return
	}
	s.baseURL = baseURL
	s.modules = nil
	s.fetched = false
}

// Remember stores a freshly fetched catalog, replacing the previous one.
func (s *Session) Remember(modules []models.ModuleDescriptor) {
	copied := make([]models.ModuleDescriptor, len(modules))
	copy(copied, modules)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.modules = copied
	s.fetched = true
}

// Modules returns the last fetched catalog and whether one was fetched at all.
func (s *Session) Modules() ([]models.ModuleDescriptor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ModuleDescriptor, len(s.modules))
	copy(out, s.modules)
	return out, s.fetched
}

func (s *Session) Module(id string) (models.ModuleDescriptor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, module := range s.modules {
		if module.ID == id {
			return module, true
		}
	}
	return models.ModuleDescriptor{}, false
}

// Unknown returns the ids not present in the remembered catalog, in input order.
// Without a fetched catalog nothing can be judged and the result is empty.
func (s *Session) Unknown(ids []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fetched {
		return nil
	}

	known := make(map[string]struct{}, len(s.modules))
	for _, module := range s.modules {
		known[module.ID] = struct{}{}
	}

	var unknown []string
	for _, id := range ids {
		if id == models.ModulesAll {
			continue
		}
		if _, ok := known[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	return unknown
}
