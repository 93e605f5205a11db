package payload

import (
	"fmt"
	"strings"

	"github.com/jimezsa/jobposter/internal/models"
)

// RequirementKind distinguishes required fields from required credentials.
type RequirementKind string

const (
	RequirementField      RequirementKind = "field"
	RequirementCredential RequirementKind = "credential"
)

// Missing is one module requirement absent from a payload.
type Missing struct {
	Module string
	Kind   RequirementKind
	Name   string
}

func (m Missing) String() string {
	return fmt.Sprintf("%s: missing %s %q", m.Module, m.Kind, m.Name)
}

// CheckRequirements lists the fields and credentials declared by the modules
// doc targets that doc does not carry. Only presence is checked. When doc
// selects "all", every module in catalog is checked; otherwise only the
// selected ids found in catalog are.
func CheckRequirements(doc Document, catalog []models.ModuleDescriptor) []Missing {
	fields, _ := doc["fields"].(map[string]any)
	credentials, _ := doc["credentials"].(map[string]any)

	var missing []Missing
	for _, module := range selectedModules(doc["modules"], catalog) {
		for _, name := range module.RequiredFields {
			if _, ok := lookupPath(fields, name); ok {
				continue
			}
			missing = append(missing, Missing{Module: module.ID, Kind: RequirementField, Name: name})
		}
		for _, name := range module.RequiredCredentials {
			if hasCredential(credentials, name) {
				continue
			}
			missing = append(missing, Missing{Module: module.ID, Kind: RequirementCredential, Name: name})
		}
	}
	return missing
}

func selectedModules(value any, catalog []models.ModuleDescriptor) []models.ModuleDescriptor {
	ids, ok := value.([]any)
	if !ok {
		if value == models.ModulesAll {
			return catalog
		}
		return nil
	}

	byID := make(map[string]models.ModuleDescriptor, len(catalog))
	for _, module := range catalog {
		byID[module.ID] = module
	}
	selected := make([]models.ModuleDescriptor, 0, len(ids))
	for _, raw := range ids {
		id, _ := raw.(string)
		if module, ok := byID[id]; ok {
			selected = append(selected, module)
		}
	}
	return selected
}

// lookupPath resolves a dotted path through nested objects. A numeric segment
// is not an index; sequences are searched element by element instead, so
// "addresses.country" is present when any address has a country.
func lookupPath(doc map[string]any, path string) (any, bool) {
	if doc == nil || path == "" {
		return nil, false
	}
	head, rest, nested := strings.Cut(path, ".")
	value, ok := Normalize(doc[head])
	if !ok {
		return nil, false
	}
	if !nested {
		return value, true
	}
	switch typed := value.(type) {
	case map[string]any:
		return lookupPath(typed, rest)
	case []any:
		for _, item := range typed {
			if obj, ok := item.(map[string]any); ok {
				if found, ok := lookupPath(obj, rest); ok {
					return found, true
				}
			}
		}
	}
	return nil, false
}

// hasCredential accepts "family.key" paths, or a bare key satisfied by any family.
func hasCredential(credentials map[string]any, name string) bool {
	if strings.Contains(name, ".") {
		_, ok := lookupPath(credentials, name)
		return ok
	}
	if _, ok := lookupPath(credentials, name); ok {
		return true
	}
	for _, family := range credentials {
		if obj, ok := family.(map[string]any); ok {
			if _, found := lookupPath(obj, name); found {
				return true
			}
		}
	}
	return false
}
