package models

// ModuleDescriptor describes one publishing channel offered by the API.
type ModuleDescriptor struct {
	ID                  string   `json:"id"`
	Label               string   `json:"label"`
	RequiredFields      []string `json:"requiredFields"`
	RequiredCredentials []string `json:"requiredCredentials"`
}

// RequiresField reports whether the module declares name as a required field.
func (m ModuleDescriptor) RequiresField(name string) bool {
	return contains(m.RequiredFields, name)
}

// RequiresCredential reports whether the module declares name as a required credential.
func (m ModuleDescriptor) RequiresCredential(name string) bool {
	return contains(m.RequiredCredentials, name)
}

// ModuleIDs returns the ids of modules in catalog order.
func ModuleIDs(modules []ModuleDescriptor) []string {
	ids := make([]string, 0, len(modules))
	for _, module := range modules {
		ids = append(ids, module.ID)
	}
	return ids
}

func contains(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}
