package rbac

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// FileSource loads role grants from a YAML file of the shape:
//
//	roles:
//	  content_manager:
//	    - sessions:read
//	    - content:read
//
// The file is read once at construction. Useful for deployments that
// version their grants alongside configuration instead of a database.
type FileSource struct {
	*MemorySource
}

type grantsFile struct {
	Roles map[string][]string `yaml:"roles"`
}

// NewFileSource parses the YAML grants file at path.
func NewFileSource(path string) (*FileSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrSourceFailure, err)
	}

	var parsed grantsFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, errors.Join(ErrSourceFailure, err)
	}

	for role, perms := range parsed.Roles {
		for _, p := range perms {
			if !IsKnownPermission(p) {
				return nil, errors.Join(ErrUnknownPermission, errors.New(role+": "+p))
			}
		}
	}

	return &FileSource{MemorySource: NewMemorySource(parsed.Roles)}, nil
}
