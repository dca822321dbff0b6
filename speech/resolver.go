package speech

import (
	"os"
	"strings"
)

// VoicePlaceholder is the token in a search-path template that gets replaced
// with the resolved voice identifier.
const VoicePlaceholder = "$VOICE"

// Selection is the current (language, voice type, explicit name) choice.
// An empty Name means the voice is picked from language and type.
type Selection struct {
	Language  string
	VoiceType VoiceType
	Name      string
}

// Resolver maps a selection plus an ordered list of search-path templates to
// a concrete, existing voice model file.
type Resolver struct {
	templates []string
	registry  Registry

	// exists is injected so template search stays testable without a real
	// filesystem.
	exists func(path string) bool
}

// NewResolver creates a resolver over the given templates. Template order
// encodes search priority.
func NewResolver(templates []string, registry Registry) *Resolver {
	return &Resolver{
		templates: templates,
		registry:  registry,
		exists:    fileExists,
	}
}

// Resolve returns the path of the first template whose substituted path
// exists for the selection's voice identifier.
//
// An explicitly named voice that is registered bypasses the
// (language, type) lookup. With no explicit name, an unset language fails
// before any lookup is attempted. No matching template yields
// ErrVoiceUnresolved.
func (r *Resolver) Resolve(sel Selection) (string, error) {
	identifier := ""
	if sel.Name != "" && r.registry.Exists(sel.Name) {
		identifier = sel.Name
	} else {
		if sel.Language == "" {
			return "", ErrNoLanguage
		}
		id, ok := r.registry.Lookup(sel.Language, sel.VoiceType)
		if !ok {
			return "", ErrVoiceUnresolved
		}
		identifier = id
	}

	for _, tmpl := range r.templates {
		path := strings.ReplaceAll(tmpl, VoicePlaceholder, identifier)
		if r.exists(path) {
			return path, nil
		}
	}
	return "", ErrVoiceUnresolved
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
