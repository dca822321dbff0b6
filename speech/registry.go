package speech

import "strings"

// StaticRegistry is a Registry backed by the voice list from configuration.
// It is immutable after construction.
type StaticRegistry struct {
	voices []Voice
}

// NewStaticRegistry creates a registry over the given voices.
func NewStaticRegistry(voices []Voice) *StaticRegistry {
	vs := make([]Voice, len(voices))
	copy(vs, voices)
	return &StaticRegistry{voices: vs}
}

// List returns all registered voices.
func (r *StaticRegistry) List() []Voice {
	vs := make([]Voice, len(r.voices))
	copy(vs, r.voices)
	return vs
}

// Lookup returns the identifier of the voice registered for the language and
// voice type. When the language has voices but none of the requested type,
// the first voice of that language is used instead, so a client asking for
// an unavailable slot still gets audio.
func (r *StaticRegistry) Lookup(language string, voiceType VoiceType) (string, bool) {
	fallback := ""
	for _, v := range r.voices {
		if !languageMatches(v.Language, language) {
			continue
		}
		if v.Type == voiceType {
			return v.Name, true
		}
		if fallback == "" {
			fallback = v.Name
		}
	}
	if fallback != "" {
		return fallback, true
	}
	return "", false
}

// Exists reports whether a voice with the given identifier is registered.
func (r *StaticRegistry) Exists(name string) bool {
	for _, v := range r.voices {
		if v.Name == name {
			return true
		}
	}
	return false
}

// languageMatches compares language tags case-insensitively, treating a bare
// primary tag as matching any of its regional variants ("ja" matches
// "ja-JP" and vice versa).
func languageMatches(registered, requested string) bool {
	reg := strings.ToLower(registered)
	req := strings.ToLower(requested)
	if reg == req {
		return true
	}
	return primaryTag(reg) == primaryTag(req)
}

func primaryTag(lang string) string {
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		return lang[:i]
	}
	return lang
}
