package speech

import (
	"fmt"
	"strings"
	"time"
)

// Config contains all speech backend configuration options.
type Config struct {
	// Engine settings. Environment variables override file values; a field
	// is only touched when its variable is actually set, defaults come
	// from DefaultConfig alone.
	EngineBinary  string `yaml:"engine_binary" env:"YOMIAGE_ENGINE_BINARY"`
	DictionaryDir string `yaml:"dictionary_dir" env:"YOMIAGE_DICTIONARY_DIR"`

	// SynthesisTimeout bounds a single engine run. Zero waits forever,
	// matching the engine's own behavior of never timing out.
	SynthesisTimeout time.Duration `yaml:"synthesis_timeout" env:"YOMIAGE_SYNTHESIS_TIMEOUT"`

	// VoiceSearchPaths are checked in order; each must contain the $VOICE
	// placeholder, substituted with a voice identifier before the
	// existence check.
	VoiceSearchPaths []string `yaml:"voice_search_paths" env:"YOMIAGE_VOICE_SEARCH_PATHS" envSeparator:":"`

	// WatchVoicePaths re-resolves the voice when model files appear or
	// disappear under the search-path directories.
	WatchVoicePaths bool `yaml:"watch_voice_paths" env:"YOMIAGE_WATCH_VOICE_PATHS"`

	// Voices declares the registered synthesis voices.
	Voices []VoiceConfig `yaml:"voices"`
}

// VoiceConfig declares one registered voice in the configuration file.
type VoiceConfig struct {
	Name     string `yaml:"name"`
	Language string `yaml:"language"`
	Type     string `yaml:"type"`
}

// DefaultConfig returns a Config with sensible defaults for a conventional
// Open JTalk installation.
func DefaultConfig() Config {
	return Config{
		EngineBinary:     "open_jtalk",
		DictionaryDir:    "/var/lib/mecab/dic/open-jtalk",
		SynthesisTimeout: 0,
		VoiceSearchPaths: []string{
			"/usr/share/hts-voice/$VOICE.htsvoice",
			"/usr/share/hts-voice/$VOICE/$VOICE.htsvoice",
		},
		Voices: []VoiceConfig{
			{Name: "nitech_jp_atr503_m001", Language: "ja", Type: "male1"},
			{Name: "mei_normal", Language: "ja", Type: "female1"},
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.EngineBinary == "" {
		return fmt.Errorf("%w: engine binary cannot be empty", ErrInvalidConfig)
	}

	if c.DictionaryDir == "" {
		return fmt.Errorf("%w: dictionary directory cannot be empty", ErrInvalidConfig)
	}

	if c.SynthesisTimeout < 0 {
		return fmt.Errorf("%w: synthesis timeout cannot be negative, got %v",
			ErrInvalidConfig, c.SynthesisTimeout)
	}

	for _, tmpl := range c.VoiceSearchPaths {
		if !strings.Contains(tmpl, VoicePlaceholder) {
			return fmt.Errorf("%w: search path %q is missing the %s placeholder",
				ErrInvalidConfig, tmpl, VoicePlaceholder)
		}
	}

	for _, v := range c.Voices {
		if v.Name == "" {
			return fmt.Errorf("%w: voice with empty name", ErrInvalidConfig)
		}
		if v.Language == "" {
			return fmt.Errorf("%w: voice %q has no language", ErrInvalidConfig, v.Name)
		}
		if _, err := ParseVoiceType(v.Type); err != nil {
			return fmt.Errorf("%w: voice %q: %v", ErrInvalidConfig, v.Name, err)
		}
	}

	return nil
}

// RegisteredVoices converts the declared voices into registry entries.
// Validate must have accepted the configuration first.
func (c *Config) RegisteredVoices() ([]Voice, error) {
	voices := make([]Voice, 0, len(c.Voices))
	for _, v := range c.Voices {
		t, err := ParseVoiceType(v.Type)
		if err != nil {
			return nil, fmt.Errorf("voice %q: %w", v.Name, err)
		}
		voices = append(voices, Voice{
			Name:     v.Name,
			Language: v.Language,
			Type:     t,
		})
	}
	return voices, nil
}
