package speech

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// LoadConfig resolves the effective speech configuration: built-in defaults,
// then config-file values from Viper, then environment overrides. The
// environment layer is applied last so a YOMIAGE_* variable wins even when
// SetDefaults has registered the same key in Viper.
func LoadConfig() (Config, error) {
	cfg, err := LoadConfigFromViper(DefaultConfig())
	if err != nil {
		return cfg, err
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid environment override: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid speech configuration: %w", err)
	}
	return cfg, nil
}

// LoadConfigFromViper loads the speech configuration from Viper, layered on
// top of the given base.
func LoadConfigFromViper(base Config) (Config, error) {
	cfg := base

	if viper.IsSet("speech.engine_binary") {
		cfg.EngineBinary = viper.GetString("speech.engine_binary")
	}
	if viper.IsSet("speech.dictionary_dir") {
		cfg.DictionaryDir = viper.GetString("speech.dictionary_dir")
	}
	if viper.IsSet("speech.synthesis_timeout") {
		d, err := time.ParseDuration(viper.GetString("speech.synthesis_timeout"))
		if err != nil {
			return cfg, fmt.Errorf("%w: synthesis timeout: %v", ErrInvalidConfig, err)
		}
		cfg.SynthesisTimeout = d
	}
	if viper.IsSet("speech.voice_search_paths") {
		cfg.VoiceSearchPaths = viper.GetStringSlice("speech.voice_search_paths")
	}
	if viper.IsSet("speech.watch_voice_paths") {
		cfg.WatchVoicePaths = viper.GetBool("speech.watch_voice_paths")
	}
	if viper.IsSet("speech.voices") {
		var voices []VoiceConfig
		if err := viper.UnmarshalKey("speech.voices", &voices); err != nil {
			return cfg, fmt.Errorf("invalid speech.voices: %w", err)
		}
		cfg.Voices = voices
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid speech configuration: %w", err)
	}

	return cfg, nil
}

// SetDefaults sets default values in Viper for the speech configuration.
func SetDefaults() {
	defaults := DefaultConfig()

	viper.SetDefault("speech.engine_binary", defaults.EngineBinary)
	viper.SetDefault("speech.dictionary_dir", defaults.DictionaryDir)
	viper.SetDefault("speech.synthesis_timeout", defaults.SynthesisTimeout.String())
	viper.SetDefault("speech.voice_search_paths", defaults.VoiceSearchPaths)
	viper.SetDefault("speech.watch_voice_paths", defaults.WatchVoicePaths)
}
