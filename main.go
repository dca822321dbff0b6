// Package main provides the entry point for the yomiage CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yomiage/yomiage/speech"
	"github.com/yomiage/yomiage/speech/engine/openjtalk"
	"github.com/yomiage/yomiage/speech/playback"
	"github.com/yomiage/yomiage/speech/wav"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	language   string
	voiceType  string
	voiceName  string
	listVoices bool
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "yomiage [TEXT]",
		Short: "Speak text aloud with Open JTalk",
		Long: "\nSpeak text aloud using the open_jtalk synthesis engine. " +
			"Text is taken from the argument, or from stdin when piped or when the argument is '-'.",
		SilenceErrors: false,
		SilenceUsage:  true,
		Args:          cobra.MaximumNArgs(1),
		RunE:          execute,
	}
)

// textFromArgs provides the utterance text from the argument or stdin.
func textFromArgs(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		if yes, err := stdinIsPipe(); err != nil {
			return "", err
		} else if !yes && len(args) == 0 {
			return "", errors.New("missing text to speak")
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("unable to read stdin: %w", err)
		}
		return string(data), nil
	}
	return args[0], nil
}

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to stat stdin: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

func execute(cmd *cobra.Command, args []string) error {
	if debug || viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}

	if cmd.Flags().Changed("config") {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg, err := speech.LoadConfig()
	if err != nil {
		return err
	}

	voices, err := cfg.RegisteredVoices()
	if err != nil {
		return err
	}
	registry := speech.NewStaticRegistry(voices)

	if listVoices {
		for _, v := range registry.List() {
			fmt.Printf("%-30s %-8s %s\n", v.Name, v.Language, v.Type)
		}
		return nil
	}

	text, err := textFromArgs(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("nothing to speak")
	}

	synth := openjtalk.New(cfg.EngineBinary, cfg.DictionaryDir, cfg.SynthesisTimeout)
	backend, err := speech.New(cfg, registry, synth, wav.NewReader(), playback.NewOtoSink())
	if err != nil {
		return err
	}

	if cfg.WatchVoicePaths {
		watcher, err := speech.NewWatcher(backend, cfg.VoiceSearchPaths)
		if err != nil {
			log.Warn("voice path watching disabled", "error", err)
		} else {
			defer watcher.Close() //nolint:errcheck
		}
	}

	backend.SetLanguage(language)
	if voiceType != "" {
		vt, err := speech.ParseVoiceType(voiceType)
		if err != nil {
			return err
		}
		backend.SetVoiceType(vt)
	}
	if voiceName != "" {
		backend.SetSynthesisVoice(voiceName)
	}

	return backend.Speak(cmd.Context(), text)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().StringVarP(&language, "language", "L", "ja", "language of the voice to speak with")
	rootCmd.Flags().StringVarP(&voiceType, "voice-type", "t", "", "voice type slot (male1..3, female1..3, child_male, child_female)")
	rootCmd.Flags().StringVarP(&voiceName, "voice", "V", "", "explicitly named synthesis voice")
	rootCmd.Flags().BoolVar(&listVoices, "list-voices", false, "list registered voices and exit")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Config bindings
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	speech.SetDefaults()

	rootCmd.AddCommand(configCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "yomiage")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "yomiage")}, dirs...)
	}

	if c := os.Getenv("YOMIAGE_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("yomiage")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("yomiage")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Println("Could not parse configuration file.")
			os.Exit(1)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		configFile = used
	}
}
