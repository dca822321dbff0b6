package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
)

const defaultConfig = `# Speech backend configuration
speech:
  # Synthesis engine binary
  engine_binary: "open_jtalk"
  # MeCab dictionary directory passed to the engine
  dictionary_dir: "/var/lib/mecab/dic/open-jtalk"
  # Bound on a single engine run; "0s" waits forever
  synthesis_timeout: "0s"
  # Voice model search paths, checked in order; $VOICE is replaced with the
  # resolved voice identifier
  voice_search_paths:
    - "/usr/share/hts-voice/$VOICE.htsvoice"
    - "/usr/share/hts-voice/$VOICE/$VOICE.htsvoice"
  # Re-resolve the voice when model files change on disk
  watch_voice_paths: false
  # Registered synthesis voices
  voices:
    - name: "nitech_jp_atr503_m001"
      language: "ja"
      type: "male1"
    - name: "mei_normal"
      language: "ja"
      type: "female1"
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the yomiage config file",
	Long:    "\nEdit the yomiage config file. We'll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.",
	Example: "yomiage config\nyomiage config --config path/to/yomiage.yml",
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("yomiage", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		scope := gap.NewScope(gap.User, "yomiage")
		p, err := scope.ConfigPath("yomiage.yml")
		if err != nil {
			return fmt.Errorf("could not determine configuration path: %w", err)
		}
		configFile = p
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil { // some other error occurred
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
