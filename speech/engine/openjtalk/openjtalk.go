// Package openjtalk drives the open_jtalk binary as a subprocess. The
// exchange is text in over standard input, a WAV file out at a path the
// engine is told to write, and the exit status as the verdict.
package openjtalk

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yomiage/yomiage/speech"
)

// Engine implements speech.Engine using the open_jtalk command line tool.
type Engine struct {
	binary        string
	dictionaryDir string

	// timeout bounds a single synthesis run; zero waits forever, which is
	// what the original engine protocol assumes.
	timeout time.Duration
}

// New creates an engine for the given binary and MeCab dictionary directory.
func New(binary, dictionaryDir string, timeout time.Duration) *Engine {
	return &Engine{
		binary:        binary,
		dictionaryDir: dictionaryDir,
		timeout:       timeout,
	}
}

// Synthesize renders text with the given voice model into a temporary WAV
// file and returns its path. The subprocess wait is fully synchronous.
//
// The temporary file is created with owner-only permissions and the handle
// is released immediately; open_jtalk opens and writes the path itself. The
// caller owns removal of any non-empty returned path, including on error.
func (e *Engine) Synthesize(ctx context.Context, text, voicePath string) (string, error) {
	tmp, err := os.CreateTemp("", "yomiage-*.wav")
	if err != nil {
		return "", fmt.Errorf("%w: %v", speech.ErrTempFile, err)
	}
	outPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		return outPath, fmt.Errorf("%w: close: %v", speech.ErrTempFile, err)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.binary,
		"-x", e.dictionaryDir,
		"-m", voicePath,
		"-ow", outPath,
	)

	// Stdin must be wired before Start to avoid racing the subprocess.
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	// Engine children can inherit the pipes and keep them open past
	// cancellation or the engine's own exit; Wait must not block on them.
	cmd.WaitDelay = time.Second

	log.Debug("executing synthesis engine",
		"binary", e.binary,
		"dictionary", e.dictionaryDir,
		"voice", voicePath,
		"output", outPath)

	if err := cmd.Start(); err != nil {
		return outPath, fmt.Errorf("%w: %v", speech.ErrSpawnFailed, err)
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return outPath, fmt.Errorf("%w: timed out after %v", speech.ErrEngineExit, e.timeout)
		}
		if stderr.Len() > 0 {
			log.Debug("engine stderr", "output", stderr.String())
		}
		return outPath, fmt.Errorf("%w: %v", speech.ErrEngineExit, err)
	}

	return outPath, nil
}
