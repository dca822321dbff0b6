package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestTemplateDirs tests extraction of the fixed directory prefix from
// search-path templates.
func TestTemplateDirs(t *testing.T) {
	tests := []struct {
		name      string
		templates []string
		expected  []string
	}{
		{
			name:      "placeholder in filename",
			templates: []string{"/usr/share/hts-voice/$VOICE.htsvoice"},
			expected:  []string{"/usr/share/hts-voice"},
		},
		{
			name:      "placeholder directory cut off",
			templates: []string{"/usr/share/hts-voice/$VOICE/$VOICE.htsvoice"},
			expected:  []string{"/usr/share/hts-voice"},
		},
		{
			name: "duplicate prefixes collapsed",
			templates: []string{
				"/usr/share/hts-voice/$VOICE.htsvoice",
				"/usr/share/hts-voice/$VOICE/$VOICE.htsvoice",
			},
			expected: []string{"/usr/share/hts-voice"},
		},
		{
			name: "order preserved across distinct prefixes",
			templates: []string{
				"/opt/voices/$VOICE.htsvoice",
				"/usr/share/hts-voice/$VOICE.htsvoice",
			},
			expected: []string{"/opt/voices", "/usr/share/hts-voice"},
		},
		{
			name:      "placeholder directly under root",
			templates: []string{"/$VOICE.htsvoice"},
			expected:  []string{"/"},
		},
		{
			name:      "relative template",
			templates: []string{"voices/$VOICE.htsvoice"},
			expected:  []string{"voices"},
		},
		{
			name:      "bare filename template yields nothing",
			templates: []string{"$VOICE.htsvoice"},
			expected:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dirs := templateDirs(tt.templates)
			if len(dirs) != len(tt.expected) {
				t.Fatalf("templateDirs() = %v, want %v", dirs, tt.expected)
			}
			for i := range dirs {
				if dirs[i] != filepath.FromSlash(tt.expected[i]) {
					t.Errorf("dirs[%d] = %q, want %q", i, dirs[i], tt.expected[i])
				}
			}
		})
	}
}

// TestWatcherInvalidatesResolution tests that a voice file appearing on disk
// makes the very next request succeed without a manual invalidation.
func TestWatcherInvalidatesResolution(t *testing.T) {
	engine := &fakeEngine{dir: t.TempDir()}
	b, voiceDir := newTestBackend(t, engine, &fakeExtractor{track: testTrack()}, &fakeSink{})
	b.SetLanguage("ja")

	w, err := NewWatcher(b, []string{filepath.Join(voiceDir, "$VOICE.htsvoice")})
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	if err := b.Speak(context.Background(), "test"); !errors.Is(err, ErrVoiceUnresolved) {
		t.Fatalf("Speak() error = %v, want ErrVoiceUnresolved before file exists", err)
	}

	createVoiceFile(t, voiceDir, "nitech_jp_atr503_m001")

	// The create event arrives asynchronously.
	deadline := time.After(2 * time.Second)
	for {
		if err := b.Speak(context.Background(), "test"); err == nil {
			return
		}
		select {
		case <-deadline:
			t.Fatal("resolution never picked up the new voice file")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

// TestWatcherSkipsMissingDirs tests that nonexistent template directories do
// not fail construction.
func TestWatcherSkipsMissingDirs(t *testing.T) {
	b, voiceDir := newTestBackend(t, &fakeEngine{dir: t.TempDir()}, &fakeExtractor{track: testTrack()}, &fakeSink{})

	missing := filepath.Join(voiceDir, "does-not-exist", "$VOICE.htsvoice")
	w, err := NewWatcher(b, []string{missing})
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}

// TestWatcherCloseStopsEventLoop tests that Close returns after the event
// goroutine exits and is safe with a watched directory present.
func TestWatcherCloseStopsEventLoop(t *testing.T) {
	b, voiceDir := newTestBackend(t, &fakeEngine{dir: t.TempDir()}, &fakeExtractor{track: testTrack()}, &fakeSink{})
	if err := os.MkdirAll(voiceDir, 0o755); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(b, []string{filepath.Join(voiceDir, "$VOICE.htsvoice")})
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- w.Close() }()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Close() failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Close() did not return")
	}
}
