package speech

import (
	"context"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Backend sequences a speak request end to end: voice resolution, engine
// invocation, sample extraction, and playback hand-off. Requests are fully
// synchronous; a request completes before the next one is accepted, and the
// only blocking point is the engine subprocess wait.
//
// All selection state is per instance, so multiple independent backends can
// coexist in one process.
type Backend struct {
	cfg       Config
	registry  Registry
	resolver  *Resolver
	engine    Engine
	extractor Extractor
	sink      Sink

	// mu guards the selection and cached resolution; the voice-path
	// watcher invalidates the cache from its own goroutine.
	mu       sync.Mutex
	sel      Selection
	resolved string
	dirty    bool

	lastState RequestState
}

// New creates a backend over the given collaborators. It fails when the
// registry has no voices at all, since no request could ever succeed.
func New(cfg Config, registry Registry, engine Engine, extractor Extractor, sink Sink) (*Backend, error) {
	if len(registry.List()) == 0 {
		return nil, ErrNoVoicesConfigured
	}
	return &Backend{
		cfg:       cfg,
		registry:  registry,
		resolver:  NewResolver(cfg.VoiceSearchPaths, registry),
		engine:    engine,
		extractor: extractor,
		sink:      sink,
		dirty:     true,
		lastState: StateIdle,
	}, nil
}

// Voices returns the registered synthesis voices.
func (b *Backend) Voices() []Voice {
	return b.registry.List()
}

// SetLanguage sets the selection language.
func (b *Backend) SetLanguage(language string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sel.Language != language {
		log.Debug("language changed", "language", language)
		b.sel.Language = language
		b.dirty = true
	}
}

// SetVoiceType sets the selection voice type.
func (b *Backend) SetVoiceType(voiceType VoiceType) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sel.VoiceType != voiceType {
		log.Debug("voice type changed", "type", voiceType)
		b.sel.VoiceType = voiceType
		b.dirty = true
	}
}

// SetSynthesisVoice sets an explicitly named voice. An empty name returns
// the selection to language/type-based resolution.
func (b *Backend) SetSynthesisVoice(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sel.Name != name {
		log.Debug("synthesis voice changed", "name", name)
		b.sel.Name = name
		b.dirty = true
	}
}

// MarkResolutionDirty forces re-resolution before the next speak attempt.
// The voice-path watcher calls this when model files change on disk.
func (b *Backend) MarkResolutionDirty() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dirty = true
}

// resolveLocked refreshes the cached voice path if the selection changed
// since the last request. Resolution is lazy: it runs here, just before the
// synthesis attempt, never in the setters.
func (b *Backend) resolveLocked() string {
	if !b.dirty {
		return b.resolved
	}
	path, err := b.resolver.Resolve(b.sel)
	if err != nil {
		log.Debug("voice resolution failed",
			"language", b.sel.Language,
			"type", b.sel.VoiceType,
			"name", b.sel.Name,
			"error", err)
		path = ""
	}
	b.resolved = path
	b.dirty = false
	return path
}

// Speak synthesizes text and hands the resulting track to the sink. A failed
// request emits no audio, removes any temporary file it created, and reports
// a single error; the backend stays usable for the next request.
func (b *Backend) Speak(ctx context.Context, text string) error {
	sm := NewRequestStateMachine()
	defer func() { b.lastState = sm.Current() }()

	sm.Transition(StateParamsUpdated)

	b.mu.Lock()
	voicePath := b.resolveLocked()
	b.mu.Unlock()

	sm.Transition(StateVoiceChecked)
	if voicePath == "" {
		sm.Transition(StateFailed)
		return NewSpeakError(ErrVoiceUnresolved, "resolver", "resolve")
	}

	plain := StripSSML(text)
	log.Debug("speaking", "chars", len(plain), "voice", voicePath)

	sm.Transition(StateSynthesizing)
	outPath, err := b.engine.Synthesize(ctx, plain, voicePath)
	if outPath != "" {
		// Exactly one removal on every exit path after creation.
		defer func() {
			if rmErr := os.Remove(outPath); rmErr != nil {
				log.Warn("failed to remove output file", "path", outPath, "error", rmErr)
			}
		}()
	}
	if err != nil {
		sm.Transition(StateFailed)
		log.Error("synthesis failed", "error", err)
		return NewSpeakError(err, "engine", "synthesize")
	}

	sm.Transition(StateExtracting)
	track, err := b.extractor.Extract(outPath)
	if err != nil {
		sm.Transition(StateFailed)
		log.Error("extraction failed", "path", outPath, "error", err)
		return NewSpeakError(err, "extractor", "extract")
	}
	log.Debug("extracted track",
		"bits", track.Bits,
		"channels", track.Channels,
		"sampleRate", track.SampleRate,
		"numSamples", track.NumSamples)

	sm.Transition(StatePlayback)
	// Engine output is always native little-endian on supported platforms.
	if err := b.sink.Deliver(track, LittleEndian); err != nil {
		sm.Transition(StateFailed)
		log.Error("playback hand-off failed", "error", err)
		return NewSpeakError(err, "sink", "deliver")
	}

	sm.Transition(StateDone)
	return nil
}

// Pause is accepted but not supported mid-synthesis; it always returns the
// fixed sentinel and has no effect.
func (b *Backend) Pause() error {
	log.Debug("pausing (not supported)")
	return ErrPauseUnsupported
}

// Stop always reports success. It does not halt an in-flight engine
// subprocess; a running request completes on its own.
func (b *Backend) Stop() error {
	log.Debug("stopping (not supported)")
	return nil
}

// LastState returns the terminal state of the most recent request.
func (b *Backend) LastState() RequestState {
	return b.lastState
}
