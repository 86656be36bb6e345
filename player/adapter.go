package player

import (
	"sync"

	"github.com/google/uuid"
	"github.com/leanback-cli/leanback/log"
)

// Adapter keeps at most one live Instance and swaps it when the video changes.
// All methods are safe for concurrent use. Callbacks run on the instance's event goroutine.
type Adapter struct {
	factory Factory

	mu          sync.Mutex
	current     Instance
	seq         uint64
	videoID     string
	containerID string
	ready       bool
	playing     bool
	fullscreen  bool

	// OnReady is called when the current video can be controlled.
	OnReady func(videoID string)
	// OnEnded is called when the current video ended or turned out to be unplayable.
	OnEnded func(videoID string)
}

func NewAdapter(factory Factory, fullscreen bool) *Adapter {
	return &Adapter{
		factory:    factory,
		fullscreen: fullscreen,
	}
}

// Load shows videoID. Loading the video a live instance already shows does nothing. Otherwise
// the previous instance is destroyed before the new one is created.
func (a *Adapter) Load(videoID, title string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current != nil && a.videoID == videoID {
		return nil
	}

	a.destroyLocked()

	a.seq++
	a.videoID = videoID
	a.containerID = uuid.NewString()

	instance, err := a.factory.Create(Spec{
		ContainerID: a.containerID,
		VideoID:     videoID,
		Title:       title,
		Fullscreen:  a.fullscreen,
	})
	if err != nil {
		a.videoID = ""
		return err
	}

	a.current = instance
	log.With(log.Fields{"video": videoID, "container": a.containerID}).Info("player instance created")

	go a.pump(instance, a.seq)
	return nil
}

// Close destroys the current instance.
func (a *Adapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.seq++
	a.destroyLocked()
	a.videoID = ""
}

func (a *Adapter) destroyLocked() {
	if a.current == nil {
		return
	}

	if err := a.current.Destroy(); err != nil {
		log.Warnf("destroy player instance %s: %v", a.containerID, err)
	}
	a.current = nil
	a.ready = false
	a.playing = false
}

func (a *Adapter) pump(instance Instance, seq uint64) {
	for event := range instance.Events() {
		a.handle(instance, seq, event)
	}

	// The surface went away on its own, e.g. the video finished or the window was closed.
	// Forget it so the next Load starts a fresh instance, even for the same video.
	a.mu.Lock()
	if seq != a.seq {
		a.mu.Unlock()
		return
	}
	a.current = nil
	a.ready = false
	a.playing = false
	a.mu.Unlock()

	if err := instance.Destroy(); err != nil {
		log.Debugf("release exited player instance: %v", err)
	}
}

func (a *Adapter) handle(instance Instance, seq uint64, event Event) {
	a.mu.Lock()
	if seq != a.seq {
		a.mu.Unlock()
		log.Debugf("ignoring %s from superseded player instance", event.Kind)
		return
	}
	videoID := a.videoID

	switch event.Kind {
	case EventReady:
		a.ready = true
		a.playing = true
		a.mu.Unlock()

		if a.OnReady != nil {
			a.OnReady(videoID)
		}
		if err := instance.Play(); err != nil {
			log.Warnf("start playback: %v", err)
		}
	case EventState:
		a.playing = event.Playing
		a.mu.Unlock()
	case EventError:
		a.mu.Unlock()
		log.Errorf("video %s cannot be played: %v", videoID, event.Err)
		if a.OnEnded != nil {
			a.OnEnded(videoID)
		}
	case EventEnded:
		a.mu.Unlock()
		if a.OnEnded != nil {
			a.OnEnded(videoID)
		}
	default:
		a.mu.Unlock()
	}
}

// Play resumes playback. It does nothing before the instance is ready.
func (a *Adapter) Play() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.ready {
		return nil
	}
	if err := a.current.Play(); err != nil {
		return err
	}
	a.playing = true
	return nil
}

// Pause suspends playback. It does nothing before the instance is ready.
func (a *Adapter) Pause() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.ready {
		return nil
	}
	if err := a.current.Pause(); err != nil {
		return err
	}
	a.playing = false
	return nil
}

// TogglePlay pauses a playing video and resumes a paused one.
func (a *Adapter) TogglePlay() error {
	if a.IsPlaying() {
		return a.Pause()
	}
	return a.Play()
}

// ToggleFullscreen flips fullscreen. The setting carries over to the next instances.
func (a *Adapter) ToggleFullscreen() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.ready {
		return nil
	}
	if err := a.current.SetFullscreen(!a.fullscreen); err != nil {
		return err
	}
	a.fullscreen = !a.fullscreen
	return nil
}

func (a *Adapter) IsPlaying() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.playing
}

func (a *Adapter) Ready() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ready
}

func (a *Adapter) Fullscreen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fullscreen
}

// VideoID returns the video currently shown, or "".
func (a *Adapter) VideoID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.videoID
}
