package player

import (
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeInstance struct {
	spec       Spec
	events     chan Event
	log        *[]string
	mu         *sync.Mutex
	plays      int
	pauses     int
	fullscreen []bool
	destroyErr error
	closed     sync.Once
}

// exit closes the event stream the way a player process that quit on its own does.
func (f *fakeInstance) exit() {
	f.closed.Do(func() { close(f.events) })
}

func (f *fakeInstance) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	*f.log = append(*f.log, op+":"+f.spec.VideoID)
}

func (f *fakeInstance) Play() error {
	f.record("play")
	f.plays++
	return nil
}

func (f *fakeInstance) Pause() error {
	f.record("pause")
	f.pauses++
	return nil
}

func (f *fakeInstance) SetFullscreen(on bool) error {
	f.fullscreen = append(f.fullscreen, on)
	return nil
}

func (f *fakeInstance) Destroy() error {
	f.record("destroy")
	f.exit()
	return f.destroyErr
}

func (f *fakeInstance) Events() <-chan Event {
	return f.events
}

type fakeFactory struct {
	mu         sync.Mutex
	log        []string
	instances  []*fakeInstance
	fail       error
	destroyErr error
}

func (f *fakeFactory) Create(spec Spec) (Instance, error) {
	if f.fail != nil {
		return nil, f.fail
	}

	f.mu.Lock()
	f.log = append(f.log, "create:"+spec.VideoID)
	f.mu.Unlock()

	instance := &fakeInstance{
		spec:       spec,
		events:     make(chan Event),
		log:        &f.log,
		mu:         &f.mu,
		destroyErr: f.destroyErr,
	}
	f.instances = append(f.instances, instance)
	return instance, nil
}

func (f *fakeFactory) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.log...)
}

// recorder collects adapter callbacks.
type recorder struct {
	ready chan string
	ended chan string
}

func newRecorder(a *Adapter) *recorder {
	r := &recorder{ready: make(chan string, 8), ended: make(chan string, 8)}
	a.OnReady = func(id string) { r.ready <- id }
	a.OnEnded = func(id string) { r.ended <- id }
	return r
}

func receive(ch chan string) string {
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		return "timeout"
	}
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestAdapter(t *testing.T) {
	Convey("Given an adapter over a fake factory", t, func() {
		factory := &fakeFactory{}
		adapter := NewAdapter(factory, false)
		rec := newRecorder(adapter)

		Convey("Loading creates an instance with a fresh container id", func() {
			So(adapter.Load("yt1", "Song A"), ShouldBeNil)
			So(factory.instances, ShouldHaveLength, 1)
			So(factory.instances[0].spec.ContainerID, ShouldNotBeEmpty)
			So(factory.instances[0].spec.Title, ShouldEqual, "Song A")
			So(adapter.VideoID(), ShouldEqual, "yt1")

			Convey("Loading the same video again does nothing", func() {
				So(adapter.Load("yt1", "Song A"), ShouldBeNil)
				So(factory.instances, ShouldHaveLength, 1)
			})

			Convey("The same video is reloaded once its instance has exited", func() {
				instance := factory.instances[0]
				instance.events <- Event{Kind: EventEnded}
				So(receive(rec.ended), ShouldEqual, "yt1")
				instance.exit()

				So(waitFor(func() bool { return len(factory.ops()) == 2 }), ShouldBeTrue)
				So(adapter.Ready(), ShouldBeFalse)

				So(adapter.Load("yt1", "Song A"), ShouldBeNil)
				So(factory.instances, ShouldHaveLength, 2)
				So(factory.ops(), ShouldResemble, []string{"create:yt1", "destroy:yt1", "create:yt1"})
				So(factory.instances[1].spec.ContainerID, ShouldNotEqual, instance.spec.ContainerID)
			})

			Convey("Loading another video destroys the old instance first", func() {
				So(adapter.Load("yt2", "Song B"), ShouldBeNil)
				So(adapter.Load("yt3", "Song C"), ShouldBeNil)
				So(factory.ops(), ShouldResemble, []string{
					"create:yt1",
					"destroy:yt1", "create:yt2",
					"destroy:yt2", "create:yt3",
				})
				So(factory.instances[1].spec.ContainerID, ShouldNotEqual, factory.instances[0].spec.ContainerID)
				So(factory.instances[2].spec.ContainerID, ShouldNotEqual, factory.instances[1].spec.ContainerID)
			})

			Convey("Destroy failures are tolerated", func() {
				factory.instances[0].destroyErr = errors.New("already gone")
				So(adapter.Load("yt2", "Song B"), ShouldBeNil)
				So(adapter.VideoID(), ShouldEqual, "yt2")
			})

			Convey("Controls are no-ops before ready", func() {
				So(adapter.Play(), ShouldBeNil)
				So(adapter.Pause(), ShouldBeNil)
				So(adapter.TogglePlay(), ShouldBeNil)
				So(adapter.ToggleFullscreen(), ShouldBeNil)
				So(factory.instances[0].plays, ShouldEqual, 0)
				So(factory.instances[0].pauses, ShouldEqual, 0)
				So(factory.instances[0].fullscreen, ShouldBeEmpty)
			})

			Convey("Ready starts playback and enables controls", func() {
				instance := factory.instances[0]
				instance.events <- Event{Kind: EventReady}
				So(receive(rec.ready), ShouldEqual, "yt1")

				So(adapter.Ready(), ShouldBeTrue)
				So(adapter.IsPlaying(), ShouldBeTrue)

				So(adapter.TogglePlay(), ShouldBeNil)
				So(adapter.IsPlaying(), ShouldBeFalse)
				So(instance.pauses, ShouldEqual, 1)

				So(adapter.ToggleFullscreen(), ShouldBeNil)
				So(adapter.Fullscreen(), ShouldBeTrue)
				So(instance.fullscreen, ShouldResemble, []bool{true})

				Convey("State events update the playing flag", func() {
					instance.events <- Event{Kind: EventState, Playing: true}
					instance.events <- Event{Kind: EventEnded}
					So(receive(rec.ended), ShouldEqual, "yt1")
					So(adapter.IsPlaying(), ShouldBeTrue)
				})

				Convey("Fullscreen carries over to the next instance", func() {
					So(adapter.Load("yt2", "Song B"), ShouldBeNil)
					So(factory.instances[1].spec.Fullscreen, ShouldBeTrue)
					So(adapter.Ready(), ShouldBeFalse)
				})
			})

			Convey("An unplayable video counts as ended", func() {
				factory.instances[0].events <- Event{Kind: EventError, Err: errors.New("embedding disabled")}
				So(receive(rec.ended), ShouldEqual, "yt1")
			})

			Convey("Events from a superseded instance are ignored", func() {
				old := factory.instances[0]
				adapter.mu.Lock()
				staleSeq := adapter.seq
				adapter.mu.Unlock()

				So(adapter.Load("yt2", "Song B"), ShouldBeNil)
				adapter.handle(old, staleSeq, Event{Kind: EventEnded})
				adapter.handle(old, staleSeq, Event{Kind: EventReady})

				So(adapter.Ready(), ShouldBeFalse)
				So(len(rec.ended), ShouldEqual, 0)
				So(len(rec.ready), ShouldEqual, 0)
			})

			Convey("Close destroys the instance", func() {
				adapter.Close()
				So(factory.ops(), ShouldResemble, []string{"create:yt1", "destroy:yt1"})
				So(adapter.VideoID(), ShouldBeEmpty)

				Convey("And the same video can be loaded again", func() {
					So(adapter.Load("yt1", "Song A"), ShouldBeNil)
					So(factory.instances, ShouldHaveLength, 2)
				})
			})
		})

		Convey("A failed create leaves no instance behind", func() {
			factory.fail = ErrPlayerNotFound
			err := adapter.Load("yt1", "Song A")
			So(errors.Is(err, ErrPlayerNotFound), ShouldBeTrue)
			So(adapter.VideoID(), ShouldBeEmpty)

			factory.fail = nil
			So(adapter.Load("yt1", "Song A"), ShouldBeNil)
			So(factory.ops(), ShouldResemble, []string{"create:yt1"})
		})
	})
}
