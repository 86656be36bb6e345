package player

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/leanback-cli/leanback/constant"
	"github.com/leanback-cli/leanback/key"
	"github.com/leanback-cli/leanback/log"
	"github.com/leanback-cli/leanback/where"
	"github.com/spf13/viper"
)

const (
	socketWaitRetries = 20
	socketWaitDelay   = 150 * time.Millisecond
	quitGrace         = 3 * time.Second
)

// ErrPlayerNotFound is returned when the player executable is not on PATH.
var ErrPlayerNotFound = errors.New("video player not found")

// MPVFactory starts one mpv process per instance.
type MPVFactory struct {
	binary    string
	extraArgs []string

	once    sync.Once
	path    string
	lookErr error
}

func NewMPVFactory(binary string, extraArgs []string) *MPVFactory {
	return &MPVFactory{binary: binary, extraArgs: extraArgs}
}

// FactoryFromConfig reads player.binary and player.extra_args.
func FactoryFromConfig() *MPVFactory {
	return NewMPVFactory(viper.GetString(key.PlayerBinary), viper.GetStringSlice(key.PlayerExtraArgs))
}

// Binary is the configured executable name.
func (f *MPVFactory) Binary() string {
	return f.binary
}

// Path resolves the executable. The lookup runs once per factory.
func (f *MPVFactory) Path() (string, error) {
	f.once.Do(func() {
		f.path, f.lookErr = exec.LookPath(f.binary)
		if f.lookErr != nil {
			f.lookErr = fmt.Errorf("%w: %s: %w", ErrPlayerNotFound, f.binary, f.lookErr)
		}
	})
	return f.path, f.lookErr
}

// Args builds the command line for spec. The player's own key bindings and on-screen controls are
// disabled so every key press reaches the terminal client.
func (f *MPVFactory) Args(spec Spec, socketPath string) []string {
	title := sanitizeTitle(spec.Title)

	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server=" + socketPath,
		"--no-input-default-bindings",
		"--input-vo-keyboard=no",
		"--osc=no",
		"--no-osd-bar",
		"--force-window=yes",
		"--keep-open=no",
		"--force-media-title=" + title,
		"--title=" + title,
	}
	if spec.Fullscreen {
		args = append(args, "--fullscreen")
	}

	args = append(args, f.extraArgs...)
	return append(args, constant.YouTubeWatchURL+spec.VideoID)
}

// Create launches mpv for spec and waits until its IPC socket answers.
func (f *MPVFactory) Create(spec Spec) (Instance, error) {
	if !validVideoID(spec.VideoID) {
		return nil, fmt.Errorf("invalid video id %q", spec.VideoID)
	}

	path, err := f.Path()
	if err != nil {
		return nil, err
	}

	socketPath := filepath.Join(where.Sockets(), strings.ReplaceAll(spec.ContainerID, "-", "")+".sock")

	cmd := exec.Command(path, f.Args(spec, socketPath)...)
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdin, cmd.Stdout, cmd.Stderr = nil, nil, nil

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", f.binary, err)
	}

	m := &mpvInstance{
		socketPath: socketPath,
		cmd:        cmd,
		exited:     make(chan struct{}),
	}
	go func() {
		_ = cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		log.Warnf("killing %s: %v", f.binary, err)
		_ = terminate(cmd)
		return nil, err
	}

	listener, err := listen(socketPath)
	if err != nil {
		_ = m.Destroy()
		return nil, err
	}
	m.listener = listener

	return m, nil
}

// mpvInstance is one running mpv process.
type mpvInstance struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	listener   *eventListener
	destroy    sync.Once
}

func (m *mpvInstance) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return errors.New("player exited before its socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			_ = conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *mpvInstance) Play() error {
	return m.set("pause", false)
}

func (m *mpvInstance) Pause() error {
	return m.set("pause", true)
}

func (m *mpvInstance) SetFullscreen(on bool) error {
	return m.set("fullscreen", on)
}

func (m *mpvInstance) Events() <-chan Event {
	return m.listener.events
}

// Destroy asks mpv to quit and kills it if it does not exit in time.
func (m *mpvInstance) Destroy() error {
	var err error
	m.destroy.Do(func() {
		if m.listener != nil {
			m.listener.Close()
		}

		select {
		case <-m.exited:
		default:
			if _, quitErr := doSendCommand(m.socketPath, []any{"quit"}); quitErr != nil {
				log.Debugf("graceful quit: %v", quitErr)
			}

			select {
			case <-m.exited:
			case <-time.After(quitGrace):
				err = terminate(m.cmd)
			}
		}

		if rmErr := os.Remove(m.socketPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = errors.Join(err, rmErr)
		}
	})
	return err
}

func (m *mpvInstance) set(property string, value any) error {
	select {
	case <-m.exited:
		return errors.New("player is not running")
	default:
	}

	_, err := sendCommand(m.socketPath, "set_property", property, value)
	return err
}

// validVideoID rejects anything that could be taken for a flag or break out of the watch URL.
func validVideoID(id string) bool {
	if id == "" || strings.HasPrefix(id, "-") {
		return false
	}
	return !strings.ContainsFunc(id, func(r rune) bool {
		return !(r == '-' || r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	})
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
