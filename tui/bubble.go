package tui

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/leanback-cli/leanback/backend"
	"github.com/leanback-cli/leanback/input"
	"github.com/leanback-cli/leanback/internal/ui"
	"github.com/leanback-cli/leanback/key"
	"github.com/leanback-cli/leanback/log"
	"github.com/leanback-cli/leanback/menu"
	"github.com/leanback-cli/leanback/player"
	"github.com/leanback-cli/leanback/session"
	"github.com/leanback-cli/leanback/style"
	"github.com/leanback-cli/leanback/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// statefulBubble holds the whole application state. Update is its only writer.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	busy          bool

	router   *input.Router
	keymap   *input.Keymap
	forms    *formKeymap
	client   *backend.Client
	ctrl     *session.Controller
	selector menu.Selector
	player   *player.Adapter

	// components
	spinnerC    spinner.Model
	helpC       help.Model
	menuC       list.Model
	channelsC   list.Model
	sourcesC    list.Model
	nameInputC  textinput.Model
	refInputC   textinput.Model
	labelInputC textinput.Model

	channels       []backend.Channel
	managedChannel *backend.Channel
	formOrder      backend.PlayOrder
	formKind       backend.SourceKind
	formFocus      int
	pending        *confirmation
	jumpQuery      string

	playerEvents  chan playerEventMsg
	playerMu      sync.Mutex
	playerTickets atomic.Uint64
	playerErr    error
	lastError    error

	ctx    context.Context
	cancel context.CancelFunc

	width, height int
	notifier      *ui.Model

	options *Options
}

// raiseError shows err in a blocking alert until it is dismissed.
func (b *statefulBubble) raiseError(err error) {
	log.Error(err)
	b.lastError = err
	b.newState(errorState)
}

// setState switches state and keeps the router's text focus in sync.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.router.SetTextFocus(s.textual())
}

// newState moves to s, remembering the current state unless it is transient.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{loadingState, errorState, confirmState}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState returns to the state before the current one, or watching when there is none.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
		return
	}
	b.setState(watchState)
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	for _, l := range []*list.Model{&b.menuC, &b.channelsC, &b.sourcesC} {
		l.SetSize(listWidth, listHeight)
		l.Help.Width = listWidth
	}

	for _, in := range []*textinput.Model{&b.nameInputC, &b.refInputC, &b.labelInputC} {
		in.Width = util.Max(listWidth-20, 10)
	}

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

// shutdown stops background work and the player.
func (b *statefulBubble) shutdown() {
	b.cancel()
	b.closePlayer()()
}

func newBubble(options *Options) *statefulBubble {
	keymap := input.NewKeymap()
	ctx, cancel := context.WithCancel(context.Background())

	bubble := &statefulBubble{
		statesHistory: util.Stack[state]{},
		router:        input.NewRouter(keymap),
		keymap:        keymap,
		forms:         newFormKeymap(),
		client:        options.Client,
		ctrl:          session.NewController(options.Client),
		player:        player.NewAdapter(options.Factory, viper.GetBool(key.PlayerFullscreen)),
		playerEvents:  make(chan playerEventMsg, 8),
		notifier:      &ui.Model{},
		ctx:           ctx,
		cancel:        cancel,
		options:       options,
		formOrder:     backend.OrderRandom,
		formKind:      backend.KindChannel,
	}

	bubble.ctrl.Attach(bubble.player)
	bubble.player.OnReady = bubble.forwardPlayerEvent(playerReady)
	bubble.player.OnEnded = bubble.forwardPlayerEvent(playerEnded)

	makeList := func(title string, bg lipgloss.Color, extra func() []bubblesKey.Binding) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(style.Text)
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle.Foreground(style.Subtext)

		l := list.New([]list.Item{}, delegate, 0, 0)
		l.KeyMap = keymap.ForList()
		l.AdditionalShortHelpKeys = extra
		l.AdditionalFullHelpKeys = extra
		l.Title = title
		l.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(bg).Padding(0, 1)
		l.Styles.NoItems = paddingStyle
		l.SetFilteringEnabled(false)
		l.SetShowPagination(false)
		l.SetShowStatusBar(false)
		l.StatusMessageLifetime = ui.NotificationDuration
		return l
	}

	bubble.menuC = makeList("Channels", style.AccentColor, func() []bubblesKey.Binding {
		return bubble.router.Bindings(session.ModeMenu)
	})
	bubble.menuC.SetShowHelp(viper.GetBool(key.TUIShowHelp))

	bubble.channelsC = makeList("Manage Channels", style.Peach, func() []bubblesKey.Binding {
		return bubble.router.Bindings(session.ModeManagement)
	})

	bubble.sourcesC = makeList("Sources", style.Lavender, func() []bubblesKey.Binding {
		return []bubblesKey.Binding{keymap.New, keymap.Delete, keymap.Back}
	})

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	newInput := func(placeholder, prompt string, limit int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.Prompt = prompt
		in.CharLimit = limit
		return in
	}

	bubble.nameInputC = newInput("Lo-fi evenings", "Name: ", 80)
	bubble.refInputC = newInput("@handle, channel URL, channel id or playlist id", "YouTube: ", 200)
	bubble.labelInputC = newInput("optional", "Label: ", 80)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(loadingState)
	return bubble
}
