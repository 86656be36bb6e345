package tui

import (
	"fmt"
	"strings"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leanback-cli/leanback/backend"
	"github.com/leanback-cli/leanback/history"
	"github.com/leanback-cli/leanback/input"
	"github.com/leanback-cli/leanback/internal/ui"
	"github.com/leanback-cli/leanback/key"
	"github.com/leanback-cli/leanback/log"
	"github.com/leanback-cli/leanback/menu"
	"github.com/leanback-cli/leanback/open"
	"github.com/leanback-cli/leanback/session"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// confirmation is an action waiting for a yes or no.
type confirmation struct {
	prompt string
	action tea.Cmd
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmds = append(cmds, uiCmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, tea.Batch(cmds...)
	case spinner.TickMsg:
		if b.spinning() {
			var cmd tea.Cmd
			b.spinnerC, cmd = b.spinnerC.Update(msg)
			cmds = append(cmds, cmd)
		}
		return b, tea.Batch(cmds...)
	case channelsLoadedMsg:
		return b, tea.Batch(append(cmds, b.onChannelsLoaded(msg))...)
	case sourcesLoadedMsg:
		return b, tea.Batch(append(cmds, b.onSourcesLoaded(msg))...)
	case resultMsg:
		return b, tea.Batch(append(cmds, b.onResult(session.Result(msg)))...)
	case playerEventMsg:
		return b, tea.Batch(append(cmds, b.onPlayerEvent(msg))...)
	case playerLoadedMsg:
		return b, tea.Batch(append(cmds, b.onPlayerLoaded(msg))...)
	case mutationMsg:
		return b, tea.Batch(append(cmds, b.onMutation(msg))...)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.ForceQuit) {
			return b, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch b.state {
	case loadingState:
		cmd = b.updateLoading(msg)
	case watchState:
		cmd = b.updateWatch(msg)
	case menuState:
		cmd = b.updateMenu(msg)
	case channelsState:
		cmd = b.updateChannels(msg)
	case sourcesState:
		cmd = b.updateSources(msg)
	case channelFormState:
		cmd = b.updateChannelForm(msg)
	case sourceFormState:
		cmd = b.updateSourceForm(msg)
	case confirmState:
		cmd = b.updateConfirm(msg)
	case errorState:
		cmd = b.updateError(msg)
	}

	return b, tea.Batch(append(cmds, cmd)...)
}

// spinning reports whether something is in flight.
func (b *statefulBubble) spinning() bool {
	return b.busy || b.ctrl.State().Loading
}

func (b *statefulBubble) currentChannelID() backend.ID {
	if ch := b.ctrl.State().Channel; ch != nil {
		return ch.ID
	}
	return ""
}

func (b *statefulBubble) onChannelsLoaded(msg channelsLoadedMsg) tea.Cmd {
	b.busy = false
	starting := b.state == loadingState

	if msg.err != nil {
		b.raiseError(fmt.Errorf("load channels: %w", msg.err))
		return nil
	}

	b.channels = msg.channels
	cmd := b.refreshChannelLists("")
	if !starting {
		return cmd
	}

	b.setState(watchState)
	if ch, ok := b.initialChannel().Get(); ok {
		return tea.Batch(cmd, b.selectChannel(ch, session.ReasonResume))
	}

	if len(b.channels) > 0 {
		return tea.Batch(cmd, b.openMenu())
	}
	return cmd
}

// initialChannel picks the channel to start on: the one asked for, else the remembered one.
func (b *statefulBubble) initialChannel() mo.Option[backend.Channel] {
	if ref := b.options.Channel; ref != "" {
		found := menu.Closest(b.channels, ref)
		if found.IsAbsent() {
			log.Warnf("no channel matches %q", ref)
		}
		return found
	}

	if !viper.GetBool(key.SessionResume) {
		return mo.None[backend.Channel]()
	}

	saved, ok := history.LastChannel().Get()
	if !ok {
		return mo.None[backend.Channel]()
	}

	ch, ok := lo.Find(b.channels, func(c backend.Channel) bool {
		return c.ID == saved.ID
	})
	if !ok {
		return mo.None[backend.Channel]()
	}
	return mo.Some(ch)
}

func (b *statefulBubble) selectChannel(ch backend.Channel, reason session.Reason) tea.Cmd {
	req, err := b.ctrl.SelectChannel(&ch)
	if err != nil {
		b.raiseError(err)
		return nil
	}

	req.Reason = reason
	b.playerErr = nil
	return tea.Batch(b.execute(req), b.rememberChannel(ch), b.refreshChannelLists(""))
}

// refreshChannelLists rebuilds the menu and management lists from b.channels.
// A non-empty focus highlights that channel in the management list.
func (b *statefulBubble) refreshChannelLists(focus backend.ID) tea.Cmd {
	current := b.currentChannelID()
	cmds := []tea.Cmd{
		b.menuC.SetItems(channelItems(b.channels, current)),
		b.channelsC.SetItems(channelItems(b.channels, current)),
	}

	if focus != "" {
		if _, index, ok := lo.FindIndexOf(b.channels, func(c backend.Channel) bool {
			return c.ID == focus
		}); ok {
			b.channelsC.Select(index)
		}
	}

	return tea.Batch(cmds...)
}

func (b *statefulBubble) replaceChannel(ch backend.Channel) {
	for i := range b.channels {
		if b.channels[i].ID == ch.ID {
			b.channels[i] = ch
			return
		}
	}
}

// removeChannel drops a deleted channel and stops watching it if it was current.
func (b *statefulBubble) removeChannel(id backend.ID) tea.Cmd {
	b.channels = lo.Reject(b.channels, func(c backend.Channel, _ int) bool {
		return c.ID == id
	})

	if b.currentChannelID() != id {
		return nil
	}

	b.ctrl.ClearChannel()
	b.playerErr = nil
	return b.closePlayer()
}

func (b *statefulBubble) onSourcesLoaded(msg sourcesLoadedMsg) tea.Cmd {
	b.busy = false
	if b.managedChannel == nil || b.managedChannel.ID != msg.channelID {
		return nil
	}

	if msg.err != nil {
		b.raiseError(fmt.Errorf("load sources: %w", msg.err))
		return nil
	}

	return b.sourcesC.SetItems(sourceItems(msg.sources))
}

func (b *statefulBubble) onResult(result session.Result) tea.Cmd {
	before := b.ctrl.State().Video

	if follow := b.ctrl.Resolve(result); follow != nil {
		return b.execute(follow)
	}

	if video := b.ctrl.State().Video; video != nil && video != before {
		return b.loadVideo(video)
	}
	return nil
}

func (b *statefulBubble) onPlayerEvent(msg playerEventMsg) tea.Cmd {
	next := b.waitForPlayerEvent()

	st := b.ctrl.State()
	if st.Channel == nil || st.Video == nil || st.Video.VideoID != msg.videoID {
		return next
	}

	switch msg.kind {
	case playerReady:
		b.playerErr = nil
		return tea.Batch(next, b.rememberPlayed(*st.Channel, *st.Video))
	case playerEnded:
		return tea.Batch(next, b.execute(b.ctrl.Advance(true, session.ReasonEnded)))
	default:
		return next
	}
}

// onPlayerLoaded keeps the video on screen when the player could not start and shows why.
func (b *statefulBubble) onPlayerLoaded(msg playerLoadedMsg) tea.Cmd {
	if video := b.ctrl.State().Video; video == nil || video.VideoID != msg.videoID {
		return nil
	}

	b.playerErr = msg.err
	if msg.err != nil {
		log.Errorf("start player for %s: %v", msg.videoID, msg.err)
	}
	return nil
}

func (b *statefulBubble) onMutation(msg mutationMsg) tea.Cmd {
	b.busy = false

	if msg.err != nil {
		b.raiseError(msg.err)
		return nil
	}

	var cmds []tea.Cmd
	if msg.apply != nil {
		cmds = append(cmds, msg.apply(b))
	}
	if msg.notice != "" {
		cmds = append(cmds, ui.Notify(msg.notice))
	}
	return tea.Batch(cmds...)
}

func (b *statefulBubble) updateLoading(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.Quit) {
		return tea.Quit
	}
	return nil
}

func (b *statefulBubble) updateWatch(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	st := b.ctrl.State()
	switch b.router.Route(st.Mode, keyMsg) {
	case input.Quit:
		return tea.Quit
	case input.OpenMenu:
		return b.openMenu()
	case input.Skip:
		return b.execute(b.ctrl.Advance(true, session.ReasonSkip))
	case input.TogglePlay:
		b.ctrl.TogglePlayPause()
	case input.ToggleFullscreen:
		b.ctrl.ToggleFullscreen()
	case input.Retry:
		switch {
		case st.Phase() == session.PhaseError:
			return b.execute(b.ctrl.Retry())
		case b.playerErr != nil:
			b.playerErr = nil
			return b.loadVideo(st.Video)
		}
	case input.OpenManagement:
		b.ctrl.EnterManagement()
		b.newState(channelsState)
		b.busy = true
		return tea.Batch(b.spinnerC.Tick, b.loadChannels())
	case input.OpenInBrowser:
		if st.Video == nil {
			return nil
		}
		if err := open.Video(st.Video.VideoID); err != nil {
			return ui.Notify("Cannot open browser: " + err.Error())
		}
		return ui.Notify("Opened in browser")
	}

	return nil
}

func (b *statefulBubble) openMenu() tea.Cmd {
	if len(b.channels) == 0 {
		return ui.Notify("No channels yet, press m to create one")
	}

	b.ctrl.OpenMenu()
	if b.ctrl.State().Mode != session.ModeMenu {
		return nil
	}

	b.selector.Open(b.channels, b.currentChannelID())
	b.jumpQuery = ""
	cmd := b.menuC.SetItems(channelItems(b.channels, b.currentChannelID()))
	b.menuC.Select(b.selector.Index)
	b.newState(menuState)
	return cmd
}

func (b *statefulBubble) closeMenu() {
	b.ctrl.CloseMenu()
	b.previousState()
}

func (b *statefulBubble) updateMenu(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch b.router.Route(session.ModeMenu, keyMsg) {
	case input.Quit:
		return tea.Quit
	case input.MenuUp:
		b.selector.Up()
		b.jumpQuery = ""
	case input.MenuDown:
		b.selector.Down()
		b.jumpQuery = ""
	case input.MenuSelect:
		picked, ok := b.selector.Selected().Get()
		b.closeMenu()
		if !ok {
			return nil
		}

		st := b.ctrl.State()
		if picked.ID == b.currentChannelID() && (st.Loading || st.Phase() == session.PhasePlaying) {
			return nil
		}
		return b.selectChannel(picked, session.ReasonSelect)
	case input.MenuClose:
		b.closeMenu()
		return nil
	case input.None:
		b.jump(keyMsg)
	}

	b.menuC.Select(b.selector.Index)
	return nil
}

// jump moves the highlight to the channel whose name best matches what was typed so far.
func (b *statefulBubble) jump(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		b.jumpQuery += string(msg.Runes)
		if !b.selector.Find(b.jumpQuery) {
			b.jumpQuery = string(msg.Runes)
			b.selector.Find(b.jumpQuery)
		}
	case tea.KeyBackspace:
		if b.jumpQuery != "" {
			b.jumpQuery = b.jumpQuery[:len(b.jumpQuery)-1]
		}
	}
}

func (b *statefulBubble) selectedManagedChannel() mo.Option[backend.Channel] {
	item, ok := b.channelsC.SelectedItem().(*listItem)
	if !ok {
		return mo.None[backend.Channel]()
	}
	ch, ok := item.internal.(*backend.Channel)
	if !ok {
		return mo.None[backend.Channel]()
	}
	return mo.Some(*ch)
}

func (b *statefulBubble) updateChannels(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		b.channelsC, cmd = b.channelsC.Update(msg)
		return cmd
	}

	intent := b.router.Route(session.ModeManagement, keyMsg)
	if b.busy && intent != input.ManageBack && intent != input.Quit && intent != input.None {
		return nil
	}

	ch, selected := b.selectedManagedChannel().Get()

	switch intent {
	case input.Quit:
		return tea.Quit
	case input.ManageBack:
		b.ctrl.LeaveManagement()
		b.previousState()
		return nil
	case input.ManageNew:
		b.nameInputC.Reset()
		b.formOrder = backend.OrderRandom
		b.newState(channelFormState)
		return tea.Batch(b.nameInputC.Focus(), textinput.Blink)
	case input.None:
		var cmd tea.Cmd
		b.channelsC, cmd = b.channelsC.Update(msg)
		return cmd
	case input.ManageRebuildAll:
		b.busy = true
		return tea.Batch(b.spinnerC.Tick, b.rebuildAll())
	}

	if !selected {
		return nil
	}

	switch intent {
	case input.ManageDelete:
		b.pending = &confirmation{
			prompt: fmt.Sprintf("Delete %s together with its sources and queue?", ch.Name),
			action: b.deleteChannel(ch),
		}
		b.newState(confirmState)
	case input.ManageCycleOrder:
		b.busy = true
		return tea.Batch(b.spinnerC.Tick, b.cycleOrder(ch))
	case input.ManageSources:
		b.managedChannel = &ch
		b.sourcesC.Title = ch.Name + " sources"
		b.busy = true
		b.newState(sourcesState)
		return tea.Batch(b.sourcesC.SetItems(nil), b.spinnerC.Tick, b.loadSources(ch.ID))
	case input.ManageRebuild:
		b.busy = true
		return tea.Batch(b.spinnerC.Tick, b.rebuild(ch))
	}

	return nil
}

func (b *statefulBubble) selectedSource() mo.Option[backend.Source] {
	item, ok := b.sourcesC.SelectedItem().(*listItem)
	if !ok {
		return mo.None[backend.Source]()
	}
	src, ok := item.internal.(*backend.Source)
	if !ok {
		return mo.None[backend.Source]()
	}
	return mo.Some(*src)
}

func (b *statefulBubble) updateSources(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		b.sourcesC, cmd = b.sourcesC.Update(msg)
		return cmd
	}

	intent := b.router.Route(session.ModeManagement, keyMsg)
	if b.busy && intent != input.ManageBack && intent != input.Quit && intent != input.None {
		return nil
	}

	switch intent {
	case input.Quit:
		return tea.Quit
	case input.ManageBack:
		b.managedChannel = nil
		b.previousState()
	case input.ManageNew:
		b.refInputC.Reset()
		b.labelInputC.Reset()
		b.labelInputC.Blur()
		b.formKind = backend.KindChannel
		b.formFocus = 0
		b.newState(sourceFormState)
		return tea.Batch(b.refInputC.Focus(), textinput.Blink)
	case input.ManageDelete:
		if src, ok := b.selectedSource().Get(); ok {
			b.pending = &confirmation{
				prompt: fmt.Sprintf("Remove %s from %s?", src.Label(), b.managedChannel.Name),
				action: b.deleteSource(src),
			}
			b.newState(confirmState)
		}
	case input.ManageRebuild:
		b.busy = true
		return tea.Batch(b.spinnerC.Tick, b.rebuild(*b.managedChannel))
	case input.None:
		var cmd tea.Cmd
		b.sourcesC, cmd = b.sourcesC.Update(msg)
		return cmd
	}

	return nil
}

func (b *statefulBubble) updateChannelForm(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(keyMsg, b.forms.cancel):
			b.nameInputC.Blur()
			b.previousState()
			return nil
		case bubblesKey.Matches(keyMsg, b.forms.toggle):
			b.formOrder = b.formOrder.Next()
			return nil
		case bubblesKey.Matches(keyMsg, b.forms.submit):
			name := strings.TrimSpace(b.nameInputC.Value())
			if name == "" {
				return ui.Notify("A channel needs a name")
			}

			b.nameInputC.Blur()
			b.previousState()
			b.busy = true
			return tea.Batch(b.spinnerC.Tick, b.createChannel(backend.ChannelInput{Name: name, PlayOrder: b.formOrder}))
		}
	}

	var cmd tea.Cmd
	b.nameInputC, cmd = b.nameInputC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateSourceForm(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(keyMsg, b.forms.cancel):
			b.refInputC.Blur()
			b.labelInputC.Blur()
			b.previousState()
			return nil
		case bubblesKey.Matches(keyMsg, b.forms.toggle):
			if b.formKind == backend.KindChannel {
				b.formKind = backend.KindPlaylist
			} else {
				b.formKind = backend.KindChannel
			}
			return nil
		case bubblesKey.Matches(keyMsg, b.forms.nextField):
			b.formFocus = (b.formFocus + 1) % 2
			if b.formFocus == 0 {
				b.labelInputC.Blur()
				return b.refInputC.Focus()
			}
			b.refInputC.Blur()
			return b.labelInputC.Focus()
		case bubblesKey.Matches(keyMsg, b.forms.submit):
			ref := strings.TrimSpace(b.refInputC.Value())
			if ref == "" {
				return ui.Notify("A source needs a YouTube reference")
			}

			in := backend.SourceInput{
				ChannelID: b.managedChannel.ID,
				YoutubeID: ref,
				Kind:      b.formKind,
				Name:      strings.TrimSpace(b.labelInputC.Value()),
			}
			b.refInputC.Blur()
			b.labelInputC.Blur()
			b.previousState()
			b.busy = true
			return tea.Batch(b.spinnerC.Tick, b.createSource(in))
		}
	}

	var cmd tea.Cmd
	if b.formFocus == 0 {
		b.refInputC, cmd = b.refInputC.Update(msg)
	} else {
		b.labelInputC, cmd = b.labelInputC.Update(msg)
	}
	return cmd
}

func (b *statefulBubble) updateConfirm(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || b.pending == nil {
		return nil
	}

	switch {
	case bubblesKey.Matches(keyMsg, b.forms.confirm):
		action := b.pending.action
		b.pending = nil
		b.previousState()
		b.busy = true
		return tea.Batch(b.spinnerC.Tick, action)
	case bubblesKey.Matches(keyMsg, b.forms.deny):
		b.pending = nil
		b.previousState()
	}
	return nil
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.Back):
		b.lastError = nil
		b.previousState()
	case bubblesKey.Matches(keyMsg, b.keymap.Quit):
		return tea.Quit
	}
	return nil
}
