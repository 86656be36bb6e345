package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leanback-cli/leanback/backend"
	"github.com/leanback-cli/leanback/icon"
	"github.com/leanback-cli/leanback/key"
	"github.com/leanback-cli/leanback/session"
	"github.com/leanback-cli/leanback/style"
	"github.com/leanback-cli/leanback/util"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case watchState:
		output = b.viewWatch()
	case menuState:
		output = listExtraPaddingStyle.Render(b.menuC.View())
	case channelsState:
		output = b.viewList(b.channelsC.View())
	case sourcesState:
		output = b.viewList(b.sourcesC.View())
	case channelFormState:
		output = b.viewChannelForm()
	case sourceFormState:
		output = b.viewSourceForm()
	case confirmState:
		output = b.viewConfirm()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(true, []string{
		style.Title("leanback"),
		"",
		b.spinnerC.View() + " Loading channels",
	})
}

func (b *statefulBubble) viewList(list string) string {
	if b.busy {
		list += "\n" + b.spinnerC.View() + style.Faint(" Working...")
	}
	return listExtraPaddingStyle.Render(list)
}

func (b *statefulBubble) viewWatch() string {
	st := b.ctrl.State()
	if st.Channel == nil {
		return b.renderLines(viper.GetBool(key.TUIShowHelp), []string{
			style.Title("leanback"),
			"",
			"No channel selected.",
			style.Faint("Press ← to pick one, or m to manage channels."),
		})
	}

	lines := []string{
		style.Title(icon.Get(icon.Channel)+" "+st.Channel.Name) + " " + orderTag(st.Channel.PlayOrder),
		"",
	}

	switch st.Phase() {
	case session.PhaseLoading:
		if st.Video != nil {
			lines = append(lines, style.Faint(style.Truncate(b.width)(st.Video.Title)), "")
		}
		lines = append(lines, b.spinnerC.View()+" Loading next video...")
	case session.PhaseError:
		if st.Video != nil {
			lines = append(lines, style.Faint(style.Truncate(b.width)(st.Video.Title)), "")
		}
		lines = append(lines, b.errorPanel(st))
	case session.PhasePlaying:
		lines = append(lines, b.videoLines(st.Video)...)
	}

	return b.renderLines(viper.GetBool(key.TUIShowHelp), lines)
}

func (b *statefulBubble) videoLines(video *backend.Video) []string {
	lines := []string{
		style.Truncate(b.width)(style.Bold(style.Fg(style.AccentColor)(video.Title))),
	}

	var meta []string
	if video.ChannelName != "" {
		meta = append(meta, video.ChannelName)
	}
	if video.PublishedAt != nil && !video.PublishedAt.IsZero() {
		meta = append(meta, util.Ago(video.PublishedAt.Time))
	}
	meta = append(meta, fmt.Sprintf("#%d in queue", video.Position+1))
	lines = append(lines, style.Faint(strings.Join(meta, " • ")), "")

	var status string
	switch {
	case b.playerErr != nil:
		status = style.Fg(style.ErrorColor)(icon.Get(icon.Fail)+" "+b.playerErr.Error()) +
			style.Faint("  (r to retry)")
	case !b.player.Ready():
		status = b.spinnerC.View() + " Starting player"
	case b.player.IsPlaying():
		status = icon.Get(icon.Play) + " Playing"
	default:
		status = icon.Get(icon.Pause) + " Paused"
	}

	if b.player.Fullscreen() {
		status += "  " + icon.Get(icon.Fullscreen)
	}

	return append(lines, status)
}

func (b *statefulBubble) errorPanel(st session.Session) string {
	width := util.Clamp(b.width, 20, 72)
	body := wrap.String(st.ErrMessage(), width-6)

	return style.Panel(style.ErrorColor, width).Render(
		style.Fg(style.ErrorColor)(icon.Get(icon.Fail)+" Could not load a video") + "\n\n" + body,
	)
}

func (b *statefulBubble) viewChannelForm() string {
	return b.renderLines(true, []string{
		style.Title("New Channel"),
		"",
		b.nameInputC.View(),
		"",
		"Play order: " + orderTag(b.formOrder),
	})
}

func (b *statefulBubble) viewSourceForm() string {
	kinds := []string{}
	for _, kind := range []backend.SourceKind{backend.KindChannel, backend.KindPlaylist} {
		if kind == b.formKind {
			kinds = append(kinds, style.Tag(style.Base, style.AccentColor)(string(kind)))
		} else {
			kinds = append(kinds, style.Faint(string(kind)))
		}
	}

	name := ""
	if b.managedChannel != nil {
		name = b.managedChannel.Name
	}

	return b.renderLines(true, []string{
		style.Title("Add Source to " + name),
		"",
		"Kind: " + strings.Join(kinds, " "),
		"",
		b.refInputC.View(),
		b.labelInputC.View(),
	})
}

func (b *statefulBubble) viewConfirm() string {
	prompt := ""
	if b.pending != nil {
		prompt = b.pending.prompt
	}

	return b.renderLines(true, []string{
		style.Title("Confirm"),
		"",
		icon.Get(icon.Question) + " " + wrap.String(prompt, b.width),
	})
}

func (b *statefulBubble) viewError() string {
	message := ""
	if b.lastError != nil {
		message = backend.Message(b.lastError)
	}

	errorBody := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true).Render(message)
	return b.renderLines(true, []string{
		style.ErrorTitle("Error"),
		"",
		icon.Get(icon.Fail) + " Something went wrong:",
		"",
		wrap.String(errorBody, b.width),
	})
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	l := strings.Join(lines, "\n")
	if addHelp {
		if h := lipgloss.Height(l); b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.help())
	}

	return paddingStyle.Render(l)
}
