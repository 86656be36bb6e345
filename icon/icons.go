package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Fail Icon = iota + 1
	Success
	Progress
	Mark
	Question
	Play
	Pause
	Channel
	Source
	Playlist
	Queue
	Fullscreen
	Config
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "OK",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・_・ヾ",
		squares: "🟨",
	},
	Mark: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(•̀ᴗ•́)و",
		squares: "🟦",
	},
	Question: {
		emoji:   "🤨",
		nerd:    "",
		plain:   "?",
		kaomoji: "(・・?)",
		squares: "🟪",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(ﾉ◕ヮ◕)ﾉ",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(－ω－) zzZ",
		squares: "🟧",
	},
	Channel: {
		emoji:   "📺",
		nerd:    "",
		plain:   "#",
		kaomoji: "[◕_◕]",
		squares: "🟦",
	},
	Source: {
		emoji:   "📡",
		nerd:    "",
		plain:   "@",
		kaomoji: "(⌐■_■)",
		squares: "🟫",
	},
	Playlist: {
		emoji:   "📼",
		nerd:    "",
		plain:   "=",
		kaomoji: "♪(´▽｀)",
		squares: "🟫",
	},
	Queue: {
		emoji:   "🔁",
		nerd:    "",
		plain:   "~",
		kaomoji: "(っ˘ω˘ς)",
		squares: "🟨",
	},
	Fullscreen: {
		emoji:   "🖥️",
		nerd:    "",
		plain:   "[ ]",
		kaomoji: "ヽ(°〇°)ﾉ",
		squares: "⬛",
	},
	Config: {
		emoji:   "⚙️",
		nerd:    "",
		plain:   "*",
		kaomoji: "(￣ー￣)ゞ",
		squares: "⬜",
	},
}
