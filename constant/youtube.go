package constant

// YouTube endpoints used to turn a video id into something a player can open.
const (
	YouTubeWatchURL = "https://www.youtube.com/watch?v="
)
