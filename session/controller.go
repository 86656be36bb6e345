package session

import (
	"context"

	"github.com/leanback-cli/leanback/backend"
	"github.com/leanback-cli/leanback/log"
)

// Fetcher is the part of the backend the session needs. *backend.Client satisfies it.
type Fetcher interface {
	Next(ctx context.Context, channelID backend.ID) (*backend.Video, error)
	Skip(ctx context.Context, channelID, currentVideoID backend.ID) (*backend.Video, error)
}

// Surface is the control handle of the video surface.
type Surface interface {
	TogglePlay() error
	ToggleFullscreen() error
}

// Controller owns the one Session of a running client. Only the UI loop calls its
// transition methods; Execute is safe to run from any goroutine.
type Controller struct {
	state   Session
	fetcher Fetcher
	surface Surface
}

func NewController(fetcher Fetcher) *Controller {
	return &Controller{fetcher: fetcher}
}

// Attach sets the video surface that toggles are delegated to.
func (c *Controller) Attach(surface Surface) {
	c.surface = surface
}

// State returns a copy of the current session.
func (c *Controller) State() Session {
	return c.state
}

func (c *Controller) SelectChannel(ch *backend.Channel) (*Request, error) {
	next, req, err := c.state.SelectChannel(ch)
	if err != nil {
		return nil, err
	}

	log.With(log.Fields{"channel": ch.ID, "generation": next.Generation}).Info("channel selected")
	c.state = next
	return req, nil
}

func (c *Controller) Advance(markPlayed bool, reason Reason) *Request {
	next, req := c.state.Advance(markPlayed, reason)
	if req == nil {
		log.Debugf("advance (%s) dropped in phase %s", reason, c.state.Phase())
	}
	c.state = next
	return req
}

func (c *Controller) Retry() *Request {
	return c.Advance(false, ReasonRetry)
}

func (c *Controller) Resolve(r Result) *Request {
	fields := log.Fields{
		"channel":    r.Request.ChannelID,
		"kind":       r.Request.Kind,
		"reason":     r.Request.Reason,
		"generation": r.Request.Generation,
	}

	next, req := c.state.Resolve(r)
	switch {
	case r.Request.Generation != c.state.Generation:
		log.With(fields).Debug("stale result discarded")
	case !c.state.Loading:
		log.With(fields).Debug("result arrived with nothing pending")
	case r.Err == nil && r.Video != nil:
		log.With(fields).Infof("now playing %q", r.Video.Title)
	case req != nil:
		log.With(fields).Warnf("skip failed, falling back to next: %v", r.Err)
	case r.Err != nil:
		log.With(fields).Errorf("fetch failed: %v", r.Err)
	}

	c.state = next
	return req
}

func (c *Controller) ClearChannel() {
	c.state = c.state.ClearChannel()
}

func (c *Controller) OpenMenu() {
	c.state = c.state.OpenMenu()
}

func (c *Controller) CloseMenu() {
	c.state = c.state.CloseMenu()
}

func (c *Controller) EnterManagement() {
	c.state = c.state.EnterManagement()
}

func (c *Controller) LeaveManagement() {
	c.state = c.state.LeaveManagement()
}

// Execute performs the backend call for req. It reads nothing from the session.
func (c *Controller) Execute(ctx context.Context, req Request) Result {
	var (
		video *backend.Video
		err   error
	)

	switch req.Kind {
	case KindSkip:
		video, err = c.fetcher.Skip(ctx, req.ChannelID, req.CurrentVideoID)
	default:
		video, err = c.fetcher.Next(ctx, req.ChannelID)
	}

	return Result{Request: req, Video: video, Err: err}
}

// Drive executes req and every follow-up request synchronously.
func (c *Controller) Drive(ctx context.Context, req *Request) {
	for req != nil {
		req = c.Resolve(c.Execute(ctx, *req))
	}
}

// ToggleFullscreen is ignored while managing channels. Failures are only logged.
func (c *Controller) ToggleFullscreen() {
	if c.surface == nil || c.state.Mode == ModeManagement {
		return
	}
	if err := c.surface.ToggleFullscreen(); err != nil {
		log.Warnf("toggle fullscreen: %v", err)
	}
}

// TogglePlayPause pauses or resumes the current video. Failures are only logged.
func (c *Controller) TogglePlayPause() {
	if c.surface == nil {
		return
	}
	if err := c.surface.TogglePlay(); err != nil {
		log.Warnf("toggle play: %v", err)
	}
}
