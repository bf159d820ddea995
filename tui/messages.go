package tui

import (
	"image"
	"net/url"
)

type rowState int

const (
	rowPending rowState = iota
	rowReady
	rowFailed
)

type row struct {
	locator *url.URL
	state   rowState
	cached  bool
	image   image.Image
}

// startMsg kicks off the fetches once the program loop is running.
type startMsg struct{}

// dispatchMsg carries a cache completion onto the program loop.
type dispatchMsg struct {
	fn func()
}
