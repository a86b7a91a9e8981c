package websmith

import "errors"

var (
	// ErrNoBoundDriver is returned by every action on a Session that was
	// never opened or has been closed.
	ErrNoBoundDriver = errors.New("no bound driver")
	// ErrElementNotFound means a single direct query matched nothing.
	ErrElementNotFound = errors.New("element not found")
	// ErrWaitTimeout means a wait condition never held before its deadline.
	ErrWaitTimeout = errors.New("wait timed out")
	// ErrNotInteractable means an action needed an element the wait could
	// not produce.
	ErrNotInteractable = errors.New("element not interactable")
)
