package server

import (
	"sync"

	"github.com/jrsteele09/uzera-playground/identity"
	"github.com/jrsteele09/uzera-playground/sessions"
)

var _ sessions.Display = (*DisplayState)(nil)

// DisplayView is the user banner shown by the demo page.
type DisplayView struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Email    string `json:"email,omitempty"`
	UserID   string `json:"userId,omitempty"`
}

// DisplayState tracks the banner for the currently identified user.
type DisplayState struct {
	view DisplayView
	lock sync.RWMutex
}

func NewDisplayState() *DisplayState {
	d := &DisplayState{}
	d.Reset()
	return d
}

func (d *DisplayState) ShowUser(name, email, userID string) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.view = DisplayView{
		Name:     name,
		Initials: identity.Initials(name),
		Email:    email,
		UserID:   userID,
	}
}

func (d *DisplayState) Reset() {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.view = DisplayView{
		Name:     identity.DefaultDisplayName,
		Initials: identity.DefaultInitials,
	}
}

func (d *DisplayState) View() DisplayView {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return d.view
}
