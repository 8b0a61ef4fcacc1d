package service

import (
	"crypto/subtle"

	"github.com/atinyakov/go-link-tracker/internal/models"
)

// GateDecision is the outcome of evaluating a link's password gate for one request.
type GateDecision struct {
	// Protected is set when the link carries a password.
	Protected bool
	// Visible is set when the destination may be shown.
	Visible bool
	// Attempted is set when the visitor supplied a password.
	Attempted bool
	// Denied is set when a supplied password did not match.
	Denied bool
	// RevealedPassword holds the stored password when the owner chose to show it.
	RevealedPassword *string
}

// AccessGate decides whether a link's destination is shown.
//
// The password is a plain shared secret stored next to the link and compared
// as given. Attempts are unlimited and nothing is remembered between
// requests. It keeps casual visitors out; it is not an access-control
// boundary and has nothing to do with account passwords.
type AccessGate struct{}

// NewAccessGate returns the gate.
func NewAccessGate() *AccessGate {
	return &AccessGate{}
}

// Evaluate returns the gate state for link given the optional supplied password.
func (g *AccessGate) Evaluate(link *models.Link, supplied *string) GateDecision {
	d := GateDecision{
		Protected: link.Protected(),
		Attempted: supplied != nil,
	}

	if link.ShowPassword && link.Password != nil {
		revealed := *link.Password
		d.RevealedPassword = &revealed
	}

	if !d.Protected {
		d.Visible = true
		return d
	}

	if supplied != nil && subtle.ConstantTimeCompare([]byte(*supplied), []byte(*link.Password)) == 1 {
		d.Visible = true
		return d
	}

	d.Denied = d.Attempted
	return d
}
