// Package session tracks who the client is acting as. A session starts
// pending, then resolves to authenticated or anonymous; dependent
// components key their lifecycle off phase changes.
package session

import (
	"context"
	"net/mail"
	"sync"

	"github.com/furari-app/furari/internal/api"
	"github.com/furari-app/furari/internal/common"
)

// Phase is the session lifecycle state.
type Phase int

const (
	// PhasePending means the stored session has not been resolved yet.
	// Nothing user-specific should start in this phase.
	PhasePending Phase = iota
	PhaseAuthenticated
	PhaseAnonymous
)

func (p Phase) String() string {
	switch p {
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseAnonymous:
		return "anonymous"
	default:
		return "pending"
	}
}

// minPasswordLength mirrors the server-side account policy so obviously
// bad input fails before a network round trip.
const minPasswordLength = 6

// AuthAPI is the slice of the API client the holder needs.
type AuthAPI interface {
	SignUp(ctx context.Context, email, password string) (*api.LoginResponse, error)
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	Logout(ctx context.Context) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, code, newPassword string) error
}

// Holder owns the session phase and identity. Safe for concurrent use.
type Holder struct {
	api AuthAPI

	mu       sync.RWMutex
	phase    Phase
	userID   string
	email    string
	onChange func(Phase)
}

func NewHolder(api AuthAPI) *Holder {
	return &Holder{api: api, phase: PhasePending}
}

// OnPhaseChange registers a hook called (outside the lock) whenever the
// phase transitions. Dependent components use it to start and stop.
func (h *Holder) OnPhaseChange(fn func(Phase)) {
	h.mu.Lock()
	h.onChange = fn
	h.mu.Unlock()
}

// Phase returns the current lifecycle phase.
func (h *Holder) Phase() Phase {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.phase
}

// Identity returns the signed-in user, or empty strings when not
// authenticated.
func (h *Holder) Identity() (userID, email string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.phase != PhaseAuthenticated {
		return "", ""
	}
	return h.userID, h.email
}

// Authenticated reports whether the session has a signed-in user.
func (h *Holder) Authenticated() bool {
	return h.Phase() == PhaseAuthenticated
}

// Resolve settles the initial phase from a persisted session. Tokens that
// exist locally are trusted until a request proves otherwise; expired ones
// refresh transparently on first use.
func (h *Holder) Resolve(userID, email string, hasTokens bool) {
	if hasTokens && userID != "" {
		h.setAuthenticated(userID, email)
		return
	}
	h.setPhase(PhaseAnonymous)
}

// SignUp validates locally, then registers and signs in. Validation
// failures never reach the network.
func (h *Holder) SignUp(ctx context.Context, email, password string) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	resp, err := h.api.SignUp(ctx, email, password)
	if err != nil {
		return err
	}
	h.setAuthenticated(resp.UserID, resp.Email)
	return nil
}

// SignIn authenticates against the backend.
func (h *Holder) SignIn(ctx context.Context, email, password string) error {
	resp, err := h.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	h.setAuthenticated(resp.UserID, resp.Email)
	return nil
}

// SignOut revokes the session. Signing out an already-anonymous session
// is a no-op.
func (h *Holder) SignOut(ctx context.Context) error {
	if h.Phase() == PhaseAnonymous {
		return nil
	}
	err := h.api.Logout(ctx)
	h.mu.Lock()
	h.userID = ""
	h.email = ""
	h.mu.Unlock()
	h.setPhase(PhaseAnonymous)
	return err
}

// RequestPasswordReset asks the backend to mail a reset code.
func (h *Holder) RequestPasswordReset(ctx context.Context, email string) error {
	return h.api.RequestPasswordReset(ctx, email)
}

// ConfirmPasswordReset redeems a reset code. The new password is validated
// locally first, like on sign-up.
func (h *Holder) ConfirmPasswordReset(ctx context.Context, code, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return common.ErrWeakPassword
	}
	return h.api.ConfirmPasswordReset(ctx, code, newPassword)
}

func (h *Holder) setAuthenticated(userID, email string) {
	h.mu.Lock()
	h.userID = userID
	h.email = email
	h.mu.Unlock()
	h.setPhase(PhaseAuthenticated)
}

func (h *Holder) setPhase(p Phase) {
	h.mu.Lock()
	changed := h.phase != p
	h.phase = p
	fn := h.onChange
	h.mu.Unlock()
	if changed && fn != nil {
		fn(p)
	}
}

func validateCredentials(email, password string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return common.ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return common.ErrWeakPassword
	}
	return nil
}
