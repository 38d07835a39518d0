package session

import (
	"context"
	"errors"
	"testing"

	"github.com/furari-app/furari/internal/api"
	"github.com/furari-app/furari/internal/common"
)

type fakeAuthAPI struct {
	signUpCalls int
	loginCalls  int
	logoutCalls int

	resp *api.LoginResponse
	err  error
}

func (f *fakeAuthAPI) SignUp(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	f.signUpCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	f.loginCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.err
}

func (f *fakeAuthAPI) RequestPasswordReset(ctx context.Context, email string) error { return f.err }
func (f *fakeAuthAPI) ConfirmPasswordReset(ctx context.Context, code, newPassword string) error {
	return f.err
}

func TestHolder_StartsPending(t *testing.T) {
	h := NewHolder(&fakeAuthAPI{})
	if h.Phase() != PhasePending {
		t.Fatalf("want pending, got %v", h.Phase())
	}
	if h.Authenticated() {
		t.Fatal("pending session must not be authenticated")
	}
}

func TestResolve(t *testing.T) {
	h := NewHolder(&fakeAuthAPI{})
	h.Resolve("u1", "a@b.example", true)
	if !h.Authenticated() {
		t.Fatal("session with tokens must resolve authenticated")
	}
	userID, email := h.Identity()
	if userID != "u1" || email != "a@b.example" {
		t.Fatalf("unexpected identity: %q %q", userID, email)
	}

	h2 := NewHolder(&fakeAuthAPI{})
	h2.Resolve("", "", false)
	if h2.Phase() != PhaseAnonymous {
		t.Fatalf("want anonymous, got %v", h2.Phase())
	}
}

func TestSignUp_ShortPasswordNeverCallsBackend(t *testing.T) {
	apiFake := &fakeAuthAPI{}
	h := NewHolder(apiFake)

	err := h.SignUp(context.Background(), "a@b.example", "short")
	if !errors.Is(err, common.ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword, got %v", err)
	}
	if apiFake.signUpCalls != 0 {
		t.Fatalf("backend must not be called, got %d calls", apiFake.signUpCalls)
	}
}

func TestSignUp_InvalidEmailNeverCallsBackend(t *testing.T) {
	apiFake := &fakeAuthAPI{}
	h := NewHolder(apiFake)

	err := h.SignUp(context.Background(), "not-an-email", "password1")
	if !errors.Is(err, common.ErrInvalidEmail) {
		t.Fatalf("want ErrInvalidEmail, got %v", err)
	}
	if apiFake.signUpCalls != 0 {
		t.Fatalf("backend must not be called, got %d calls", apiFake.signUpCalls)
	}
}

func TestSignIn_PhaseChangeHookFires(t *testing.T) {
	apiFake := &fakeAuthAPI{resp: &api.LoginResponse{UserID: "u1", Email: "a@b.example"}}
	h := NewHolder(apiFake)

	var phases []Phase
	h.OnPhaseChange(func(p Phase) { phases = append(phases, p) })

	if err := h.SignIn(context.Background(), "a@b.example", "password1"); err != nil {
		t.Fatalf("SignIn error: %v", err)
	}
	if !h.Authenticated() {
		t.Fatal("session should be authenticated")
	}
	if len(phases) != 1 || phases[0] != PhaseAuthenticated {
		t.Fatalf("unexpected phase changes: %v", phases)
	}
}

func TestSignIn_FailureKeepsPhase(t *testing.T) {
	apiFake := &fakeAuthAPI{err: common.ErrInvalidCredentials}
	h := NewHolder(apiFake)
	h.Resolve("", "", false)

	err := h.SignIn(context.Background(), "a@b.example", "wrong")
	if !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
	if h.Phase() != PhaseAnonymous {
		t.Fatalf("phase should stay anonymous, got %v", h.Phase())
	}
}

func TestSignOut_Idempotent(t *testing.T) {
	apiFake := &fakeAuthAPI{resp: &api.LoginResponse{UserID: "u1"}}
	h := NewHolder(apiFake)

	if err := h.SignIn(context.Background(), "a@b.example", "password1"); err != nil {
		t.Fatalf("SignIn error: %v", err)
	}

	if err := h.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut error: %v", err)
	}
	if h.Phase() != PhaseAnonymous {
		t.Fatalf("want anonymous, got %v", h.Phase())
	}

	// second sign-out is a no-op and must not hit the backend again
	if err := h.SignOut(context.Background()); err != nil {
		t.Fatalf("repeat SignOut error: %v", err)
	}
	if apiFake.logoutCalls != 1 {
		t.Fatalf("want one logout call, got %d", apiFake.logoutCalls)
	}
}

func TestConfirmPasswordReset_ValidatesLocally(t *testing.T) {
	apiFake := &fakeAuthAPI{}
	h := NewHolder(apiFake)

	err := h.ConfirmPasswordReset(context.Background(), "c0de", "short")
	if !errors.Is(err, common.ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword, got %v", err)
	}
}
