package gate_test

import (
	"context"
	"testing"

	"github.com/diewo77/go-tms/gate"
)

// mockPolicy is a simple policy for testing with uint user type.
type mockPolicy struct {
	allowAll bool
}

func (p *mockPolicy) Can(_ context.Context, _ uint, _ gate.Action, _ any) bool {
	return p.allowAll
}

func TestNewGate(t *testing.T) {
	g := gate.NewGate[uint]()
	if g == nil {
		t.Fatal("expected non-nil Gate")
	}
}

func TestGate_Authorize_NoUser(t *testing.T) {
	g := gate.NewGate[uint]()
	g.Register("test", &mockPolicy{allowAll: true})

	err := g.Authorize(context.Background(), 0, gate.ActionValidate, "test", nil)
	if err != gate.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGate_Authorize_NoPolicy(t *testing.T) {
	g := gate.NewGate[uint]()

	err := g.Authorize(context.Background(), 1, gate.ActionValidate, "unknown", nil)
	if err != gate.ErrNoPolicyDefined {
		t.Errorf("expected ErrNoPolicyDefined, got %v", err)
	}
}

func TestGate_Authorize_Allowed(t *testing.T) {
	g := gate.NewGate[uint]()
	g.Register("test", &mockPolicy{allowAll: true})

	err := g.Authorize(context.Background(), 1, gate.ActionValidate, "test", nil)
	if err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestGate_Authorize_Denied(t *testing.T) {
	g := gate.NewGate[uint]()
	g.Register("test", &mockPolicy{allowAll: false})

	err := g.Authorize(context.Background(), 1, gate.ActionValidate, "test", nil)
	if err != gate.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGate_Can(t *testing.T) {
	g := gate.NewGate[uint]()
	g.Register("test", &mockPolicy{allowAll: true})

	if !g.Can(context.Background(), 1, gate.ActionReject, "test", nil) {
		t.Error("expected Can to return true")
	}

	g.Register("denied", &mockPolicy{allowAll: false})
	if g.Can(context.Background(), 1, gate.ActionReject, "denied", nil) {
		t.Error("expected Can to return false")
	}
}

func TestGate_PolicyFunc(t *testing.T) {
	g := gate.NewGate[uint]()
	g.Register("evens", gate.PolicyFunc[uint](func(_ context.Context, actor uint, _ gate.Action, _ any) bool {
		return actor%2 == 0
	}))

	if !g.Can(context.Background(), 2, gate.ActionValidate, "evens", nil) {
		t.Error("even actor should pass")
	}
	if g.Can(context.Background(), 3, gate.ActionValidate, "evens", nil) {
		t.Error("odd actor should be denied")
	}
}

// Test with a pointer actor type to verify the zero-value check catches nil.
type testUser struct {
	ID       int
	Reviewer bool
}

type reviewerPolicy struct{}

func (p *reviewerPolicy) Can(_ context.Context, user *testUser, action gate.Action, _ any) bool {
	if user == nil {
		return false
	}
	if action != gate.ActionValidate && action != gate.ActionReject {
		return false
	}
	return user.Reviewer
}

func TestGate_WithPointerActor(t *testing.T) {
	g := gate.NewGate[*testUser]()
	g.Register("record", &reviewerPolicy{})

	reviewer := &testUser{ID: 1, Reviewer: true}
	regular := &testUser{ID: 2}

	if !g.Can(context.Background(), reviewer, gate.ActionValidate, "record", nil) {
		t.Error("reviewer should be able to validate")
	}
	if g.Can(context.Background(), regular, gate.ActionValidate, "record", nil) {
		t.Error("non-reviewer should not be able to validate")
	}
	if g.Can(context.Background(), reviewer, gate.ActionList, "record", nil) {
		t.Error("list is not a review action")
	}

	err := g.Authorize(context.Background(), nil, gate.ActionValidate, "record", nil)
	if err != gate.ErrUnauthorized {
		t.Errorf("nil user should be unauthorized, got %v", err)
	}
}
