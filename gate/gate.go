// Package gate provides a small Gate/Policy authorization system.
// The Gate is a central registry of policies; each Policy defines the
// authorization rules for one resource type. The package has no dependency
// on domain models and uses generics for the actor type:
//   - Gate[uint] for simple user ID based auth
//   - Gate[*User] for full user struct based auth
package gate

import "context"

// Policy decides whether an actor may perform an action on a resource.
// resource may be nil for actions that do not target a specific record
// (list, create).
type Policy[U comparable] interface {
	Can(ctx context.Context, actor U, action Action, resource any) bool
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc[U comparable] func(ctx context.Context, actor U, action Action, resource any) bool

func (f PolicyFunc[U]) Can(ctx context.Context, actor U, action Action, resource any) bool {
	return f(ctx, actor, action, resource)
}

// Gate is the central authorization checkpoint.
// Register policies by resource type name, then call Authorize or Can.
type Gate[U comparable] struct {
	policies map[string]Policy[U]
}

// NewGate creates an empty Gate ready to register policies.
func NewGate[U comparable]() *Gate[U] {
	return &Gate[U]{policies: make(map[string]Policy[U])}
}

// Register adds a policy for a given resource type (e.g., "enrollment").
// Overwrites any existing policy for that type.
func (g *Gate[U]) Register(resourceType string, p Policy[U]) {
	g.policies[resourceType] = p
}

// Authorize checks authorization and returns an error if denied.
// Returns ErrUnauthorized for a zero-value actor or a denied action;
// returns ErrNoPolicyDefined if resourceType has no registered policy.
func (g *Gate[U]) Authorize(ctx context.Context, actor U, action Action, resourceType string, resource any) error {
	var zero U
	if actor == zero {
		return ErrUnauthorized
	}
	p, ok := g.policies[resourceType]
	if !ok {
		return ErrNoPolicyDefined
	}
	if !p.Can(ctx, actor, action, resource) {
		return ErrUnauthorized
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate[U]) Can(ctx context.Context, actor U, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, actor, action, resourceType, resource) == nil
}
