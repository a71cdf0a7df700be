// Package policy wires the authorization gate to the TMS role model and
// provides the role-scoped query surface used by the presentation layer.
package policy

import (
	"context"

	"github.com/diewo77/go-tms/gate"
	"github.com/diewo77/go-tms/internal/models"
)

// ReviewPolicy decides who may validate or reject a pending record.
//
//   - Staff users whose role is not DRH act on any pending item system-wide.
//   - DRH users act only on items scoped to their own structure.
//   - Everyone else is denied.
//
// The same policy instance serves both "account" and "enrollment" resources;
// the subject's scope comes from models.ReviewScoped.
type ReviewPolicy struct{}

// NewReviewPolicy creates the role-scope policy.
func NewReviewPolicy() *ReviewPolicy {
	return &ReviewPolicy{}
}

// Can implements gate.Policy for *models.User actors.
func (p *ReviewPolicy) Can(_ context.Context, actor *models.User, action gate.Action, resource any) bool {
	if actor == nil {
		return false
	}
	if action != gate.ActionValidate && action != gate.ActionReject {
		return false
	}

	if actor.IsStaff && actor.Role != models.RoleDRH {
		return true
	}
	if actor.Role == models.RoleDRH {
		scoped, ok := resource.(models.ReviewScoped)
		if !ok {
			return false
		}
		sid, ok := scoped.ReviewStructureID()
		if !ok {
			return false
		}
		return actor.InStructure(sid)
	}
	return false
}

// NewReviewGate builds a gate with the review policy registered for both
// reviewable resource types.
func NewReviewGate() *gate.Gate[*models.User] {
	g := gate.NewGate[*models.User]()
	p := NewReviewPolicy()
	g.Register("account", p)
	g.Register("enrollment", p)
	return g
}
