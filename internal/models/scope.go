package models

// ReviewScoped is implemented by records whose approval is scoped to an
// organizational structure. The policy layer uses it to decide whether a
// DRH reviewer may act on the record.
type ReviewScoped interface {
	ReviewStructureID() (uint, bool)
}

// ReviewStructureID returns the structure that scopes review of this
// account. Accounts without a structure cannot be matched by a DRH scope.
func (u *User) ReviewStructureID() (uint, bool) {
	if u.StructureID == nil {
		return 0, false
	}
	return *u.StructureID, true
}

// ReviewStructureID returns the owning structure of the enrollment's
// formation. Requires Formation to be loaded.
func (e *Enrollment) ReviewStructureID() (uint, bool) {
	if e.Formation == nil {
		return 0, false
	}
	return e.Formation.StructureID, true
}
