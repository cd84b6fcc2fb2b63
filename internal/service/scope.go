package service

// GroupScope is an explicit handle on one group's data. Every tenant-scoped
// operation takes a scope argument; there is no ambient "current group", so
// two requests for different groups can never bleed into each other.
type GroupScope struct {
	groupID string
}

// NoScope is the zero scope. The wishlist summary accepts it to mean
// "no member filter".
var NoScope = GroupScope{}

// NewGroupScope binds a scope to the given group ID
func NewGroupScope(groupID string) GroupScope {
	return GroupScope{groupID: groupID}
}

// GroupID returns the bound group ID
func (s GroupScope) GroupID() string {
	return s.groupID
}

// IsZero reports whether the scope is unbound
func (s GroupScope) IsZero() bool {
	return s.groupID == ""
}
