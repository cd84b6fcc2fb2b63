package service

// AdminPolicy decides whether a user may perform curator and administrative
// operations. The engines themselves are policy-agnostic; handlers consult
// the policy before calling them.
type AdminPolicy interface {
	IsAdmin(username string) bool
}

// StaticAdminPolicy grants admin rights to a fixed set of usernames from
// configuration.
type StaticAdminPolicy struct {
	admins map[string]struct{}
}

// NewStaticAdminPolicy creates a policy from a list of admin usernames
func NewStaticAdminPolicy(usernames []string) *StaticAdminPolicy {
	admins := make(map[string]struct{}, len(usernames))
	for _, u := range usernames {
		if u != "" {
			admins[u] = struct{}{}
		}
	}
	return &StaticAdminPolicy{admins: admins}
}

// IsAdmin reports whether username is in the admin set
func (p *StaticAdminPolicy) IsAdmin(username string) bool {
	_, ok := p.admins[username]
	return ok
}
