// Package access resolves which apps a user may operate on.
package access

// Scope is the per-request capability describing app visibility. The zero
// value grants nothing; Unrestricted() grants everything (admin).
type Scope struct {
	unrestricted bool
	appIDs       map[string]struct{}
	order        []string
}

// Unrestricted returns the admin scope covering every app.
func Unrestricted() Scope {
	return Scope{unrestricted: true}
}

// RestrictedTo returns a scope covering exactly the given app ids.
func RestrictedTo(appIDs []string) Scope {
	s := Scope{appIDs: make(map[string]struct{}, len(appIDs))}
	for _, id := range appIDs {
		if _, ok := s.appIDs[id]; ok {
			continue
		}
		s.appIDs[id] = struct{}{}
		s.order = append(s.order, id)
	}
	return s
}

// IsUnrestricted reports whether the scope covers every app.
func (s Scope) IsUnrestricted() bool {
	return s.unrestricted
}

// Allows reports whether the scope covers appID.
func (s Scope) Allows(appID string) bool {
	if s.unrestricted {
		return true
	}
	_, ok := s.appIDs[appID]
	return ok
}

// Empty reports whether a restricted scope covers no apps at all. Endpoints
// must answer {count:0, data:[]} in that case rather than fail.
func (s Scope) Empty() bool {
	return !s.unrestricted && len(s.appIDs) == 0
}

// AppIDs returns the covered app ids in grant order. Nil for unrestricted
// scopes, meaning "do not filter".
func (s Scope) AppIDs() []string {
	if s.unrestricted {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
