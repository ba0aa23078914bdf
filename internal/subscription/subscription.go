// Package subscription models the read-once-per-session subscription facts
// the wizard checks entitlements against.
package subscription

import (
	"encoding/json"
	"fmt"
)

// Plan names
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// Unlimited is the sentinel CV limit for plans without a creation quota.
// It serializes as the string "Unlimited" on the wire.
const Unlimited Limit = -1

// FreePlanCVLimit is the number of CVs a free-plan user may create.
const FreePlanCVLimit Limit = 3

// Limit is a CV-creation quota that marshals as a JSON number, or as the
// string "Unlimited" when no quota applies.
type Limit int

// MarshalJSON implements json.Marshaler.
func (l Limit) MarshalJSON() ([]byte, error) {
	if l == Unlimited {
		return json.Marshal("Unlimited")
	}
	return json.Marshal(int(l))
}

// UnmarshalJSON implements json.Unmarshaler, accepting either form.
func (l *Limit) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*l = Limit(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid cv limit: %s", string(data))
	}
	if s != "Unlimited" {
		return fmt.Errorf("invalid cv limit: %q", s)
	}
	*l = Unlimited
	return nil
}

// Snapshot is the per-session view of a user's plan. It is fetched once at
// wizard mount and never refreshed within the session.
type Snapshot struct {
	CanCreateCV bool   `json:"canCreateCV"`
	Plan        string `json:"plan"`
	CVCreated   int    `json:"cvCreated"`
	CVLimit     Limit  `json:"cvLimit"`
}

// ForPlan builds the snapshot for a plan name given how many CVs the user
// has already created. Unknown plans are treated as free.
func ForPlan(plan string, cvCreated int) Snapshot {
	switch plan {
	case PlanPro:
		return Snapshot{
			CanCreateCV: true,
			Plan:        PlanPro,
			CVCreated:   cvCreated,
			CVLimit:     Unlimited,
		}
	default:
		return Snapshot{
			CanCreateCV: cvCreated < int(FreePlanCVLimit),
			Plan:        PlanFree,
			CVCreated:   cvCreated,
			CVLimit:     FreePlanCVLimit,
		}
	}
}

// AllowsPremiumTemplates reports whether the plan may select templates
// flagged premium.
func (s Snapshot) AllowsPremiumTemplates() bool {
	return s.Plan != PlanFree
}

// AllowsGeneration reports whether the plan may use AI-assisted generation.
func (s Snapshot) AllowsGeneration() bool {
	return s.Plan != PlanFree
}
