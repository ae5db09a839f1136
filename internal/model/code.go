package model

// Role is the access level of the local user.
type Role string

const (
	RoleFree  Role = "free"
	RoleVip   Role = "vip"
	RoleAdmin Role = "admin"
)

// VipCode is a redeemable access code as stored in the remote registry.
// Predictions is the total pool granted at creation and never changes;
// UsedPredictions only grows. AssignedTo binds the code to the first device
// that redeems it and is never cleared by normal flow.
type VipCode struct {
	Code            string `json:"code"`
	Predictions     int    `json:"predictions"`
	UsedPredictions int    `json:"usedPredictions"`
	Active          bool   `json:"active"`
	AssignedTo      string `json:"assignedTo,omitempty"`
	CreatedAt       int64  `json:"createdAt"`
}

// Remaining returns the unconsumed share of the total pool, floored at zero.
func (c VipCode) Remaining() int {
	r := c.Predictions - c.UsedPredictions
	if r < 0 {
		return 0
	}
	return r
}

// Entitlement is the locally persisted access record.
type Entitlement struct {
	Role            Role   `json:"role"`
	Code            string `json:"code,omitempty"`
	PredictionsLeft int    `json:"predictionsLeft,omitempty"`
	UnlockedAt      int64  `json:"unlockedAt,omitempty"`
}
