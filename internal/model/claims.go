package model

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleVendor Role = "vendor"
)

type AccessScope string

const (
	AccessAll   AccessScope = "all"
	AccessEvent AccessScope = "event"
)

// Claims is the verified identity attached to a request. The HTTP layer
// fills it from a validated token; everything below treats it as an opaque
// capability record. EventID is set only when Access == AccessEvent.
type Claims struct {
	Subject string      `json:"sub"`
	Role    Role        `json:"role"`
	Access  AccessScope `json:"access"`
	EventID *int        `json:"event_id,omitempty"`
}
