package models

type DashboardAction struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Dashboard struct {
	User               *User                 `json:"user"`
	RoleDescription    string                `json:"role_description"`
	PendingApplication *OrganizerApplication `json:"pending_application,omitempty"`
	Action             *DashboardAction      `json:"action,omitempty"`
}
