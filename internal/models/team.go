package models

// RoleTag identifies what a team member can work on.
type RoleTag string

const (
	RoleScripter      RoleTag = "scripter"
	RoleBuilder       RoleTag = "builder"
	RoleUIDesigner    RoleTag = "ui_designer"
	Role3DArtist      RoleTag = "3d_artist"
	RoleGameDesigner  RoleTag = "game_designer"
	RoleSoundDesigner RoleTag = "sound_designer"
)

// KnownRoles returns every role tag the front-end can assign.
func KnownRoles() []RoleTag {
	return []RoleTag{
		RoleScripter,
		RoleBuilder,
		RoleUIDesigner,
		Role3DArtist,
		RoleGameDesigner,
		RoleSoundDesigner,
	}
}

// TeamMember is one entry of the roster sent with a generation request.
type TeamMember struct {
	Name         string    `json:"name" yaml:"name"`
	GitHubHandle string    `json:"github_handle" yaml:"github_handle"`
	Roles        []RoleTag `json:"roles" yaml:"roles"`
	Active       bool      `json:"active" yaml:"active"`
}

// TeamConfig is the roster plus the advisory task -> roles mapping.
// AssignmentRules is only rendered into the prompt; nothing enforces it.
type TeamConfig struct {
	Members         []TeamMember         `json:"members" yaml:"members"`
	AssignmentRules map[string][]RoleTag `json:"assignment_rules" yaml:"assignment_rules"`
}

// ActiveMembers returns the members flagged active, in roster order.
func (t TeamConfig) ActiveMembers() []TeamMember {
	active := make([]TeamMember, 0, len(t.Members))
	for _, m := range t.Members {
		if m.Active {
			active = append(active, m)
		}
	}
	return active
}
