package portalauth

import (
	"fmt"
	"sync"
)

// roleFormFields lists, per role, the credential inputs belonging to that
// role's form. Field names follow the host page's input identifiers.
var roleFormFields = map[Role][]string{
	RoleStudent: {"studentId", "studentPassword"},
	RoleAdmin:   {"adminId", "adminPassword"},
	RoleCompany: {"companyId", "companyPassword"},
}

// roleText is the static per-role display copy rendered on every transition.
type roleText struct {
	title           string
	welcome         string
	description     string
	formDescription string
	buttonLabel     string
	registerHint    string
	dashboardRoute  string
}

var roleTexts = map[Role]roleText{
	RoleStudent: {
		title:           "Student",
		welcome:         "Welcome Back, Student!",
		description:     "Access your placement portal account to explore opportunities, apply for jobs, and track your applications.",
		formDescription: "Enter your student credentials to access your account",
		buttonLabel:     "Login as Student",
		registerHint:    "New student? Create an account",
		dashboardRoute:  "student_dashboard.html",
	},
	RoleAdmin: {
		title:           "Admin",
		welcome:         "Welcome, Administrator!",
		description:     "Manage the placement portal operations, oversee student and company accounts, and view placement statistics.",
		formDescription: "Enter your admin credentials to access your account",
		buttonLabel:     "Login as Admin",
		registerHint:    "Need admin access? Contact super admin",
		dashboardRoute:  "original-admin.html",
	},
	RoleCompany: {
		title:           "Company",
		welcome:         "Welcome, Company Representative!",
		description:     "Access talented student profiles, schedule campus drives, and manage your recruitment process.",
		formDescription: "Enter your company credentials to access your account",
		buttonLabel:     "Login as Company",
		registerHint:    "New company? Register your company",
		dashboardRoute:  "company_dashboard.html",
	},
}

// roleState owns which role is currently selected. It lives for the engine's
// lifetime, has no terminal state, and is reset to student on Initialize.
type roleState struct {
	mu     sync.Mutex
	active Role
}

func newRoleState() *roleState {
	return &roleState{active: RoleStudent}
}

func (s *roleState) activeRole() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// selectRole transitions to role and applies every transition effect through
// the renderer: the previous role's required markings and any displayed
// message are cleared, the new role's inputs are marked required, the
// role-dependent display copy is rendered, and form values are cleared. The
// effects are applied under the state lock, so a caller observes the
// transition as atomic.
//
// A role outside the enumerated set is a programming error and panics.
func (s *roleState) selectRole(role Role, r Renderer, p *presenter) Role {
	if !role.Valid() {
		panic(fmt.Sprintf("portalauth: select of unknown role %q", role))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.active

	for _, field := range roleFormFields[previous] {
		r.SetFieldRequired(field, false)
	}
	p.hide()

	for _, field := range roleFormFields[role] {
		r.SetFieldRequired(field, true)
	}

	text := roleTexts[role]
	r.RenderText(SlotWelcome, text.welcome)
	r.RenderText(SlotDescription, text.description)
	r.RenderText(SlotFormTitle, text.title+" Login")
	r.RenderText(SlotFormDescription, text.formDescription)
	r.RenderText(SlotLoginButton, text.buttonLabel)
	r.RenderText(SlotRegisterHint, text.registerHint)

	r.ClearForm()

	s.active = role
	return previous
}

// DashboardRoute returns the host-page route the given role lands on after a
// successful login. The redirect itself stays with the host.
func DashboardRoute(role Role) string {
	if !role.Valid() {
		panic(fmt.Sprintf("portalauth: dashboard route of unknown role %q", role))
	}
	return roleTexts[role].dashboardRoute
}
