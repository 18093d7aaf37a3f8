package portalauth

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Role identifies one of the three account kinds supported by the portal.
// Each role has disjoint login endpoints, credential fields, and profile
// shape.
type Role string

const (
	// RoleStudent is an exported constant or variable used by the session core.
	RoleStudent Role = "student"
	// RoleAdmin is an exported constant or variable used by the session core.
	RoleAdmin Role = "admin"
	// RoleCompany is an exported constant or variable used by the session core.
	RoleCompany Role = "company"
)

// Roles returns the enumerated role set in declaration order.
func Roles() []Role {
	return []Role{RoleStudent, RoleAdmin, RoleCompany}
}

// Valid describes the valid operation and its observable behavior.
//
// Valid does not mutate shared global state and can be used concurrently.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleCompany:
		return true
	}
	return false
}

// pathSegment is the plural path component the backend binds the role to,
// e.g. "students" in /api/students/login.
func (r Role) pathSegment() string {
	if r == RoleCompany {
		return "companies"
	}
	return string(r) + "s"
}

// Credentials carries a submitted user ID and password. Credentials are
// ephemeral: they are consumed by a single login request and never persisted.
type Credentials struct {
	UserID   string
	Password string
}

// Identity is the unified in-memory representation of "who is logged in". It
// is created only by a successful login, mutated only by profile
// synchronization replacing Data, and destroyed only by Logout.
type Identity struct {
	ID    string
	Name  string
	Role  Role
	Email string
	Data  RoleData
}

// RoleData is the role-specific profile variant carried by an [Identity].
// Its tag always equals the owning identity's role: a student identity never
// carries company or admin data.
type RoleData interface {
	RoleTag() Role
}

// NumericString decodes from either a JSON number or a JSON string. The
// backend emits "" for unset numeric fields and a bare number otherwise.
type NumericString string

// UnmarshalJSON describes the unmarshaljson operation and its observable behavior.
//
// UnmarshalJSON may return an error when input validation fails.
func (n *NumericString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = NumericString(num.String())
	return nil
}

// MarshalJSON describes the marshaljson operation and its observable behavior.
func (n NumericString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(n))
}

// StudentData is the student profile variant, a flat mapping of backend field
// names to values.
type StudentData struct {
	AdmissionNumber  string        `json:"studentAdmissionNumber"`
	FirstName        string        `json:"studentFirstName"`
	LastName         string        `json:"studentLastName"`
	EmailID          string        `json:"emailId"`
	Department       string        `json:"department"`
	MobileNo         string        `json:"mobileNo"`
	DateOfBirth      string        `json:"dateOfBirth"`
	PhotographLink   string        `json:"photographLink"`
	UniversityRollNo string        `json:"studentUniversityRollNo"`
	CGPA             NumericString `json:"cgpa"`
	Batch            string        `json:"batch"`
	Course           string        `json:"course"`
}

// RoleTag describes the roletag operation and its observable behavior.
func (StudentData) RoleTag() Role { return RoleStudent }

// CompanyData is the company profile variant.
type CompanyData struct {
	CompanyID   string `json:"companyId"`
	CompanyName string `json:"companyName"`
	HRName      string `json:"hrName"`
	HREmail     string `json:"hrEmail"`
	HRPhone     string `json:"hrPhone"`
	PhotoLink   string `json:"photoLink"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// RoleTag describes the roletag operation and its observable behavior.
func (CompanyData) RoleTag() Role { return RoleCompany }

// AdminData is the admin profile variant.
type AdminData struct {
	AdminID      string `json:"adminId"`
	AdminName    string `json:"adminName"`
	EmailAddress string `json:"emailAddress"`
	PhoneNumber  string `json:"phoneNumber"`
	City         string `json:"city"`
	Department   string `json:"department"`
	DateOfBirth  string `json:"dateOfBirth"`
}

// RoleTag describes the roletag operation and its observable behavior.
func (AdminData) RoleTag() Role { return RoleAdmin }

// roleSchema statically enumerates, per role, how a backend payload decodes
// into a RoleData variant and how the canonical identity fields are extracted
// from it. This replaces runtime property probing with an exhaustive table.
type roleSchema struct {
	decode   func(raw json.RawMessage) (RoleData, error)
	identity func(data RoleData, fallbackID string) (id, name, email string)
}

var roleSchemas = map[Role]roleSchema{
	RoleStudent: {
		decode: func(raw json.RawMessage) (RoleData, error) {
			var d StudentData
			if err := json.Unmarshal(raw, &d); err != nil {
				return nil, err
			}
			return d, nil
		},
		identity: func(data RoleData, fallbackID string) (string, string, string) {
			d := data.(StudentData)
			id := d.AdmissionNumber
			if id == "" {
				id = fallbackID
			}
			name := strings.TrimSpace(d.FirstName + " " + d.LastName)
			return id, name, d.EmailID
		},
	},
	RoleCompany: {
		decode: func(raw json.RawMessage) (RoleData, error) {
			var d CompanyData
			if err := json.Unmarshal(raw, &d); err != nil {
				return nil, err
			}
			return d, nil
		},
		identity: func(data RoleData, fallbackID string) (string, string, string) {
			d := data.(CompanyData)
			id := d.CompanyID
			if id == "" {
				id = fallbackID
			}
			name := d.CompanyName
			if name == "" {
				name = "Company"
			}
			return id, name, d.HREmail
		},
	},
	RoleAdmin: {
		decode: func(raw json.RawMessage) (RoleData, error) {
			var d AdminData
			if err := json.Unmarshal(raw, &d); err != nil {
				return nil, err
			}
			return d, nil
		},
		identity: func(data RoleData, fallbackID string) (string, string, string) {
			d := data.(AdminData)
			id := d.AdminID
			if id == "" {
				id = fallbackID
			}
			name := d.AdminName
			if name == "" {
				name = "Admin"
			}
			return id, name, d.EmailAddress
		},
	},
}

// decodeRoleData decodes a raw backend payload into the variant bound to role.
func decodeRoleData(role Role, raw json.RawMessage) (RoleData, error) {
	schema, ok := roleSchemas[role]
	if !ok {
		return nil, ErrUnknownRole
	}
	return schema.decode(raw)
}

// identityFromPayload builds an [Identity] from a login response payload.
// Absent optional fields are tolerated: a missing id falls back to the
// submitted user ID, and a missing name or email never fails the login.
func identityFromPayload(role Role, raw json.RawMessage, fallbackID string) (Identity, error) {
	data, err := decodeRoleData(role, raw)
	if err != nil {
		return Identity{}, err
	}

	schema := roleSchemas[role]
	id, name, email := schema.identity(data, fallbackID)

	return Identity{
		ID:    id,
		Name:  name,
		Role:  role,
		Email: email,
		Data:  data,
	}, nil
}

// Renderer is the collaborator interface to the excluded rendering layer. The
// core issues opaque "render slot X with value Y" calls through it and never
// inspects document structure itself.
type Renderer interface {
	RenderText(slot Slot, text string)
	SetFieldRequired(field string, required bool)
	ClearForm()
	ShowMessage(kind MessageKind, text string)
	HideMessage()
}

// Slot names a role-dependent text region owned by the rendering layer.
type Slot string

const (
	// SlotWelcome is an exported constant or variable used by the session core.
	SlotWelcome Slot = "roleWelcome"
	// SlotDescription is an exported constant or variable used by the session core.
	SlotDescription Slot = "roleDescription"
	// SlotFormTitle is an exported constant or variable used by the session core.
	SlotFormTitle Slot = "formTitle"
	// SlotFormDescription is an exported constant or variable used by the session core.
	SlotFormDescription Slot = "formDescription"
	// SlotLoginButton is an exported constant or variable used by the session core.
	SlotLoginButton Slot = "loginBtnText"
	// SlotRegisterHint is an exported constant or variable used by the session core.
	SlotRegisterHint Slot = "registerText"
	// SlotResetTitle is an exported constant or variable used by the session core.
	SlotResetTitle Slot = "modalTitle"
	// SlotResetDescription is an exported constant or variable used by the session core.
	SlotResetDescription Slot = "modalDescription"
	// SlotResetLabel is an exported constant or variable used by the session core.
	SlotResetLabel Slot = "modalLabel"
	// SlotResetPlaceholder is an exported constant or variable used by the session core.
	SlotResetPlaceholder Slot = "resetUserId"
)
