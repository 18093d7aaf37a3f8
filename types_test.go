package portalauth

import (
	"encoding/json"
	"testing"
)

func TestIdentityFromPayloadPerRole(t *testing.T) {
	cases := []struct {
		name       string
		role       Role
		payload    string
		fallbackID string
		wantID     string
		wantName   string
		wantEmail  string
	}{
		{
			name:      "student full name joined",
			role:      RoleStudent,
			payload:   `{"studentAdmissionNumber":"GE2021001","studentFirstName":"Aarav","studentLastName":"Sharma","emailId":"aarav@example.edu"}`,
			wantID:    "GE2021001",
			wantName:  "Aarav Sharma",
			wantEmail: "aarav@example.edu",
		},
		{
			name:     "student first name only, no trailing space",
			role:     RoleStudent,
			payload:  `{"studentAdmissionNumber":"GE2021002","studentFirstName":"Jo"}`,
			wantID:   "GE2021002",
			wantName: "Jo",
		},
		{
			name:       "student missing id falls back to submitted",
			role:       RoleStudent,
			payload:    `{"studentFirstName":"Jo"}`,
			fallbackID: "GE2021003",
			wantID:     "GE2021003",
			wantName:   "Jo",
		},
		{
			name:      "company",
			role:      RoleCompany,
			payload:   `{"companyId":"ACME01","companyName":"Acme Corp","hrEmail":"hr@acme.test"}`,
			wantID:    "ACME01",
			wantName:  "Acme Corp",
			wantEmail: "hr@acme.test",
		},
		{
			name:     "company missing name uses placeholder",
			role:     RoleCompany,
			payload:  `{"companyId":"ACME02"}`,
			wantID:   "ACME02",
			wantName: "Company",
		},
		{
			name:      "admin",
			role:      RoleAdmin,
			payload:   `{"adminId":"ADM001","adminName":"Priya","emailAddress":"priya@portal.test"}`,
			wantID:    "ADM001",
			wantName:  "Priya",
			wantEmail: "priya@portal.test",
		},
		{
			name:     "admin missing name uses placeholder",
			role:     RoleAdmin,
			payload:  `{"adminId":"ADM002"}`,
			wantID:   "ADM002",
			wantName: "Admin",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			identity, err := identityFromPayload(tc.role, json.RawMessage(tc.payload), tc.fallbackID)
			if err != nil {
				t.Fatalf("identityFromPayload failed: %v", err)
			}
			if identity.ID != tc.wantID || identity.Name != tc.wantName || identity.Email != tc.wantEmail {
				t.Fatalf("identity = %+v, want id=%q name=%q email=%q", identity, tc.wantID, tc.wantName, tc.wantEmail)
			}
			if identity.Role != tc.role {
				t.Fatalf("role = %q, want %q", identity.Role, tc.role)
			}
			if identity.Data == nil || identity.Data.RoleTag() != tc.role {
				t.Fatalf("data tag = %v, want %q", identity.Data, tc.role)
			}
		})
	}
}

func TestIdentityFromPayloadRejectsMalformedPayload(t *testing.T) {
	if _, err := identityFromPayload(RoleStudent, json.RawMessage(`"not an object"`), "x"); err == nil {
		t.Fatal("malformed payload accepted")
	}
	if _, err := identityFromPayload(Role("root"), json.RawMessage(`{}`), "x"); err != ErrUnknownRole {
		t.Fatalf("unknown role error = %v, want ErrUnknownRole", err)
	}
}

func TestNumericStringDecoding(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want NumericString
	}{
		{"number", `{"cgpa":9.1}`, "9.1"},
		{"integer", `{"cgpa":8}`, "8"},
		{"string", `{"cgpa":"7.25"}`, "7.25"},
		{"empty string", `{"cgpa":""}`, ""},
		{"null", `{"cgpa":null}`, ""},
		{"absent", `{}`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d StudentData
			if err := json.Unmarshal([]byte(tc.in), &d); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if d.CGPA != tc.want {
				t.Fatalf("cgpa = %q, want %q", d.CGPA, tc.want)
			}
		})
	}
}

func TestNumericStringMarshalsAsString(t *testing.T) {
	out, err := json.Marshal(StudentData{CGPA: "9.1"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var round map[string]any
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if round["cgpa"] != "9.1" {
		t.Fatalf("cgpa marshaled as %v, want string", round["cgpa"])
	}
}

func TestRoleValidAndPathSegment(t *testing.T) {
	segments := map[Role]string{
		RoleStudent: "students",
		RoleAdmin:   "admins",
		RoleCompany: "companies",
	}
	for _, role := range Roles() {
		if !role.Valid() {
			t.Fatalf("enumerated role %q invalid", role)
		}
		if got := role.pathSegment(); got != segments[role] {
			t.Fatalf("pathSegment(%q) = %q, want %q", role, got, segments[role])
		}
	}
	if Role("superuser").Valid() {
		t.Fatal("unknown role reported valid")
	}
}
