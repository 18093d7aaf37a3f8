package session

import (
	"encoding/json"
	"errors"
)

// Record is the externalized form of the authenticated identity, the only
// unit ever written to persistence. Exactly one of the role data fields is
// set, and it is the one matching Role; credentials are never part of a
// Record.
type Record struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`

	StudentData json.RawMessage `json:"studentData,omitempty"`
	CompanyData json.RawMessage `json:"companyData,omitempty"`
	AdminData   json.RawMessage `json:"adminData,omitempty"`
}

var errRecordInvalid = errors.New("session record invalid")

// validate enforces the tagged-union invariant: the role is one of the three
// known kinds and only the matching data variant is populated.
func (r *Record) validate() error {
	if r == nil || r.ID == "" {
		return errRecordInvalid
	}

	var want *json.RawMessage
	switch r.Role {
	case "student":
		want = &r.StudentData
	case "admin":
		want = &r.AdminData
	case "company":
		want = &r.CompanyData
	default:
		return errRecordInvalid
	}

	if len(*want) == 0 {
		return errRecordInvalid
	}
	set := 0
	for _, raw := range []json.RawMessage{r.StudentData, r.AdminData, r.CompanyData} {
		if len(raw) > 0 {
			set++
		}
	}
	if set != 1 {
		return errRecordInvalid
	}
	return nil
}
