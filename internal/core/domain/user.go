package domain

// Role determines a user's visibility and mutation rights.
type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleMaster Role = "master"
)

// Valid reports whether r is one of the three defined roles. Unknown values
// are rejected at creation/update time, never silently defaulted.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleMaster:
		return true
	}
	return false
}

// DocumentType is the kind of identity document backing a user record.
type DocumentType string

const (
	DocTypeCC   DocumentType = "CC"
	DocTypeTI   DocumentType = "TI"
	DocTypeCE   DocumentType = "CE"
	DocTypePA   DocumentType = "PA"
	DocTypeRC   DocumentType = "RC"
	DocTypeNUIP DocumentType = "NUIP"
	DocTypePEP  DocumentType = "PEP"
	DocTypePPT  DocumentType = "PPT"
	DocTypeNIT  DocumentType = "NIT"
)

// Valid reports whether d is a member of the fixed document-type set.
func (d DocumentType) Valid() bool {
	switch d {
	case DocTypeCC, DocTypeTI, DocTypeCE, DocTypePA, DocTypeRC,
		DocTypeNUIP, DocTypePEP, DocTypePPT, DocTypeNIT:
		return true
	}
	return false
}

// User is the core identity record. ID is the document number and doubles as
// the primary key in the store; it is immutable once created.
type User struct {
	ID           string       `json:"id"`
	DocumentType DocumentType `json:"document_type"`
	Role         Role         `json:"role"`
	Name         string       `json:"name"`
	LastName1    string       `json:"last_name1"`
	LastName2    string       `json:"last_name2"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	PasswordHash string       `json:"-"`
}

// Sanitized returns a copy of u with the password hash stripped. Every
// user record handed back to a caller goes through this.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}
