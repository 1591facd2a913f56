package model

const (
	// SchemaCoreUser is the SCIM core user schema URN
	SchemaCoreUser = "urn:ietf:params:scim:schemas:core:2.0:User"
	// SchemaEnterpriseUser is the SCIM enterprise extension schema URN
	SchemaEnterpriseUser = "urn:ietf:params:scim:schemas:extension:enterprise:2.0:User"
)

// User is a RingCentral SCIM user record. Fields that may legitimately be
// absent on a partial update are pointers so that "unset" can be told apart
// from a zero value during merge-on-read.
type User struct {
	ID           string         `json:"id,omitempty"`
	UserName     string         `json:"userName,omitempty"`
	Active       *bool          `json:"active,omitempty"`
	Meta         *Meta          `json:"meta,omitempty"`
	Name         *UserName      `json:"name,omitempty"`
	Emails       []UserEmail    `json:"emails,omitempty"`
	PhoneNumbers []UserPhone    `json:"phoneNumbers,omitempty"`
	Addresses    []UserAddress  `json:"addresses,omitempty"`
	Enterprise   *UserExtension `json:"urn:ietf:params:scim:schemas:extension:enterprise:2.0:User,omitempty"`
	Schemas      []string       `json:"schemas,omitempty"`
}

// UserName is the structured SCIM name of a user
type UserName struct {
	Formatted  string `json:"formatted,omitempty"`
	FamilyName string `json:"familyName,omitempty"`
	GivenName  string `json:"givenName,omitempty"`
}

// UserEmail is one entry of the multi-valued SCIM emails field
type UserEmail struct {
	Value string `json:"value,omitempty"`
	Type  string `json:"type,omitempty"`
}

// UserPhone is one entry of the multi-valued SCIM phoneNumbers field
type UserPhone struct {
	Value string `json:"value,omitempty"`
	Type  string `json:"type,omitempty"`
}

// UserAddress is one entry of the multi-valued SCIM addresses field
type UserAddress struct {
	StreetAddress string `json:"streetAddress,omitempty"`
	Locality      string `json:"locality,omitempty"`
	Region        string `json:"region,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	Country       string `json:"country,omitempty"`
	Type          string `json:"type,omitempty"`
}

// Meta holds server-assigned record metadata
type Meta struct {
	Created      string `json:"created,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
	Location     string `json:"location,omitempty"`
}

// UserExtension is the SCIM enterprise extension payload
type UserExtension struct {
	Department string `json:"department,omitempty"`
}

// NewUser returns a user record prepared for creation, carrying both SCIM
// schema URNs and the default enterprise extension the platform expects.
func NewUser() *User {
	return &User{
		Enterprise: &UserExtension{Department: "Technology"},
		Schemas:    []string{SchemaCoreUser, SchemaEnterpriseUser},
	}
}

// NewUserUpdate returns a user record prepared for update, carrying only the
// core SCIM schema URN.
func NewUserUpdate() *User {
	return &User{
		Schemas: []string{SchemaCoreUser},
	}
}

// PrimaryEmail returns the first email entry. Only the first element of each
// multi-valued field is surfaced by this connector.
func (x *User) PrimaryEmail() *UserEmail {
	if len(x.Emails) == 0 {
		return nil
	}
	return &x.Emails[0]
}

// PrimaryPhone returns the first phone number entry
func (x *User) PrimaryPhone() *UserPhone {
	if len(x.PhoneNumbers) == 0 {
		return nil
	}
	return &x.PhoneNumbers[0]
}

// PrimaryAddress returns the first address entry
func (x *User) PrimaryAddress() *UserAddress {
	if len(x.Addresses) == 0 {
		return nil
	}
	return &x.Addresses[0]
}
