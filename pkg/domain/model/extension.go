package model

// ContactExtension is the platform's contact/phone-extension record, distinct
// from the SCIM user record. One is created as a prerequisite of user creation.
type ContactExtension struct {
	Contact ExtensionContact `json:"contact"`
	Type    string           `json:"type,omitempty"`
}

// ExtensionContact carries the contact details of an extension
type ExtensionContact struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// NewContactExtension builds the extension record created alongside a user
func NewContactExtension(firstName, lastName, email string) *ContactExtension {
	return &ContactExtension{
		Contact: ExtensionContact{
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
		},
		Type: "User",
	}
}
