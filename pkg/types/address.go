package types

import "strings"

// Address is the profile-level postal address stored with an identity.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// IsZero reports whether no field carries a value.
func (a Address) IsZero() bool {
	return a == (Address{})
}

// ShippingAddress is the destination captured at checkout. It carries the
// recipient name and phone in addition to the postal fields.
type ShippingAddress struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone"`
}

// Validate reports the postal fields that are missing or blank.
func (s ShippingAddress) Validate() []string {
	missing := []string{}
	if strings.TrimSpace(s.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(s.Street) == "" {
		missing = append(missing, "street")
	}
	if strings.TrimSpace(s.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(s.State) == "" {
		missing = append(missing, "state")
	}
	if strings.TrimSpace(s.ZipCode) == "" {
		missing = append(missing, "zipCode")
	}
	return missing
}
