package checkout

import "strings"

// CheckoutForm holds the buyer-supplied fields required to complete an
// order. It is a plain mutable record; whether the fields are acceptable
// is a dispatch precondition, not a concern of this type.
type CheckoutForm struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Message  string `json:"message"`
}

// HasContact reports whether the required fields are filled in
func (f CheckoutForm) HasContact() bool {
	return strings.TrimSpace(f.Name) != "" && strings.TrimSpace(f.Location) != ""
}

// Reset clears all fields
func (f *CheckoutForm) Reset() {
	*f = CheckoutForm{}
}
