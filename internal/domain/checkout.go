package domain

// CheckoutForm is the shipping/contact input for one checkout attempt.
// All fields are required for a valid submission; the form is passed by
// value and never persisted on its own.
type CheckoutForm struct {
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}
