package types

import (
	"strings"

	"github.com/saikambala25/goat/pkg/validation"
)

// Address is a free-form shipping address. It is stored as JSON inside the
// users.addresses and orders.address columns.
type Address struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Validate requires every field to be present. Values are not normalized.
func (a Address) Validate() validation.Result {
	var res validation.Result
	res.Required("name", a.Name)
	res.Required("phone", a.Phone)
	res.Required("line1", a.Line1)
	res.Required("city", a.City)
	res.Required("state", a.State)
	res.Required("pincode", a.Pincode)
	return res
}

// Trimmed returns a copy with surrounding whitespace removed from each field.
func (a Address) Trimmed() Address {
	return Address{
		Name:    strings.TrimSpace(a.Name),
		Phone:   strings.TrimSpace(a.Phone),
		Line1:   strings.TrimSpace(a.Line1),
		City:    strings.TrimSpace(a.City),
		State:   strings.TrimSpace(a.State),
		Pincode: strings.TrimSpace(a.Pincode),
	}
}
