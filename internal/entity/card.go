package entity

// Card is one classified business-card row for data transfer between layers.
// CardHolder doubles as the row key: two cards printed with the same name
// collide in storage and cannot be told apart by edit or delete.
type Card struct {
	CompanyName  string `json:"company_name"`
	CardHolder   string `json:"card_holder"`
	Designation  string `json:"designation"`
	MobileNumber string `json:"mobile_number"`
	Email        string `json:"email"`
	Website      string `json:"website"`
	Area         string `json:"area"`
	City         string `json:"city"`
	State        string `json:"state"`
	PinCode      string `json:"pin_code"`
}
