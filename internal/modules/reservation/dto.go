package reservation

type GuestInput struct {
	FullName    string `json:"full_name" validate:"required,max=150"`
	NationalID  string `json:"national_id" validate:"required,nationalid"`
	PhoneNumber string `json:"phone_number" validate:"required,mobile"`
	Gender      string `json:"gender" validate:"required,oneof=M F"`
}

type QuoteRequest struct {
	Capacity int          `json:"capacity"`
	CheckIn  string       `json:"check_in"`
	CheckOut string       `json:"check_out"`
	Guests   []GuestInput `json:"guests"`
}

type QuoteResult struct {
	RedirectURL string `json:"redirect_url"`
	Authority   string `json:"-"`
	Nights      int    `json:"nights"`
	TotalPrice  int64  `json:"total_price"`
}

type VerifyInput struct {
	UserID    int64
	Status    string
	Authority string
}
