package request

type PurchasePassRequest struct {
	PaymentType   string  `json:"payment_type" validate:"required,oneof=daily weekly monthly"`
	StartDate     string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	PaymentMethod *string `json:"payment_method,omitempty" validate:"omitempty,min=2,max=40"`
}
