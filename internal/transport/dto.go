package transport

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type OrderItem struct {
	ProductID uint    `json:"product_id"`
	Quantity  uint    `json:"quantity"`
	Price     float64 `json:"price"`
}

type PlaceOrderRequest struct {
	Token     string      `json:"token"`
	Name      string      `json:"name"`
	Address   string      `json:"address"`
	Phone     string      `json:"phone"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	PaymentID string      `json:"payment_id"`
}

type OrderReceipt struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type UpdateStatusRequest struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}

type ProductRequest struct {
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
}

type OTPRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type CreatePaymentRequest struct {
	Amount float64 `json:"amount"`
}

type SupportRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
