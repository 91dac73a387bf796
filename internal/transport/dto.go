package transport

type RegisterRequest struct {
	Name            string `json:"name"            validate:"required"`
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Phone           string `json:"phone"           validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateProductRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Description string     `json:"description"`
	Price       PriceValue `json:"price"       validate:"required"`
	Image       *string    `json:"image"`
}

type UpdateProductRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Price       *PriceValue    `json:"price"`
	Image       OptionalString `json:"image"`
}
