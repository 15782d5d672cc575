package dto

type CreateTweetRequest struct {
	Content string `json:"content" validate:"required,not_blank,max=280"`
	UserID  string `json:"user_id" validate:"required"`
}

func (r CreateTweetRequest) Validate() error {
	return validateStruct(r)
}
