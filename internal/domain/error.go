package domain

// ErrorResponse is the body written for every failed request.
// @Description Standard error body.
type ErrorResponse struct {
	Code     int    `json:"code" example:"404"`
	Category string `json:"category" example:"NOT_FOUND"`
	Message  string `json:"message" example:"Resource not found: beer 3f0e... does not exist"`
}
