package models

// Category classifies the message attached to an API response, mirroring the
// notices shown by the administration UI.
type Category string

const (
	CategorySuccess Category = "success"
	CategoryError   Category = "error"
	CategoryInfo    Category = "info"
)
