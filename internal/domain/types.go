package domain

// ID is used across domain entities.
type ID int64

// Operator roles allowed to run mutating endpoints.
const (
	RoleAdmin      = "admin"
	RoleDispatcher = "dispatcher"
)

// RequestContext carries authenticated operator info when available.
type RequestContext struct {
	OperatorID ID     `json:"operatorId"`
	Username   string `json:"username"`
	Role       string `json:"role"`
}
