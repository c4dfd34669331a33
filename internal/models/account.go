package models

// Account represents a row in the account table. Responses carry the
// password field as-is; the API has no session layer hiding it.
type Account struct {
	ID       int    `json:"account_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Credentials is the JSON body for POST /register and POST /login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
