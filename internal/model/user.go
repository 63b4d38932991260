package model

type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"nome"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
