package form

import (
	"strings"
	"unicode/utf8"

	"github.com/ghaggin/newsgate/internal/api"
)

type Signup struct {
	Name            string `json:"nome"`
	Email           string `json:"email"`
	Password        string `json:"senha"`
	ConfirmPassword string `json:"confirmarSenha"`
}

func (f Signup) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Name) == "" {
		errs.add("nome", MsgNameRequired)
	}
	if !validEmail(strings.TrimSpace(f.Email)) {
		errs.add("email", MsgEmailInvalid)
	}
	if utf8.RuneCountInString(f.Password) < minPasswordLen {
		errs.add("senha", MsgPasswordShort)
	}
	if f.ConfirmPassword == "" || f.ConfirmPassword != f.Password {
		errs.add("confirmarSenha", MsgPasswordsDiffer)
	}
	return errs
}

func (f Signup) Request() api.SignupRequest {
	return api.SignupRequest{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	}
}

type Login struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

func (f Login) Validate() Errors {
	errs := Errors{}
	if !validEmail(strings.TrimSpace(f.Email)) {
		errs.add("email", MsgEmailInvalid)
	}
	if f.Password == "" {
		errs.add("senha", MsgPasswordMissing)
	}
	return errs
}

func (f Login) Credentials() api.Credentials {
	return api.Credentials{
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	}
}

// Profile edits the signed-in user. An empty password keeps the current one.
type Profile struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
}

func (f Profile) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Name) == "" {
		errs.add("nome", MsgNameRequired)
	}
	if !validEmail(strings.TrimSpace(f.Email)) {
		errs.add("email", MsgEmailInvalid)
	}
	if f.Password != "" && utf8.RuneCountInString(f.Password) < minPasswordLen {
		errs.add("senha", MsgPasswordShort)
	}
	return errs
}

func (f Profile) Update() api.ProfileUpdate {
	return api.ProfileUpdate{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	}
}
