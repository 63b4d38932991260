// Package form holds the input of every screen that submits data, each with
// a pure Validate that reports all failing fields at once.
package form

import (
	"net/url"
	"sort"
	"strings"
)

const (
	MsgNameRequired    = "nome obrigatório"
	MsgEmailInvalid    = "email inválido"
	MsgPasswordShort   = "mínimo 6 caracteres"
	MsgPasswordMissing = "senha obrigatória"
	MsgPasswordsDiffer = "senhas não coincidem"

	MsgTitleRequired       = "título obrigatório"
	MsgDescriptionRequired = "descrição obrigatória"
	MsgAuthorRequired      = "autor obrigatório"
	MsgCategoryRequired    = "categoria obrigatória"
	MsgCategoryInvalid     = "categoria inválida"
	MsgLinkInvalid         = "link inválido"
	MsgImageInvalid        = "URL da imagem inválida"

	minPasswordLen = 6
)

// Errors maps a field name to the message shown next to it.
type Errors map[string]string

func (e Errors) add(field, msg string) {
	e[field] = msg
}

func (e Errors) Any() bool {
	return len(e) > 0
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

func validEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// validURL accepts an absolute http(s) URL. Empty input is the caller's call.
func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
