// Package validate holds the field-level registration rules. All rules run
// independently so a single pass collects every violation; nothing here has
// side effects.
package validate

import (
	"regexp"
	"strings"
)

const (
	nameMinLen = 2
	nameMaxLen = 100
)

// phonePattern accepts a 2-digit area code and a 4-or-5-digit prefix,
// e.g. "(11) 9876-5432" or "(11) 98765-4321". Nothing else.
var phonePattern = regexp.MustCompile(`^\(\d{2}\)\s\d{4,5}-\d{4}$`)

// emailPattern is the standard local@domain grammar with a dot-delimited
// domain. Deliverability is not checked here; the confirmation email is the
// real probe.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// Registration validates the raw form fields and returns every violation as a
// human-readable message, in rule order. An empty slice means valid.
func Registration(name, email, phone string, terms bool) []string {
	var violations []string

	name = strings.TrimSpace(name)
	switch {
	case name == "":
		violations = append(violations, "Nome é obrigatório")
	case len([]rune(name)) < nameMinLen:
		violations = append(violations, "Nome deve ter pelo menos 2 caracteres")
	case len([]rune(name)) > nameMaxLen:
		violations = append(violations, "Nome não pode exceder 100 caracteres")
	}

	email = strings.TrimSpace(email)
	switch {
	case email == "":
		violations = append(violations, "Email é obrigatório")
	case !emailPattern.MatchString(email):
		violations = append(violations, "Email inválido")
	}

	phone = strings.TrimSpace(phone)
	switch {
	case phone == "":
		violations = append(violations, "Telefone é obrigatório")
	case !phonePattern.MatchString(phone):
		violations = append(violations, "Telefone deve estar no formato (11) 99999-9999")
	}

	if !terms {
		violations = append(violations, "É necessário aceitar o regulamento")
	}

	return violations
}
