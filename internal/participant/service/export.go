package service

import (
	"context"
	"strings"

	"campaign/pkg/apperr"
)

// csvHeader fixes the export column order the dashboard spreadsheet expects.
var csvHeader = []string{
	"Nome", "Email", "Telefone", "Data de Registro", "Status",
	"Dispositivo", "Navegador", "IP", "Email Enviado",
}

// ExportCSV renders every participant as CSV, newest first: one header line
// plus one line per record, no trailing newline. Every field is
// double-quote-wrapped; embedded quotes are not escaped, matching the format
// the existing dashboard import consumes.
func (a *Admin) ExportCSV(ctx context.Context) (string, error) {
	participants, err := a.store.List(ctx)
	if err != nil {
		return "", apperr.Wrap(err, apperr.CodeInternal, "export participants")
	}

	lines := make([]string, 0, len(participants)+1)
	lines = append(lines, csvRow(csvHeader))
	for _, p := range participants {
		lines = append(lines, csvRow([]string{
			p.Name,
			p.Email,
			p.Phone,
			p.RegistrationDate.Local().Format("02/01/2006 15:04:05"),
			string(p.Status),
			orNA(p.DeviceInfo.Device),
			orNA(p.ClientInfo.Browser),
			orNA(p.ClientInfo.IP),
			yesNo(p.EmailConfirmationSent),
		}))
	}
	return strings.Join(lines, "\n"), nil
}

func csvRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + f + `"`
	}
	return strings.Join(quoted, ",")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}
