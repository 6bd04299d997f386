package mailer

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"campaign/internal/participant/models"
)

// Subject is the fixed confirmation subject line.
const Subject = "Confirmação de Participação - Desafio SWS Julho 2025"

// confirmationTmpl is the fixed confirmation document. It only interpolates
// the participant's own registration data; there is no other business logic.
var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Confirmação de Participação</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
        .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
        .highlight { background: #e8f4f8; padding: 15px; border-left: 4px solid #667eea; margin: 20px 0; }
        .footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Participação Confirmada!</h1>
        <h2>Desafio SWS - Julho 2025</h2>
    </div>

    <div class="content">
        <p>Olá <strong>{{.Name}}</strong>,</p>

        <p>Sua participação no <strong>Desafio SWS - Julho 2025</strong> foi confirmada com sucesso!</p>

        <div class="highlight">
            <h3>Dados Confirmados:</h3>
            <p><strong>Nome:</strong> {{.Name}}</p>
            <p><strong>Email:</strong> {{.Email}}</p>
            <p><strong>Telefone:</strong> {{.Phone}}</p>
            <p><strong>Data de Inscrição:</strong> {{.RegistrationDate}}</p>
        </div>

        <h3>Prêmios da Campanha:</h3>
        <ul>
            <li><strong>Carro Zero BYD Dolphin Mini</strong> - Para o maior volume em projetos estruturados (mín. R$ 6.000.000)</li>
            <li><strong>Vale-Viagem R$ 10.000</strong> - Para o maior volume em coletores Compritec (mín. 250 unidades)</li>
        </ul>

        <h3>Período da Campanha:</h3>
        <p>De <strong>1º a 31 de julho de 2025</strong></p>

        <div class="highlight">
            <h3>Lembrete Importante:</h3>
            <p>Para que suas vendas sejam contabilizadas, elas devem estar:</p>
            <ul>
                <li>Faturadas até 31/07/2025</li>
                <li>Com pagamento integral recebido</li>
                <li>Com comissão já repassada ao representante</li>
            </ul>
        </div>

        <p>Acompanhe o ranking semanal e boa sorte!</p>

        <p>Atenciosamente,<br><strong>Equipe SWS Group</strong></p>
    </div>

    <div class="footer">
        <p>Este é um email automático. Em caso de dúvidas, entre em contato conosco.</p>
        <p>&copy; 2025 SWS Group. Todos os direitos reservados.</p>
    </div>
</body>
</html>
`))

type confirmationData struct {
	Name             string
	Email            string
	Phone            string
	RegistrationDate string
}

// RenderConfirmation renders the confirmation body for a participant.
func RenderConfirmation(p *models.Participant) (string, error) {
	var sb strings.Builder
	err := confirmationTmpl.Execute(&sb, confirmationData{
		Name:             p.Name,
		Email:            p.Email,
		Phone:            p.Phone,
		RegistrationDate: formatLocal(p.RegistrationDate),
	})
	if err != nil {
		return "", fmt.Errorf("render confirmation template: %w", err)
	}
	return sb.String(), nil
}

// formatLocal renders an instant the way the campaign's pt-BR pages show it.
func formatLocal(t time.Time) string {
	return t.Local().Format("02/01/2006 15:04:05")
}
