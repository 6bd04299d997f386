package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign/internal/participant/models"
)

func TestRenderConfirmation(t *testing.T) {
	p := &models.Participant{
		Name:             "Maria Silva",
		Email:            "maria@example.com",
		Phone:            "(11) 98765-4321",
		RegistrationDate: time.Date(2025, 7, 15, 14, 30, 0, 0, time.Local),
	}

	body, err := RenderConfirmation(p)
	require.NoError(t, err)

	assert.Contains(t, body, "Maria Silva")
	assert.Contains(t, body, "maria@example.com")
	assert.Contains(t, body, "(11) 98765-4321")
	assert.Contains(t, body, "15/07/2025 14:30:00")
	assert.Contains(t, body, "Desafio SWS - Julho 2025")
}

// The body is HTML; participant-supplied fields must come out escaped.
func TestRenderConfirmationEscapesHTML(t *testing.T) {
	p := &models.Participant{
		Name:             "<script>alert(1)</script>",
		Email:            "x@example.com",
		Phone:            "(11) 9876-5432",
		RegistrationDate: time.Now(),
	}

	body, err := RenderConfirmation(p)
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
}
