package web

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"campaign/pkg/testutil"
)

func newWebRouter() http.Handler {
	r := chi.NewRouter()
	New("/painel-secreto").Register(r)
	return r
}

func TestLandingPage(t *testing.T) {
	router := newWebRouter()

	for _, path := range []string{"/", "/participar"} {
		rec := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, path))
		testutil.AssertStatus(t, rec, http.StatusOK)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, string(testutil.ReadBody(t, rec)), "participationForm")
	}
}

func TestAdminPanelAtConfiguredPath(t *testing.T) {
	router := newWebRouter()

	rec := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/painel-secreto"))
	testutil.AssertStatus(t, rec, http.StatusOK)
	assert.Contains(t, string(testutil.ReadBody(t, rec)), "Participantes")
}

func TestUnmatchedRouteServesLandingWith404(t *testing.T) {
	router := newWebRouter()

	rec := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/nada-por-aqui"))
	testutil.AssertStatus(t, rec, http.StatusNotFound)
	assert.Contains(t, string(testutil.ReadBody(t, rec)), "participationForm")
}
