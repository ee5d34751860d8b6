package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"workday-web/internal/model"
	"workday-web/internal/upstream"
	"workday-web/internal/view"
)

type ApprovalsHandler struct {
	client *upstream.Client
	views  *view.Renderer
}

func NewApprovalsHandler(client *upstream.Client, views *view.Renderer) *ApprovalsHandler {
	return &ApprovalsHandler{client: client, views: views}
}

type approvalsData struct {
	view.Base
	Pending []model.Journey
}

func (h *ApprovalsHandler) Show(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	data := approvalsData{Base: baseFor(r, "Aprovações", "aprovacoes")}
	switch {
	case r.URL.Query().Get("aprovada") == "1":
		data.Flash = "Jornada aprovada!"
	case r.URL.Query().Get("rejeitada") == "1":
		data.Flash = "Jornada rejeitada."
	case r.URL.Query().Get("erro") == "motivo":
		data.Error = "Informe o motivo da rejeição."
	}

	pending, err := h.client.PendingApprovals(r.Context(), sess.Token)
	if err != nil {
		data.Error = bannerMessage(err, "Erro ao carregar as jornadas pendentes.")
	}
	data.Pending = pending

	h.views.Render(w, http.StatusOK, "aprovacoes", data)
}

func (h *ApprovalsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	journeyID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Redirect(w, r, "/aprovacoes", http.StatusFound)
		return
	}

	if err := h.client.Approve(r.Context(), sess.Token, journeyID, sess.User.ID); err != nil {
		h.renderError(w, r, sess.Token, err, "Erro ao aprovar a jornada.")
		return
	}

	http.Redirect(w, r, "/aprovacoes?aprovada=1", http.StatusFound)
}

// Reject refuses an empty reason before anything leaves the process: the
// redirect happens without a single upstream call.
func (h *ApprovalsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	journeyID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Redirect(w, r, "/aprovacoes", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/aprovacoes", http.StatusFound)
		return
	}

	reason := strings.TrimSpace(r.PostFormValue("observacao"))
	if reason == "" {
		http.Redirect(w, r, "/aprovacoes?erro=motivo", http.StatusFound)
		return
	}

	if err := h.client.Reject(r.Context(), sess.Token, journeyID, sess.User.ID, reason); err != nil {
		h.renderError(w, r, sess.Token, err, "Erro ao rejeitar a jornada.")
		return
	}

	http.Redirect(w, r, "/aprovacoes?rejeitada=1", http.StatusFound)
}

func (h *ApprovalsHandler) renderError(w http.ResponseWriter, r *http.Request, token string, cause error, fallback string) {
	data := approvalsData{Base: baseFor(r, "Aprovações", "aprovacoes")}
	data.Error = bannerMessage(cause, fallback)
	data.Pending, _ = h.client.PendingApprovals(r.Context(), token)
	h.views.Render(w, http.StatusOK, "aprovacoes", data)
}
