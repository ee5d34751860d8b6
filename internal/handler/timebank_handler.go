package handler

import (
	"net/http"

	"workday-web/internal/model"
	"workday-web/internal/upstream"
	"workday-web/internal/view"
)

type TimeBankHandler struct {
	client *upstream.Client
	views  *view.Renderer
}

func NewTimeBankHandler(client *upstream.Client, views *view.Renderer) *TimeBankHandler {
	return &TimeBankHandler{client: client, views: views}
}

type timeBankData struct {
	view.Base
	Bank model.TimeBank
}

func (h *TimeBankHandler) Show(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	data := timeBankData{Base: baseFor(r, "Banco de Horas", "banco-horas")}

	bank, err := h.client.TimeBank(r.Context(), sess.Token, sess.User.ID)
	if err != nil {
		data.Error = bannerMessage(err, "Erro ao carregar o banco de horas.")
	}
	data.Bank = bank

	h.views.Render(w, http.StatusOK, "banco-horas", data)
}
