package handler

import (
	"net/http"
	"strconv"

	"workday-web/internal/model"
	"workday-web/internal/upstream"
	"workday-web/internal/view"
)

type ProductionHandler struct {
	client *upstream.Client
	views  *view.Renderer
}

func NewProductionHandler(client *upstream.Client, views *view.Renderer) *ProductionHandler {
	return &ProductionHandler{client: client, views: views}
}

type productionData struct {
	view.Base
	Form        model.CreateProductionRequest
	Productions []model.Production
}

func (h *ProductionHandler) Show(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	data := productionData{Base: baseFor(r, "Produção", "producao")}
	if r.URL.Query().Get("ok") == "1" {
		data.Flash = "Produção registrada com sucesso!"
	}

	productions, err := h.client.ListProductions(r.Context(), sess.Token)
	if err != nil {
		data.Error = bannerMessage(err, "Erro ao carregar a produção.")
	}
	data.Productions = productions

	h.views.Render(w, http.StatusOK, "producao", data)
}

func (h *ProductionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/producao", http.StatusFound)
		return
	}

	quantity, _ := strconv.Atoi(r.PostFormValue("quantidade"))
	form := model.CreateProductionRequest{
		Date:     r.PostFormValue("data"),
		Type:     r.PostFormValue("tipo"),
		Quantity: quantity,
		Note:     r.PostFormValue("observacao"),
	}

	if _, err := h.client.CreateProduction(r.Context(), sess.Token, form); err != nil {
		data := productionData{
			Base: baseFor(r, "Produção", "producao"),
			Form: form,
		}
		data.Error = bannerMessage(err, "Erro ao registrar a produção.")
		data.Productions, _ = h.client.ListProductions(r.Context(), sess.Token)
		h.views.Render(w, http.StatusOK, "producao", data)
		return
	}

	http.Redirect(w, r, "/producao?ok=1", http.StatusFound)
}
