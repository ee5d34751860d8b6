package handler

import (
	"net/http"

	"workday-web/internal/model"
	"workday-web/internal/upstream"
	"workday-web/internal/view"
)

type VacationHandler struct {
	client *upstream.Client
	views  *view.Renderer
}

func NewVacationHandler(client *upstream.Client, views *view.Renderer) *VacationHandler {
	return &VacationHandler{client: client, views: views}
}

type vacationData struct {
	view.Base
	Form      model.CreateVacationRequest
	Vacations []model.Vacation
}

func (h *VacationHandler) Show(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	data := vacationData{Base: baseFor(r, "Férias", "ferias")}
	if r.URL.Query().Get("ok") == "1" {
		data.Flash = "Férias solicitadas com sucesso!"
	}

	vacations, err := h.client.ListVacations(r.Context(), sess.Token)
	if err != nil {
		data.Error = bannerMessage(err, "Erro ao carregar as férias.")
	}
	data.Vacations = vacations

	h.views.Render(w, http.StatusOK, "ferias", data)
}

// Create submits the interval as-is; end-before-start is the server's
// rule to enforce.
func (h *VacationHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/ferias", http.StatusFound)
		return
	}

	form := model.CreateVacationRequest{
		Start: r.PostFormValue("inicio"),
		End:   r.PostFormValue("fim"),
	}

	if _, err := h.client.CreateVacation(r.Context(), sess.Token, form); err != nil {
		data := vacationData{
			Base: baseFor(r, "Férias", "ferias"),
			Form: form,
		}
		data.Error = bannerMessage(err, "Erro ao solicitar as férias.")
		data.Vacations, _ = h.client.ListVacations(r.Context(), sess.Token)
		h.views.Render(w, http.StatusOK, "ferias", data)
		return
	}

	http.Redirect(w, r, "/ferias?ok=1", http.StatusFound)
}
