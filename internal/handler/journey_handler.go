package handler

import (
	"net/http"

	"workday-web/internal/model"
	"workday-web/internal/upstream"
	"workday-web/internal/view"
)

type JourneyHandler struct {
	client *upstream.Client
	views  *view.Renderer
}

func NewJourneyHandler(client *upstream.Client, views *view.Renderer) *JourneyHandler {
	return &JourneyHandler{client: client, views: views}
}

type journeyData struct {
	view.Base
	Form     model.CreateJourneyRequest
	Journeys []model.Journey
}

func (h *JourneyHandler) Show(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	data := journeyData{Base: baseFor(r, "Jornada", "jornada")}
	if r.URL.Query().Get("ok") == "1" {
		data.Flash = "Jornada registrada com sucesso!"
	}

	journeys, err := h.client.ListJourneys(r.Context(), sess.Token)
	if err != nil {
		data.Error = bannerMessage(err, "Erro ao carregar as jornadas.")
	}
	data.Journeys = journeys

	h.views.Render(w, http.StatusOK, "jornada", data)
}

// Create forwards the form values as submitted; entry-after-exit pairs
// reach the server untouched and are its job to reject.
func (h *JourneyHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/jornada", http.StatusFound)
		return
	}

	form := model.CreateJourneyRequest{
		Date:    r.PostFormValue("data"),
		EntryAt: r.PostFormValue("entrada"),
		ExitAt:  r.PostFormValue("saida"),
	}

	if _, err := h.client.CreateJourney(r.Context(), sess.Token, form); err != nil {
		data := journeyData{
			Base: baseFor(r, "Jornada", "jornada"),
			Form: form,
		}
		data.Error = bannerMessage(err, "Erro ao registrar a jornada.")
		data.Journeys, _ = h.client.ListJourneys(r.Context(), sess.Token)
		h.views.Render(w, http.StatusOK, "jornada", data)
		return
	}

	http.Redirect(w, r, "/jornada?ok=1", http.StatusFound)
}
