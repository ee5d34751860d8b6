package handler

import (
	"net/http"

	"workday-web/internal/model"
	"workday-web/internal/upstream"
	"workday-web/internal/view"
)

type GoalsHandler struct {
	client *upstream.Client
	views  *view.Renderer
}

func NewGoalsHandler(client *upstream.Client, views *view.Renderer) *GoalsHandler {
	return &GoalsHandler{client: client, views: views}
}

type goalsData struct {
	view.Base
	Goals []model.Goal
}

func (h *GoalsHandler) Show(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	data := goalsData{Base: baseFor(r, "Metas", "metas")}

	goals, err := h.client.ListGoals(r.Context(), sess.Token)
	if err != nil {
		data.Error = bannerMessage(err, "Erro ao carregar as metas.")
	}
	data.Goals = goals

	h.views.Render(w, http.StatusOK, "metas", data)
}
