package handler

import (
	"net/http"

	"workday-web/internal/model"
	"workday-web/internal/upstream"
	"workday-web/internal/view"
)

const recentJourneyLimit = 5

type DashboardHandler struct {
	client *upstream.Client
	views  *view.Renderer
}

func NewDashboardHandler(client *upstream.Client, views *view.Renderer) *DashboardHandler {
	return &DashboardHandler{client: client, views: views}
}

type dashboardData struct {
	view.Base
	Stats    model.ProfileStats
	Journeys []model.Journey
}

func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	data := dashboardData{Base: baseFor(r, "Dashboard", "dashboard")}

	stats, err := h.client.ProfileStats(r.Context(), sess.Token, sess.User.ID)
	if err != nil {
		data.Error = bannerMessage(err, "Erro ao carregar as estatísticas.")
	}
	data.Stats = stats

	journeys, err := h.client.ListJourneys(r.Context(), sess.Token)
	if err != nil && data.Error == "" {
		data.Error = bannerMessage(err, "Erro ao carregar as jornadas.")
	}
	if len(journeys) > recentJourneyLimit {
		journeys = journeys[:recentJourneyLimit]
	}
	data.Journeys = journeys

	h.views.Render(w, http.StatusOK, "dashboard", data)
}
