package handler

import (
	"net/http"
	"strconv"

	"workday-web/internal/model"
	"workday-web/internal/upstream"
	"workday-web/internal/view"
)

type ProfileHandler struct {
	client *upstream.Client
	views  *view.Renderer
}

func NewProfileHandler(client *upstream.Client, views *view.Renderer) *ProfileHandler {
	return &ProfileHandler{client: client, views: views}
}

type profileData struct {
	view.Base
	Profile model.User
	Stats   model.ProfileStats
}

// Show renders the signed-in user's profile. Admins can inspect another
// user via ?usuario=<id>; for everyone else the override is ignored.
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	userID := sess.User.ID
	if sess.User.Role == "admin" {
		if override, err := strconv.Atoi(r.URL.Query().Get("usuario")); err == nil && override > 0 {
			userID = override
		}
	}

	data := profileData{Base: baseFor(r, "Meu Perfil", "perfil")}

	profile, err := h.client.Profile(r.Context(), sess.Token, userID)
	if err != nil {
		data.Error = bannerMessage(err, "Erro ao carregar o perfil.")
	}
	data.Profile = profile

	stats, err := h.client.ProfileStats(r.Context(), sess.Token, userID)
	if err != nil && data.Error == "" {
		data.Error = bannerMessage(err, "Erro ao carregar as estatísticas.")
	}
	data.Stats = stats

	h.views.Render(w, http.StatusOK, "perfil", data)
}
