package handler

import (
	"errors"
	"net/http"

	"workday-web/internal/model"
	"workday-web/internal/session"
	"workday-web/internal/upstream"
	"workday-web/internal/view"
)

type AuthHandler struct {
	client *upstream.Client
	store  *session.Store
	views  *view.Renderer
}

func NewAuthHandler(client *upstream.Client, store *session.Store, views *view.Renderer) *AuthHandler {
	return &AuthHandler{client: client, store: store, views: views}
}

type loginData struct {
	Error string
	Login string
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	// Already signed in? Skip straight to the dashboard.
	if _, err := h.store.FromRequest(r); err == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	h.views.Render(w, http.StatusOK, "login", loginData{})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.views.Render(w, http.StatusBadRequest, "login", loginData{Error: "Requisição inválida."})
		return
	}

	login := r.PostFormValue("login")
	password := r.PostFormValue("senha")

	result, err := h.client.Login(r.Context(), login, password)
	if err != nil {
		message := "Erro ao entrar. Verifique suas credenciais."
		if errors.Is(err, model.ErrUpstreamUnavailable) {
			message = "Não foi possível contatar o servidor. Tente novamente."
		}

		h.views.Render(w, http.StatusUnauthorized, "login", loginData{
			Error: message,
			Login: login,
		})
		return
	}

	identity := session.IdentityFromToken(result.Token)
	if result.User != nil {
		identity = *result.User
	}

	if _, err := h.store.Create(w, result.Token, identity); err != nil {
		h.views.Render(w, http.StatusInternalServerError, "login", loginData{
			Error: "Erro ao iniciar a sessão. Tente novamente.",
			Login: login,
		})
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout destroys the session; the store's removal hook releases any
// per-session state held elsewhere.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.Destroy(w, r)
	http.Redirect(w, r, "/login", http.StatusFound)
}
