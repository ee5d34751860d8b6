package handler

import (
	"net/http"

	"workday-web/internal/model"
	"workday-web/internal/upstream"
	"workday-web/internal/view"
)

const minPasswordLen = 6

type AdminHandler struct {
	client *upstream.Client
	views  *view.Renderer
}

func NewAdminHandler(client *upstream.Client, views *view.Renderer) *AdminHandler {
	return &AdminHandler{client: client, views: views}
}

type adminData struct {
	view.Base
	Form      model.CreateUserRequest
	UsersList []model.User
}

func (h *AdminHandler) Show(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	data := adminData{
		Base: baseFor(r, "Administração", "admin"),
		Form: model.CreateUserRequest{Role: "usuario"},
	}
	if r.URL.Query().Get("ok") == "1" {
		data.Flash = "Usuário cadastrado com sucesso!"
	}

	users, err := h.client.ListUsers(r.Context(), sess.Token)
	if err != nil {
		data.Error = bannerMessage(err, "Erro ao carregar os usuários.")
	}
	data.UsersList = users

	h.views.Render(w, http.StatusOK, "admin", data)
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}

	form := model.CreateUserRequest{
		Name:     r.PostFormValue("nome"),
		Login:    r.PostFormValue("login"),
		Password: r.PostFormValue("senha"),
		JobTitle: r.PostFormValue("cargo"),
		Role:     r.PostFormValue("role"),
	}
	if form.Role == "" {
		form.Role = "usuario"
	}

	// Mirrors the form's minlength; a trivially short password never
	// reaches the API.
	if len(form.Password) < minPasswordLen {
		h.renderError(w, r, sess.Token, form, "A senha deve ter pelo menos 6 caracteres.")
		return
	}

	if _, err := h.client.CreateUser(r.Context(), sess.Token, form); err != nil {
		h.renderError(w, r, sess.Token, form, bannerMessage(err, "Erro ao cadastrar o usuário."))
		return
	}

	http.Redirect(w, r, "/admin?ok=1", http.StatusFound)
}

func (h *AdminHandler) renderError(w http.ResponseWriter, r *http.Request, token string, form model.CreateUserRequest, message string) {
	form.Password = ""
	data := adminData{
		Base: baseFor(r, "Administração", "admin"),
		Form: form,
	}
	data.Error = message
	data.UsersList, _ = h.client.ListUsers(r.Context(), token)
	h.views.Render(w, http.StatusOK, "admin", data)
}
