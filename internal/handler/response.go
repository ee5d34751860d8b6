package handler

import (
	"errors"
	"net/http"

	"workday-web/internal/middleware"
	"workday-web/internal/model"
	"workday-web/internal/session"
	"workday-web/internal/view"
	"workday-web/pkg/apierror"
)

// baseFor assembles the layout fields shared by every page, pulling the
// logged-in identity from the request context.
func baseFor(r *http.Request, title string, active string) view.Base {
	base := view.Base{Title: title, Active: active}

	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		base.UserName = sess.User.Name
		base.UserRole = roleLabel(sess.User.Role)
	}

	return base
}

// sessionOrRedirect fetches the context session. The auth middleware
// guarantees it on protected routes; the redirect is the safety net.
func sessionOrRedirect(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return nil, false
	}
	return sess, true
}

func roleLabel(role string) string {
	if role == "admin" {
		return "Administrador"
	}
	return "Usuário"
}

// bannerMessage converts a failed call into the text shown in the page
// banner: the upstream's own message when it sent one, else a canned
// string per error class. Pages never crash on these; they re-render in
// their pre-action state.
func bannerMessage(err error, fallback string) string {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) && apiErr.UserMessage() != "" {
		return apiErr.UserMessage()
	}

	if errors.Is(err, model.ErrUnauthorized) {
		return "Sessão expirada no servidor. Saia e entre novamente."
	}

	if errors.Is(err, model.ErrUpstreamUnavailable) {
		return "Não foi possível contatar o servidor. Tente novamente."
	}

	return fallback
}
