package handler

import (
	"net/http"
	"strconv"
	"time"

	"workday-web/internal/model"
	"workday-web/internal/upstream"
	"workday-web/internal/view"
)

type PayrollHandler struct {
	client *upstream.Client
	views  *view.Renderer
}

func NewPayrollHandler(client *upstream.Client, views *view.Renderer) *PayrollHandler {
	return &PayrollHandler{client: client, views: views}
}

type payrollData struct {
	view.Base
	Form     model.CreatePayrollRequest
	Payrolls []model.Payroll
}

func (h *PayrollHandler) Show(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	data := payrollData{
		Base: baseFor(r, "Folha", "folha"),
		Form: model.CreatePayrollRequest{Year: time.Now().Year()},
	}
	if r.URL.Query().Get("ok") == "1" {
		data.Flash = "Folha solicitada com sucesso!"
	}

	payrolls, err := h.client.ListPayrolls(r.Context(), sess.Token)
	if err != nil {
		data.Error = bannerMessage(err, "Erro ao carregar as folhas.")
	}
	data.Payrolls = payrolls

	h.views.Render(w, http.StatusOK, "folha", data)
}

func (h *PayrollHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/folha", http.StatusFound)
		return
	}

	year, _ := strconv.Atoi(r.PostFormValue("ano"))
	form := model.CreatePayrollRequest{
		Month: r.PostFormValue("mes"),
		Year:  year,
	}

	if _, err := h.client.CreatePayroll(r.Context(), sess.Token, form); err != nil {
		data := payrollData{
			Base: baseFor(r, "Folha", "folha"),
			Form: form,
		}
		data.Error = bannerMessage(err, "Erro ao solicitar a folha.")
		data.Payrolls, _ = h.client.ListPayrolls(r.Context(), sess.Token)
		h.views.Render(w, http.StatusOK, "folha", data)
		return
	}

	http.Redirect(w, r, "/folha?ok=1", http.StatusFound)
}
