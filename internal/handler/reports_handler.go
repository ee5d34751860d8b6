package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"workday-web/internal/model"
	"workday-web/internal/report"
	"workday-web/internal/upstream"
	"workday-web/internal/view"
)

type ReportsHandler struct {
	client  *upstream.Client
	views   *view.Renderer
	tracker *report.Tracker
}

func NewReportsHandler(client *upstream.Client, views *view.Renderer, tracker *report.Tracker) *ReportsHandler {
	return &ReportsHandler{client: client, views: views, tracker: tracker}
}

type reportRowView struct {
	model.ReportRow
	Expanded   bool
	HasDetails bool
	ToggleURL  string
}

type reportsData struct {
	view.Base
	Kind            string
	Start           string
	End             string
	UserID          int
	Users           []model.User
	Rows            []reportRowView
	TotalHours      *float64
	TotalProduction *int
	HoursURL        string
	ProductionURL   string
	ConsolidatedURL string
}

func (h *ReportsHandler) Show(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrRedirect(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := report.Filter{Kind: report.ParseKind(query.Get("tipo"))}
	filter.Start = query.Get("dataInicio")
	filter.End = query.Get("dataFim")
	if filter.Start == "" || filter.End == "" {
		filter.Start, filter.End = report.DefaultRange(time.Now())
	}
	if id, err := strconv.Atoi(query.Get("usuarioId")); err == nil && id > 0 {
		filter.UserID = id
	}
	expanded := report.ParseExpanded(query.Get("exp"))

	data := reportsData{Base: baseFor(r, "Relatórios", "relatorios")}

	// The user filter is a convenience; a failure here still leaves the
	// report itself usable.
	data.Users, _ = h.client.ListUsers(r.Context(), sess.Token)

	gen := h.tracker.Next(sess.ID)
	payload, err := h.client.Report(r.Context(), sess.Token, string(filter.Kind), filter.Start, filter.End, filter.UserID)
	if err != nil {
		data.Error = bannerMessage(err, "Erro ao carregar o relatório.")
		fillFilter(&data, filter)
		h.views.Render(w, http.StatusOK, "relatorios", data)
		return
	}

	// A response that lost the race to a newer request never reaches the
	// page; the session's latest committed view is rendered instead.
	reportView := report.NewView(filter, payload, expanded)
	if !h.tracker.Commit(sess.ID, gen, reportView) {
		if latest := h.tracker.Latest(sess.ID); latest != nil {
			reportView = latest
		}
	}

	fillFilter(&data, reportView.Filter)
	data.TotalHours = reportView.TotalHours
	data.TotalProduction = reportView.TotalProduction
	data.Rows = buildRows(reportView, reportView.Filter)

	h.views.Render(w, http.StatusOK, "relatorios", data)
}

func fillFilter(data *reportsData, filter report.Filter) {
	data.Kind = string(filter.Kind)
	data.Start = filter.Start
	data.End = filter.End
	data.UserID = filter.UserID
	data.HoursURL = reportURL(report.KindHours, filter, "")
	data.ProductionURL = reportURL(report.KindProduction, filter, "")
	data.ConsolidatedURL = reportURL(report.KindConsolidated, filter, "")
}

// buildRows decorates each aggregate line with its expansion state and a
// link that flips only that row. Toggling is a pure URL change over the
// records already in hand.
func buildRows(v *report.View, filter report.Filter) []reportRowView {
	rows := make([]reportRowView, 0, len(v.Rows))
	for _, row := range v.Rows {
		rows = append(rows, reportRowView{
			ReportRow:  row,
			Expanded:   v.Expanded[row.UserID],
			HasDetails: len(row.Journeys) > 0 || len(row.Productions) > 0,
			ToggleURL:  reportURL(filter.Kind, filter, report.ToggleParam(v.Expanded, row.UserID)),
		})
	}
	return rows
}

func reportURL(kind report.Kind, filter report.Filter, exp string) string {
	query := url.Values{}
	query.Set("tipo", string(kind))
	query.Set("dataInicio", filter.Start)
	query.Set("dataFim", filter.End)
	if filter.UserID > 0 {
		query.Set("usuarioId", strconv.Itoa(filter.UserID))
	}
	if exp != "" {
		query.Set("exp", exp)
	}
	return "/relatorios?" + query.Encode()
}
