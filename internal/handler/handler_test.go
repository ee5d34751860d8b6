package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"workday-web/internal/config"
	"workday-web/internal/handler"
	"workday-web/internal/middleware"
	"workday-web/internal/model"
	"workday-web/internal/report"
	"workday-web/internal/router"
	"workday-web/internal/session"
	"workday-web/internal/upstream"
	"workday-web/internal/view"
)

const apiToken = "fake-upstream-token"

// fakeAPI is an in-memory stand-in for the workday REST API.
type fakeAPI struct {
	mu sync.Mutex

	journeys    []model.Journey
	productions []model.Production
	vacations   []model.Vacation
	payrolls    []model.Payroll
	pending     []model.Journey
	users       []model.User
	goals       []model.Goal
	bank        model.TimeBank
	report      model.ReportPayload
	stats       model.ProfileStats

	journeyErr   string
	tokenRevoked bool

	// When set, report requests for usuarioId=1 serve slowReport and
	// park on blockReports after signalling reportStarted.
	slowReport    model.ReportPayload
	blockReports  chan struct{}
	reportStarted chan struct{}

	rejectCalls    int
	approveCalls   int
	createUsers    int
	reportCalls    int
	lastRejection  map[string]any
	lastApproval   map[string]int
	lastReportURL  *url.URL
	lastReportKind string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		users: []model.User{
			{ID: 1, Login: "maria", Name: "Maria Silva", Role: "admin", JobTitle: "Gerente"},
			{ID: 2, Login: "joao", Name: "João Souza", Role: "usuario", JobTitle: "Operador"},
		},
		stats: model.ProfileStats{TotalHours: 160, TotalProduction: 40, VacationDays: 5, DaysWorked: 20},
	}
}

func (f *fakeAPI) authorized(w http.ResponseWriter, r *http.Request) bool {
	f.mu.Lock()
	revoked := f.tokenRevoked
	f.mu.Unlock()

	if revoked || r.Header.Get("Authorization") != "Bearer "+apiToken {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"erro":"token inválido"}`))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["login"] != "maria" || body["senha"] != "segredo" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"erro": "Credenciais inválidas"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"token":   apiToken,
			"usuario": model.Identity{ID: 1, Login: "maria", Name: "Maria Silva", Role: "admin"},
		})
	})

	mux.HandleFunc("GET /jornada", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.journeys)
	})

	mux.HandleFunc("POST /jornada", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()

		if f.journeyErr != "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"erro": f.journeyErr})
			return
		}

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		date, _ := time.Parse("2006-01-02", body["data"])
		created := model.Journey{
			ID:         len(f.journeys) + 1,
			Date:       date,
			EntryAt:    date.Add(8 * time.Hour),
			ExitAt:     date.Add(17 * time.Hour),
			TotalHours: 8,
			Status:     model.JourneyStatusPending,
		}
		f.journeys = append(f.journeys, created)
		writeJSON(w, http.StatusCreated, created)
	})

	mux.HandleFunc("GET /producao", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.productions)
	})

	mux.HandleFunc("POST /producao", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()

		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		date, _ := time.Parse("2006-01-02", body["data"].(string))
		quantity, _ := body["quantidade"].(float64)
		note, _ := body["observacao"].(string)
		created := model.Production{
			ID:       len(f.productions) + 1,
			Date:     date,
			Type:     body["tipo"].(string),
			Quantity: int(quantity),
			Note:     note,
		}
		f.productions = append(f.productions, created)
		writeJSON(w, http.StatusCreated, created)
	})

	mux.HandleFunc("GET /ferias", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.vacations)
	})

	mux.HandleFunc("POST /ferias", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		start, _ := time.Parse("2006-01-02", body["inicio"])
		end, _ := time.Parse("2006-01-02", body["fim"])
		created := model.Vacation{ID: len(f.vacations) + 1, Start: start, End: end}
		f.vacations = append(f.vacations, created)
		writeJSON(w, http.StatusCreated, created)
	})

	mux.HandleFunc("GET /folha", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.payrolls)
	})

	mux.HandleFunc("POST /folha", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()

		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		year, _ := body["ano"].(float64)
		created := model.Payroll{
			ID:     len(f.payrolls) + 1,
			Month:  body["mes"].(string),
			Year:   int(year),
			Status: "processando",
		}
		f.payrolls = append(f.payrolls, created)
		writeJSON(w, http.StatusCreated, created)
	})

	mux.HandleFunc("GET /perfil/{id}/estatisticas", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		writeJSON(w, http.StatusOK, f.stats)
	})

	mux.HandleFunc("GET /perfil/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		id, _ := strconv.Atoi(r.PathValue("id"))
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, u := range f.users {
			if u.ID == id {
				writeJSON(w, http.StatusOK, u)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"erro": "Usuário não encontrado"})
	})

	mux.HandleFunc("GET /aprovacoes/pendentes", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.pending)
	})

	mux.HandleFunc("PUT /aprovacoes/{id}/aprovar", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.approveCalls++
		_ = json.NewDecoder(r.Body).Decode(&f.lastApproval)
		id, _ := strconv.Atoi(r.PathValue("id"))
		f.removePendingLocked(id)
		writeJSON(w, http.StatusOK, map[string]string{"status": "aprovada"})
	})

	mux.HandleFunc("PUT /aprovacoes/{id}/rejeitar", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.rejectCalls++
		_ = json.NewDecoder(r.Body).Decode(&f.lastRejection)
		id, _ := strconv.Atoi(r.PathValue("id"))
		f.removePendingLocked(id)
		writeJSON(w, http.StatusOK, map[string]string{"status": "rejeitada"})
	})

	mux.HandleFunc("GET /admin/usuarios", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.users)
	})

	mux.HandleFunc("POST /admin/usuarios", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.createUsers++

		var body model.CreateUserRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		created := model.User{
			ID:       len(f.users) + 1,
			Login:    body.Login,
			Name:     body.Name,
			Role:     body.Role,
			JobTitle: body.JobTitle,
		}
		f.users = append(f.users, created)
		writeJSON(w, http.StatusCreated, created)
	})

	mux.HandleFunc("GET /metas", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.goals)
	})

	mux.HandleFunc("GET /banco-horas/{id}/saldo", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.bank)
	})

	mux.HandleFunc("GET /relatorios/{kind}", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}

		slow := f.blockReports != nil && r.URL.Query().Get("usuarioId") == "1"
		if slow {
			f.reportStarted <- struct{}{}
			<-f.blockReports
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		f.reportCalls++
		f.lastReportKind = r.PathValue("kind")
		f.lastReportURL = r.URL
		if slow {
			writeJSON(w, http.StatusOK, f.slowReport)
			return
		}
		writeJSON(w, http.StatusOK, f.report)
	})

	return mux
}

func (f *fakeAPI) removePendingLocked(id int) {
	kept := f.pending[:0]
	for _, j := range f.pending {
		if j.ID != id {
			kept = append(kept, j)
		}
	}
	f.pending = kept
}

func newSite(t *testing.T) (*httptest.Server, *fakeAPI) {
	t.Helper()

	api := newFakeAPI()
	apiServer := httptest.NewServer(api.routes())
	t.Cleanup(apiServer.Close)

	views, err := view.NewRenderer()
	require.NoError(t, err)

	store, err := session.NewStore("test-secret", time.Hour)
	require.NoError(t, err)

	client := upstream.New(apiServer.URL, 5*time.Second)
	tracker := report.NewTracker()
	store.OnRemove(tracker.Forget)
	cfg := &config.Config{LoginRateLimitRPM: 1000}

	site := httptest.NewServer(router.New(cfg, middleware.NewAuthMiddleware(store), router.Handlers{
		Auth:       handler.NewAuthHandler(client, store, views),
		Dashboard:  handler.NewDashboardHandler(client, views),
		Journey:    handler.NewJourneyHandler(client, views),
		Production: handler.NewProductionHandler(client, views),
		Vacation:   handler.NewVacationHandler(client, views),
		Payroll:    handler.NewPayrollHandler(client, views),
		Approvals:  handler.NewApprovalsHandler(client, views),
		Goals:      handler.NewGoalsHandler(client, views),
		TimeBank:   handler.NewTimeBankHandler(client, views),
		Profile:    handler.NewProfileHandler(client, views),
		Reports:    handler.NewReportsHandler(client, views, tracker),
		Admin:      handler.NewAdminHandler(client, views),
	}))
	t.Cleanup(site.Close)

	return site, api
}

// newBrowser returns an HTTP client with a cookie jar that does not
// follow redirects, so tests can assert on each hop of the PRG flow.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{
		Jar: jar,
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, browser *http.Client, rawURL string) *http.Response {
	t.Helper()
	resp, err := browser.Get(rawURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func postForm(t *testing.T, browser *http.Client, rawURL string, form url.Values) *http.Response {
	t.Helper()
	resp, err := browser.PostForm(rawURL, form)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func signIn(t *testing.T, browser *http.Client, siteURL string) {
	t.Helper()
	resp := postForm(t, browser, siteURL+"/login", url.Values{"login": {"maria"}, "senha": {"segredo"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func TestPagesRequireLogin(t *testing.T) {
	site, _ := newSite(t)
	browser := newBrowser(t)

	for _, path := range []string{"/", "/jornada", "/producao", "/ferias", "/folha", "/aprovacoes", "/metas", "/banco-horas", "/perfil", "/relatorios", "/admin"} {
		resp := get(t, browser, site.URL+path)
		require.Equal(t, http.StatusFound, resp.StatusCode, "path %s", path)
		require.Equal(t, "/login", resp.Header.Get("Location"), "path %s", path)
	}
}

func TestLoginFlow(t *testing.T) {
	site, _ := newSite(t)

	t.Run("wrong credentials re-render the form", func(t *testing.T) {
		browser := newBrowser(t)
		resp := postForm(t, browser, site.URL+"/login", url.Values{"login": {"maria"}, "senha": {"errada"}})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		body := readBody(t, resp)
		require.Contains(t, body, "Verifique suas credenciais")
		// The typed login survives the round trip.
		require.Contains(t, body, `value="maria"`)
	})

	t.Run("valid credentials establish a session", func(t *testing.T) {
		browser := newBrowser(t)
		signIn(t, browser, site.URL)

		resp := get(t, browser, site.URL+"/")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := readBody(t, resp)
		require.Contains(t, body, "Maria Silva")
		require.Contains(t, body, "Administrador")
	})

	t.Run("login page redirects when already signed in", func(t *testing.T) {
		browser := newBrowser(t)
		signIn(t, browser, site.URL)

		resp := get(t, browser, site.URL+"/login")
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, "/", resp.Header.Get("Location"))
	})
}

func TestLogout(t *testing.T) {
	site, _ := newSite(t)
	browser := newBrowser(t)
	signIn(t, browser, site.URL)

	resp := get(t, browser, site.URL+"/logout")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))

	// The session is gone server-side, not just in the browser.
	after := get(t, browser, site.URL+"/")
	require.Equal(t, http.StatusFound, after.StatusCode)
	require.Equal(t, "/login", after.Header.Get("Location"))
}

func TestDashboard(t *testing.T) {
	site, _ := newSite(t)
	browser := newBrowser(t)
	signIn(t, browser, site.URL)

	resp := get(t, browser, site.URL+"/")
	body := readBody(t, resp)

	require.Contains(t, body, "160h")
	// The stat cards deep-link into the matching report tab.
	require.Contains(t, body, "/relatorios?tipo=horas")
	require.Contains(t, body, "/relatorios?tipo=producao")
	require.Contains(t, body, "/relatorios?tipo=consolidado")
	require.Contains(t, body, "Próximos Eventos")
	require.Contains(t, body, "Fechamento mensal")
}

func TestJourneySubmission(t *testing.T) {
	t.Run("success redirects and the record appears on re-fetch", func(t *testing.T) {
		site, api := newSite(t)
		browser := newBrowser(t)
		signIn(t, browser, site.URL)

		resp := postForm(t, browser, site.URL+"/jornada", url.Values{
			"data":    {"2026-03-10"},
			"entrada": {"08:00"},
			"saida":   {"17:00"},
		})
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, "/jornada?ok=1", resp.Header.Get("Location"))

		page := get(t, browser, site.URL+"/jornada?ok=1")
		body := readBody(t, page)
		require.Contains(t, body, "sucesso")
		require.Contains(t, body, "10/03/2026")

		api.mu.Lock()
		defer api.mu.Unlock()
		require.Len(t, api.journeys, 1)
	})

	t.Run("upstream rejection keeps the form values", func(t *testing.T) {
		site, api := newSite(t)
		api.journeyErr = "Jornada já registrada para esta data"

		browser := newBrowser(t)
		signIn(t, browser, site.URL)

		resp := postForm(t, browser, site.URL+"/jornada", url.Values{
			"data":    {"2026-03-10"},
			"entrada": {"08:00"},
			"saida":   {"17:00"},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := readBody(t, resp)
		require.Contains(t, body, "Jornada já registrada para esta data")
		require.Contains(t, body, `value="2026-03-10"`)
		require.Contains(t, body, `value="08:00"`)
	})
}

func TestProductionSubmission(t *testing.T) {
	site, api := newSite(t)
	browser := newBrowser(t)
	signIn(t, browser, site.URL)

	resp := postForm(t, browser, site.URL+"/producao", url.Values{
		"data":       {"2026-03-11"},
		"tipo":       {"Relatório"},
		"quantidade": {"12"},
		"observacao": {"Lote da manhã"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/producao?ok=1", resp.Header.Get("Location"))

	// The record created from {data, tipo, quantidade} shows up in the
	// re-fetched list.
	page := get(t, browser, site.URL+"/producao?ok=1")
	body := readBody(t, page)
	require.Contains(t, body, "sucesso")
	require.Contains(t, body, "11/03/2026")
	require.Contains(t, body, "Relatório")
	require.Contains(t, body, "Lote da manhã")

	api.mu.Lock()
	defer api.mu.Unlock()
	require.Len(t, api.productions, 1)
	require.Equal(t, 12, api.productions[0].Quantity)
}

func TestVacationSubmission(t *testing.T) {
	site, api := newSite(t)
	browser := newBrowser(t)
	signIn(t, browser, site.URL)

	empty := readBody(t, get(t, browser, site.URL+"/ferias"))
	require.Contains(t, empty, "Nenhum período de férias solicitado")

	resp := postForm(t, browser, site.URL+"/ferias", url.Values{
		"inicio": {"2026-07-01"},
		"fim":    {"2026-07-15"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/ferias?ok=1", resp.Header.Get("Location"))

	page := get(t, browser, site.URL+"/ferias?ok=1")
	body := readBody(t, page)
	require.Contains(t, body, "Férias solicitadas com sucesso!")
	require.Contains(t, body, "01/07/2026")
	require.Contains(t, body, "15/07/2026")

	api.mu.Lock()
	defer api.mu.Unlock()
	require.Len(t, api.vacations, 1)
}

func TestPayrollSubmission(t *testing.T) {
	site, api := newSite(t)
	browser := newBrowser(t)
	signIn(t, browser, site.URL)

	empty := readBody(t, get(t, browser, site.URL+"/folha"))
	require.Contains(t, empty, "Nenhuma folha solicitada")

	resp := postForm(t, browser, site.URL+"/folha", url.Values{
		"mes": {"Março"},
		"ano": {"2026"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/folha?ok=1", resp.Header.Get("Location"))

	page := get(t, browser, site.URL+"/folha?ok=1")
	body := readBody(t, page)
	require.Contains(t, body, "Folha solicitada com sucesso!")
	require.Contains(t, body, "Março")
	require.Contains(t, body, "processando")

	api.mu.Lock()
	defer api.mu.Unlock()
	require.Len(t, api.payrolls, 1)
	require.Equal(t, 2026, api.payrolls[0].Year)
}

func TestApprovals(t *testing.T) {
	pendingJourney := func(id int) model.Journey {
		date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
		return model.Journey{
			ID: id, Date: date, EntryAt: date.Add(8 * time.Hour), ExitAt: date.Add(17 * time.Hour),
			TotalHours: 8, Status: model.JourneyStatusPending,
			User: &model.UserRef{Name: "João Souza", JobTitle: "Operador"},
		}
	}

	t.Run("approve removes the journey from the queue", func(t *testing.T) {
		site, api := newSite(t)
		api.pending = []model.Journey{pendingJourney(5)}

		browser := newBrowser(t)
		signIn(t, browser, site.URL)

		resp := postForm(t, browser, site.URL+"/aprovacoes/5/aprovar", url.Values{})
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, "/aprovacoes?aprovada=1", resp.Header.Get("Location"))

		page := get(t, browser, site.URL+"/aprovacoes?aprovada=1")
		body := readBody(t, page)
		require.Contains(t, body, "Jornada aprovada!")
		require.Contains(t, body, "Nenhuma jornada pendente")

		api.mu.Lock()
		defer api.mu.Unlock()
		require.Equal(t, 1, api.approveCalls)
		require.Equal(t, 1, api.lastApproval["aprovadoPor"])
	})

	t.Run("empty rejection reason aborts without any upstream call", func(t *testing.T) {
		site, api := newSite(t)
		api.pending = []model.Journey{pendingJourney(5)}

		browser := newBrowser(t)
		signIn(t, browser, site.URL)

		resp := postForm(t, browser, site.URL+"/aprovacoes/5/rejeitar", url.Values{"observacao": {"   "}})
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, "/aprovacoes?erro=motivo", resp.Header.Get("Location"))

		api.mu.Lock()
		calls := api.rejectCalls
		api.mu.Unlock()
		require.Zero(t, calls)

		page := get(t, browser, site.URL+"/aprovacoes?erro=motivo")
		require.Contains(t, readBody(t, page), "Informe o motivo da rejeição.")
	})

	t.Run("rejection with a reason reaches the api", func(t *testing.T) {
		site, api := newSite(t)
		api.pending = []model.Journey{pendingJourney(5)}

		browser := newBrowser(t)
		signIn(t, browser, site.URL)

		resp := postForm(t, browser, site.URL+"/aprovacoes/5/rejeitar", url.Values{"observacao": {"horário inconsistente"}})
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, "/aprovacoes?rejeitada=1", resp.Header.Get("Location"))

		api.mu.Lock()
		defer api.mu.Unlock()
		require.Equal(t, 1, api.rejectCalls)
		require.Equal(t, "horário inconsistente", api.lastRejection["observacao"])
		require.Equal(t, float64(1), api.lastRejection["aprovadoPor"])
	})
}

func TestAdminCreateUser(t *testing.T) {
	t.Run("short password never reaches the api", func(t *testing.T) {
		site, api := newSite(t)
		browser := newBrowser(t)
		signIn(t, browser, site.URL)

		resp := postForm(t, browser, site.URL+"/admin/usuarios", url.Values{
			"nome":  {"Ana Lima"},
			"login": {"ana"},
			"senha": {"123"},
			"role":  {"usuario"},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := readBody(t, resp)
		require.Contains(t, body, "pelo menos 6 caracteres")
		require.Contains(t, body, `value="Ana Lima"`)

		api.mu.Lock()
		defer api.mu.Unlock()
		require.Zero(t, api.createUsers)
	})

	t.Run("valid user is created and listed", func(t *testing.T) {
		site, api := newSite(t)
		browser := newBrowser(t)
		signIn(t, browser, site.URL)

		resp := postForm(t, browser, site.URL+"/admin/usuarios", url.Values{
			"nome":  {"Ana Lima"},
			"login": {"ana"},
			"senha": {"segredo123"},
			"cargo": {"Analista"},
			"role":  {"usuario"},
		})
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, "/admin?ok=1", resp.Header.Get("Location"))

		page := get(t, browser, site.URL+"/admin?ok=1")
		body := readBody(t, page)
		require.Contains(t, body, "Usuário cadastrado com sucesso!")
		require.Contains(t, body, "Ana Lima")

		api.mu.Lock()
		defer api.mu.Unlock()
		require.Equal(t, 1, api.createUsers)
	})
}

func TestReportsPage(t *testing.T) {
	hours := 176.0
	reportPayload := model.ReportPayload{
		Users: []model.ReportRow{
			{UserID: 1, Name: "Maria Silva", JobTitle: "Gerente", TotalHours: 96, DaysWorked: 12, AvgHoursPerDay: 8},
			{
				UserID: 2, Name: "João Souza", JobTitle: "Operador", TotalHours: 80, DaysWorked: 10, AvgHoursPerDay: 8,
				Journeys: []model.Journey{{
					ID:   11,
					Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
					EntryAt: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), ExitAt: time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
					TotalHours: 8,
				}},
			},
		},
		TotalHours: &hours,
	}

	t.Run("defaults to the hours report for the current month", func(t *testing.T) {
		site, api := newSite(t)
		api.report = reportPayload

		browser := newBrowser(t)
		signIn(t, browser, site.URL)

		resp := get(t, browser, site.URL+"/relatorios")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := readBody(t, resp)
		require.Contains(t, body, "Maria Silva")
		require.Contains(t, body, "João Souza")
		require.Contains(t, body, "176h")

		api.mu.Lock()
		defer api.mu.Unlock()
		require.Equal(t, "horas", api.lastReportKind)

		start, end := report.DefaultRange(time.Now())
		require.Equal(t, start, api.lastReportURL.Query().Get("dataInicio"))
		require.Equal(t, end, api.lastReportURL.Query().Get("dataFim"))
	})

	t.Run("user filter is forwarded", func(t *testing.T) {
		site, api := newSite(t)
		api.report = reportPayload

		browser := newBrowser(t)
		signIn(t, browser, site.URL)

		_ = readBody(t, get(t, browser, site.URL+"/relatorios?tipo=producao&usuarioId=2"))

		api.mu.Lock()
		defer api.mu.Unlock()
		require.Equal(t, "producao", api.lastReportKind)
		require.Equal(t, "2", api.lastReportURL.Query().Get("usuarioId"))
	})

	t.Run("rows with embedded details offer a toggle link", func(t *testing.T) {
		site, api := newSite(t)
		api.report = reportPayload

		browser := newBrowser(t)
		signIn(t, browser, site.URL)

		body := readBody(t, get(t, browser, site.URL+"/relatorios?tipo=horas&dataInicio=2026-03-01&dataFim=2026-03-31"))
		require.Contains(t, body, "Detalhar")
		require.Contains(t, body, "exp=2")
		// Row 1 has no embedded records, so no toggle.
		require.NotContains(t, body, "exp=1")

		expanded := readBody(t, get(t, browser, site.URL+"/relatorios?tipo=horas&dataInicio=2026-03-01&dataFim=2026-03-31&exp=2"))
		require.Contains(t, expanded, "Ocultar")
		require.Contains(t, expanded, "Jornada em 02/03/2026")
	})

	t.Run("a response that lost the race renders the newer view", func(t *testing.T) {
		site, api := newSite(t)
		api.report = reportPayload
		api.slowReport = model.ReportPayload{
			Users: []model.ReportRow{{UserID: 1, Name: "Linha Obsoleta"}},
		}
		api.blockReports = make(chan struct{})
		api.reportStarted = make(chan struct{})

		browser := newBrowser(t)
		signIn(t, browser, site.URL)

		slowBody := make(chan string, 1)
		go func() {
			resp, err := browser.Get(site.URL + "/relatorios?tipo=horas&usuarioId=1")
			if err != nil {
				slowBody <- err.Error()
				return
			}
			defer resp.Body.Close()
			raw, _ := io.ReadAll(resp.Body)
			slowBody <- string(raw)
		}()

		// The slow request has reached the API and already holds its
		// generation; a newer request now completes first.
		<-api.reportStarted
		fast := readBody(t, get(t, browser, site.URL+"/relatorios?tipo=horas&usuarioId=2"))
		require.Contains(t, fast, "Maria Silva")

		close(api.blockReports)
		stale := <-slowBody
		require.Contains(t, stale, "Maria Silva")
		require.NotContains(t, stale, "Linha Obsoleta")
	})

	t.Run("tab links keep the filter and switch the kind", func(t *testing.T) {
		site, api := newSite(t)
		api.report = reportPayload

		browser := newBrowser(t)
		signIn(t, browser, site.URL)

		body := readBody(t, get(t, browser, site.URL+"/relatorios?tipo=horas&dataInicio=2026-03-01&dataFim=2026-03-31&usuarioId=2"))
		require.Contains(t, body, "tipo=producao")
		require.Contains(t, body, "tipo=consolidado")
		require.Contains(t, body, "usuarioId=2")
	})
}

func TestGoalsPage(t *testing.T) {
	site, api := newSite(t)
	api.goals = []model.Goal{
		{ID: 1, Type: "producao", Description: "Entregar 50 pedidos", Target: 50, Current: 25, Month: "2026-03", Status: "ativa", User: model.UserRef{Name: "João Souza"}},
		{ID: 2, Type: "horas", Description: "Fechar 160 horas", Target: 160, Current: 200, Month: "2026-03", Status: "concluida", User: model.UserRef{Name: "Maria Silva"}},
	}

	browser := newBrowser(t)
	signIn(t, browser, site.URL)

	body := readBody(t, get(t, browser, site.URL+"/metas"))
	require.Contains(t, body, "Entregar 50 pedidos")
	require.Contains(t, body, "50%")
	// Progress past the target reads as complete, never over 100%.
	require.Contains(t, body, "100%")
	require.Contains(t, body, "Concluída")
}

func TestTimeBankPage(t *testing.T) {
	site, api := newSite(t)
	api.bank = model.TimeBank{
		Total: -3.5,
		Entries: []model.TimeBankEntry{
			{ID: 1, Month: "2026-02", CreditHours: 4, Balance: 4, CreatedAt: time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)},
			{ID: 2, Month: "2026-03", DebitHours: 7.5, Balance: -3.5, Description: "Saída antecipada", CreatedAt: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)},
		},
	}

	browser := newBrowser(t)
	signIn(t, browser, site.URL)

	body := readBody(t, get(t, browser, site.URL+"/banco-horas"))
	require.Contains(t, body, "-3.5h")
	require.Contains(t, body, "Você deve horas ao banco")
	require.Contains(t, body, "Saída antecipada")
}

func TestProfilePage(t *testing.T) {
	site, _ := newSite(t)
	browser := newBrowser(t)
	signIn(t, browser, site.URL)

	body := readBody(t, get(t, browser, site.URL+"/perfil"))
	require.Contains(t, body, "Maria Silva")
	require.Contains(t, body, "Gerente")
	require.Contains(t, body, "160h")
}

func TestUpstream401ShowsSessionBanner(t *testing.T) {
	site, api := newSite(t)
	browser := newBrowser(t)
	signIn(t, browser, site.URL)

	// The upstream token went stale while the local session is alive.
	api.mu.Lock()
	api.tokenRevoked = true
	api.mu.Unlock()

	resp := get(t, browser, site.URL+"/metas")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, readBody(t, resp), "Sessão expirada no servidor")
}
