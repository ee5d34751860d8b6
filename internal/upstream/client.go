// Package upstream is the typed client for the workday REST API. The API
// owns every record; this client performs fresh round trips only, with no
// retries and no caching. All authenticated calls attach the bearer token
// uniformly.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"workday-web/internal/model"
	"workday-web/pkg/apierror"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// upstreamError is the error body shape the workday API returns.
type upstreamError struct {
	Erro string `json:"erro"`
}

func (c *Client) do(ctx context.Context, method string, path string, token string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.decodeError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	var parsed upstreamError
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(raw, &parsed)

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", model.ErrUnauthorized, parsed.Erro)
	}

	return apierror.New("UPSTREAM_ERROR", fmt.Sprintf("workday api returned %d", resp.StatusCode), parsed.Erro, resp.StatusCode)
}

func (c *Client) Login(ctx context.Context, login string, password string) (model.LoginResult, error) {
	var result model.LoginResult
	payload := map[string]string{"login": login, "senha": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", payload, &result); err != nil {
		return model.LoginResult{}, err
	}

	if result.Token == "" {
		return model.LoginResult{}, apierror.New("UNAUTHORIZED", "login response carried no token", "", http.StatusUnauthorized)
	}

	return result, nil
}

func (c *Client) ListJourneys(ctx context.Context, token string) ([]model.Journey, error) {
	var journeys []model.Journey
	if err := c.do(ctx, http.MethodGet, "/jornada", token, nil, &journeys); err != nil {
		return nil, err
	}
	return journeys, nil
}

// CreateJourney forwards the form values untouched; entry/exit ordering
// is validated upstream, not here.
func (c *Client) CreateJourney(ctx context.Context, token string, req model.CreateJourneyRequest) (model.Journey, error) {
	var created model.Journey
	if err := c.do(ctx, http.MethodPost, "/jornada", token, req, &created); err != nil {
		return model.Journey{}, err
	}
	return created, nil
}

func (c *Client) ListProductions(ctx context.Context, token string) ([]model.Production, error) {
	var productions []model.Production
	if err := c.do(ctx, http.MethodGet, "/producao", token, nil, &productions); err != nil {
		return nil, err
	}
	return productions, nil
}

func (c *Client) CreateProduction(ctx context.Context, token string, req model.CreateProductionRequest) (model.Production, error) {
	var created model.Production
	if err := c.do(ctx, http.MethodPost, "/producao", token, req, &created); err != nil {
		return model.Production{}, err
	}
	return created, nil
}

func (c *Client) ListVacations(ctx context.Context, token string) ([]model.Vacation, error) {
	var vacations []model.Vacation
	if err := c.do(ctx, http.MethodGet, "/ferias", token, nil, &vacations); err != nil {
		return nil, err
	}
	return vacations, nil
}

func (c *Client) CreateVacation(ctx context.Context, token string, req model.CreateVacationRequest) (model.Vacation, error) {
	var created model.Vacation
	if err := c.do(ctx, http.MethodPost, "/ferias", token, req, &created); err != nil {
		return model.Vacation{}, err
	}
	return created, nil
}

func (c *Client) ListPayrolls(ctx context.Context, token string) ([]model.Payroll, error) {
	var payrolls []model.Payroll
	if err := c.do(ctx, http.MethodGet, "/folha", token, nil, &payrolls); err != nil {
		return nil, err
	}
	return payrolls, nil
}

func (c *Client) CreatePayroll(ctx context.Context, token string, req model.CreatePayrollRequest) (model.Payroll, error) {
	var created model.Payroll
	if err := c.do(ctx, http.MethodPost, "/folha", token, req, &created); err != nil {
		return model.Payroll{}, err
	}
	return created, nil
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/admin/usuarios", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, token string, req model.CreateUserRequest) (model.User, error) {
	var created model.User
	if err := c.do(ctx, http.MethodPost, "/admin/usuarios", token, req, &created); err != nil {
		return model.User{}, err
	}
	return created, nil
}

func (c *Client) PendingApprovals(ctx context.Context, token string) ([]model.Journey, error) {
	var pending []model.Journey
	if err := c.do(ctx, http.MethodGet, "/aprovacoes/pendentes", token, nil, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

func (c *Client) Approve(ctx context.Context, token string, journeyID int, approvedBy int) error {
	path := fmt.Sprintf("/aprovacoes/%d/aprovar", journeyID)
	payload := map[string]int{"aprovadoPor": approvedBy}
	return c.do(ctx, http.MethodPut, path, token, payload, nil)
}

// Reject requires a non-empty reason; callers enforce that before any
// network traffic happens.
func (c *Client) Reject(ctx context.Context, token string, journeyID int, approvedBy int, reason string) error {
	path := fmt.Sprintf("/aprovacoes/%d/rejeitar", journeyID)
	payload := map[string]any{"aprovadoPor": approvedBy, "observacao": reason}
	return c.do(ctx, http.MethodPut, path, token, payload, nil)
}

func (c *Client) TimeBank(ctx context.Context, token string, userID int) (model.TimeBank, error) {
	var bank model.TimeBank
	path := fmt.Sprintf("/banco-horas/%d/saldo", userID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &bank); err != nil {
		return model.TimeBank{}, err
	}
	return bank, nil
}

func (c *Client) ListGoals(ctx context.Context, token string) ([]model.Goal, error) {
	var goals []model.Goal
	if err := c.do(ctx, http.MethodGet, "/metas", token, nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (c *Client) Profile(ctx context.Context, token string, userID int) (model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/perfil/%d", userID), token, nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (c *Client) ProfileStats(ctx context.Context, token string, userID int) (model.ProfileStats, error) {
	var stats model.ProfileStats
	path := fmt.Sprintf("/perfil/%d/estatisticas", userID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &stats); err != nil {
		return model.ProfileStats{}, err
	}
	return stats, nil
}

// Report fetches one per-user aggregate list for the given kind and date
// range. The user filter is optional; zero means all users.
func (c *Client) Report(ctx context.Context, token string, kind string, start string, end string, userID int) (model.ReportPayload, error) {
	query := url.Values{}
	query.Set("dataInicio", start)
	query.Set("dataFim", end)
	if userID > 0 {
		query.Set("usuarioId", strconv.Itoa(userID))
	}

	var payload model.ReportPayload
	path := "/relatorios/" + url.PathEscape(kind) + "?" + query.Encode()
	if err := c.do(ctx, http.MethodGet, path, token, nil, &payload); err != nil {
		return model.ReportPayload{}, err
	}

	return payload, nil
}
