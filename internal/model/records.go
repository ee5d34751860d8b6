package model

import "time"

// Journey statuses as reported by the approvals workflow.
const (
	JourneyStatusPending  = "pendente"
	JourneyStatusApproved = "aprovada"
	JourneyStatusRejected = "rejeitada"
)

// Journey is one day's clock-in/clock-out record. Total hours and status
// are computed upstream; this app never derives them.
type Journey struct {
	ID         int       `json:"id"`
	Date       time.Time `json:"data"`
	EntryAt    time.Time `json:"entrada"`
	ExitAt     time.Time `json:"saida"`
	TotalHours float64   `json:"horasTotais"`
	Status     string    `json:"status,omitempty"`
	User       *UserRef  `json:"usuario,omitempty"`
}

// CreateJourneyRequest carries the journey form exactly as submitted.
// Entry and exit stay raw strings: the server is responsible for parsing
// and for rejecting temporally impossible pairs.
type CreateJourneyRequest struct {
	Date    string `json:"data"`
	EntryAt string `json:"entrada"`
	ExitAt  string `json:"saida"`
}

// Production is a count of completed work units of a given type.
type Production struct {
	ID       int       `json:"id"`
	Date     time.Time `json:"data"`
	Type     string    `json:"tipo"`
	Quantity int       `json:"quantidade"`
	Note     string    `json:"observacao,omitempty"`
}

type CreateProductionRequest struct {
	Date     string `json:"data"`
	Type     string `json:"tipo"`
	Quantity int    `json:"quantidade"`
	Note     string `json:"observacao,omitempty"`
}

// Vacation is a requested leave interval. End >= start is not enforced
// here; the upstream API owns that rule.
type Vacation struct {
	ID    int       `json:"id"`
	Start time.Time `json:"inicio"`
	End   time.Time `json:"fim"`
}

type CreateVacationRequest struct {
	Start string `json:"inicio"`
	End   string `json:"fim"`
}

// Payroll is a payroll-run request for a month/year pair.
type Payroll struct {
	ID     int    `json:"id"`
	Month  string `json:"mes"`
	Year   int    `json:"ano"`
	Status string `json:"status"`
}

type CreatePayrollRequest struct {
	Month string `json:"mes"`
	Year  int    `json:"ano"`
}

// Goal tracks a target/current value pair for a user and month.
type Goal struct {
	ID          int     `json:"id"`
	Type        string  `json:"tipo"`
	Description string  `json:"descricao"`
	Target      float64 `json:"valor"`
	Current     float64 `json:"valorAtual"`
	Month       string  `json:"mes"`
	Status      string  `json:"status"`
	User        UserRef `json:"usuario"`
}

// Progress returns the goal completion ratio clamped to [0, 1]. The
// clamp is display-only; stored values are never rewritten.
func (g Goal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	p := g.Current / g.Target
	if p > 1 {
		return 1
	}
	return p
}

// Completed reports whether the upstream marked the goal as done.
func (g Goal) Completed() bool {
	return g.Status == "concluida"
}

// TimeBankEntry is one movement in the overtime/deficit balance.
type TimeBankEntry struct {
	ID          int       `json:"id"`
	Balance     float64   `json:"saldo"`
	Month       string    `json:"mes"`
	CreditHours float64   `json:"entrada"`
	DebitHours  float64   `json:"saida"`
	Description string    `json:"descricao,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TimeBank is the balance payload for one user. The running total is
// computed upstream; entries are summed only for display.
type TimeBank struct {
	Total   float64         `json:"saldoTotal"`
	Entries []TimeBankEntry `json:"registros"`
}
