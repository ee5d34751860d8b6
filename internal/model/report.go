package model

// ReportRow is one per-user aggregate line in a report. The populated
// fields depend on the report kind, making this a union tagged by the
// kind the caller requested: hours rows carry TotalHours/DaysWorked/
// AvgHoursPerDay, production rows carry TotalProduction, and
// consolidated rows carry the Hours/DaysWorked/Production/VacationDays
// blend. Drill-down detail records arrive embedded in the same payload.
type ReportRow struct {
	UserID   int    `json:"id"`
	Name     string `json:"nome"`
	JobTitle string `json:"cargo,omitempty"`

	TotalHours     float64 `json:"totalHoras,omitempty"`
	DaysWorked     int     `json:"diasTrabalhados,omitempty"`
	AvgHoursPerDay float64 `json:"mediaHorasDia,omitempty"`

	TotalProduction int `json:"totalProducao,omitempty"`

	Hours        float64 `json:"horas,omitempty"`
	Production   int     `json:"producao,omitempty"`
	VacationDays int     `json:"ferias,omitempty"`

	Journeys    []Journey    `json:"jornadas,omitempty"`
	Productions []Production `json:"producoes,omitempty"`
}

// ReportPayload is the upstream response for GET /relatorios/{kind}.
// The grand totals are present only for the kinds that define them.
type ReportPayload struct {
	Users           []ReportRow `json:"usuarios"`
	TotalHours      *float64    `json:"totalHoras,omitempty"`
	TotalProduction *int        `json:"totalProducao,omitempty"`
}
