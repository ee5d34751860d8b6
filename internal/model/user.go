package model

// User is an account as returned by the workday API. JSON field names
// follow the upstream wire contract, which is in Portuguese.
type User struct {
	ID       int      `json:"id"`
	Login    string   `json:"login"`
	Name     string   `json:"nome"`
	Role     string   `json:"role"`
	JobTitle string   `json:"cargo,omitempty"`
	CPF      string   `json:"cpf,omitempty"`
	RG       string   `json:"rg,omitempty"`
	Phone    string   `json:"telefone,omitempty"`
	Address  string   `json:"endereco,omitempty"`
	Dept     string   `json:"departamento,omitempty"`
	Salary   *float64 `json:"salario,omitempty"`
}

// UserRef is the compact owner reference nested inside journeys and goals.
type UserRef struct {
	Name     string `json:"nome"`
	JobTitle string `json:"cargo,omitempty"`
}

// Identity is the subset of a user carried in the local session.
type Identity struct {
	ID    int    `json:"id"`
	Login string `json:"login"`
	Name  string `json:"nome"`
	Role  string `json:"role"`
}

// CreateUserRequest is the admin user-creation payload.
type CreateUserRequest struct {
	Login    string `json:"login"`
	Password string `json:"senha"`
	Name     string `json:"nome"`
	JobTitle string `json:"cargo"`
	Role     string `json:"role"`
}

// LoginResult is the upstream response to POST /auth/login. The user
// object is optional; older API versions return only the token.
type LoginResult struct {
	Token string    `json:"token"`
	User  *Identity `json:"usuario,omitempty"`
}

// ProfileStats is the pre-aggregated summary behind the profile page.
type ProfileStats struct {
	TotalHours      float64 `json:"totalHoras"`
	TotalProduction int     `json:"totalProducao"`
	VacationDays    int     `json:"diasFerias"`
	TimeBankBalance float64 `json:"saldoBancoHoras"`
	ActiveGoals     int     `json:"metasAtivas"`
	DaysWorked      int     `json:"diasTrabalhados"`
}
