package dto

// CardValidationResponse is returned when a scanned card payload is checked.
type CardValidationResponse struct {
	Payload     string           `json:"payload" example:"UPAC-12300298"`
	CardStatus  string           `json:"cardStatus" example:"ACTIVE"`
	ActiveLoans int              `json:"activeLoans"`
	Student     *StudentResponse `json:"student"`
}

// CardDownloadResponse reports whether a student may download their card.
type CardDownloadResponse struct {
	Code        string `json:"code"`
	Payload     string `json:"payload" example:"UPAC-12300298"`
	CardStatus  string `json:"cardStatus"`
	ActiveLoans int    `json:"activeLoans"`
	Allowed     bool   `json:"allowed"`
	Reason      string `json:"reason,omitempty" example:"student has active loans"`
}

// DashboardResponse aggregates card states and loan counts. All counts in
// one response are computed against the same reference instant.
type DashboardResponse struct {
	TotalStudents int `json:"totalStudents"`
	Active        int `json:"active"`
	ExpiringSoon  int `json:"expiringSoon"`
	Expired       int `json:"expired"`
	Inactive      int `json:"inactive"`
	ActiveLoans   int `json:"activeLoans"`
}
