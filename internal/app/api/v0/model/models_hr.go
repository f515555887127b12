package model

type Employee struct {
	Identifier string `json:"Identifier"`
	Email      string `json:"Email"`
	Firstname  string `json:"Firstname"`
	Lastname   string `json:"Lastname"`
	Department string `json:"Department"`
	Position   string `json:"Position"`
}

type LeaveRequest struct {
	Identifier string `json:"Identifier"`
	Employee   string `json:"Employee"`
	StartDate  string `json:"StartDate"`
	EndDate    string `json:"EndDate"`
	Status     string `json:"Status"`
	Reason     string `json:"Reason"`
}

type KycRecord struct {
	Identifier string `json:"Identifier"`
	Employee   string `json:"Employee"`
	Document   string `json:"Document"`
	Status     string `json:"Status"`
}
