package models

type Process struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	EmployeeCount int    `json:"employee_count"`
}

type CreateProcessRequest struct {
	Name string `json:"name"`
}

type RenameProcessRequest struct {
	NewName string `json:"new_name"`
}

type ImportProcessesRequest struct {
	Names []string `json:"names"`
}

type ProcessImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}
