package domain

import "encoding/json"

// Job is a bundle of scenarios run across devices.
type Job struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	UserID      int       `json:"user_id"`
	CreatedAt   Timestamp `json:"created_at"`
}

// JobList is the body of GET /jobs.
type JobList struct {
	Total int   `json:"total"`
	Jobs  []Job `json:"jobs"`
}

// JobCreate is the body of POST /jobs.
type JobCreate struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ScenarioIDs []int   `json:"scenario_ids"`
	DeviceIDs   []int   `json:"device_ids"`
}

// JobRun is returned by POST /jobs/{id}/run.
type JobRun struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	ExecutionID int    `json:"execution_id"`
}

// JobExecution is one entry of GET /jobs/{id}/history. Results are kept raw;
// their shape depends on the executing engine.
type JobExecution struct {
	ID          int             `json:"id"`
	Status      string          `json:"status"`
	StartTime   *Timestamp      `json:"start_time"`
	EndTime     *Timestamp      `json:"end_time"`
	TotalTests  int             `json:"total_tests"`
	PassedTests int             `json:"passed_tests"`
	FailedTests int             `json:"failed_tests"`
	Results     json.RawMessage `json:"results"`
}

// JobScenarios is the body of GET /jobs/{id}/scenarios.
type JobScenarios struct {
	JobID     int `json:"job_id"`
	Scenarios []struct {
		ID          int     `json:"id"`
		Name        string  `json:"name"`
		Type        string  `json:"type"`
		Description *string `json:"description"`
	} `json:"scenarios"`
}

// JobDevices is the body of GET /jobs/{id}/devices.
type JobDevices struct {
	JobID   int `json:"job_id"`
	Devices []struct {
		ID       int    `json:"id"`
		Name     string `json:"name"`
		DeviceID string `json:"device_id"`
		Type     string `json:"type"`
		Status   string `json:"status"`
	} `json:"devices"`
}
