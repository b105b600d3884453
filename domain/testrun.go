package domain

import "encoding/json"

// Input types of a test run request.
const (
	InputNatural  = "natural"
	InputCommands = "commands"
)

// TestStep is one parsed or hand-written test step.
type TestStep struct {
	Action      string `json:"action"`
	Target      string `json:"target"`
	Value       string `json:"value"`
	LocatorType string `json:"locator_type,omitempty"`
}

// StepResult is the outcome of one executed step.
type StepResult struct {
	StepNumber int     `json:"step_number"`
	TotalSteps int     `json:"total_steps"`
	Action     string  `json:"action"`
	Target     string  `json:"target"`
	Value      string  `json:"value"`
	Original   string  `json:"original"`
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	Error      *string `json:"error"`
	Screenshot *string `json:"screenshot"`
}

// WebTestRequest is the body of POST /web/run-test.
type WebTestRequest struct {
	URL         string     `json:"url"`
	InputType   string     `json:"input_type,omitempty"`
	NaturalText *string    `json:"natural_text,omitempty"`
	Steps       []TestStep `json:"steps,omitempty"`
	Headless    bool       `json:"headless"`
	StopOnFail  bool       `json:"stop_on_fail"`
	ScenarioID  *int       `json:"scenario_id,omitempty"`
}

// MobileTestRequest is the body of POST /mobile/run-test.
type MobileTestRequest struct {
	DeviceID    int        `json:"device_id"`
	AppPackage  string     `json:"app_package,omitempty"`
	AppActivity string     `json:"app_activity,omitempty"`
	InputType   string     `json:"input_type,omitempty"`
	NaturalText *string    `json:"natural_text,omitempty"`
	Steps       []TestStep `json:"steps,omitempty"`
	StopOnFail  bool       `json:"stop_on_fail"`
	ScenarioID  *int       `json:"scenario_id,omitempty"`
}

// TestRunResult is returned by both run-test endpoints. Device is only set for mobile runs.
type TestRunResult struct {
	TestID   string                     `json:"test_id"`
	Success  bool                       `json:"success"`
	Message  string                     `json:"message"`
	Device   *Device                    `json:"device,omitempty"`
	Summary  map[string]json.RawMessage `json:"summary"`
	Results  []StepResult               `json:"results"`
	Duration *float64                   `json:"duration"`
}

// ParseResult is returned by the natural-language parse endpoints.
type ParseResult struct {
	Count int        `json:"count"`
	Steps []TestStep `json:"steps"`
}

// HealthStatus is returned by the web and mobile health endpoints.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
