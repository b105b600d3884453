package domain

// Scenario types.
const (
	ScenarioWeb     = "web"
	ScenarioMobile  = "mobile"
	ScenarioDesktop = "desktop"
)

// Scenario is a saved test scenario.
type Scenario struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	FolderID     *int      `json:"folder_id,omitempty"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Type         string    `json:"type"`
	NaturalSteps *string   `json:"natural_steps"`
	StepsJSON    *string   `json:"steps_json"`
	ConfigJSON   *string   `json:"config_json"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    Timestamp `json:"created_at"`
	UpdatedAt    Timestamp `json:"updated_at"`
}

// ScenarioList is the body of GET /scenarios.
type ScenarioList struct {
	Total     int        `json:"total"`
	Scenarios []Scenario `json:"scenarios"`
}

// ScenarioCreate is the body of POST /scenarios.
type ScenarioCreate struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	Type         string  `json:"type"`
	FolderID     *int    `json:"folder_id,omitempty"`
	NaturalSteps *string `json:"natural_steps,omitempty"`
	StepsJSON    *string `json:"steps_json,omitempty"`
	ConfigJSON   *string `json:"config_json,omitempty"`
}

// ScenarioUpdate is the body of PUT /scenarios/{id}. Nil fields are left unchanged.
type ScenarioUpdate struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	NaturalSteps *string `json:"natural_steps,omitempty"`
	StepsJSON    *string `json:"steps_json,omitempty"`
	ConfigJSON   *string `json:"config_json,omitempty"`
}

// ScenarioStats is the body of GET /scenarios/stats.
type ScenarioStats struct {
	Total   int `json:"total"`
	Web     int `json:"web"`
	Mobile  int `json:"mobile"`
	Desktop int `json:"desktop"`
}

// Folder is a node of the scenario folder tree.
type Folder struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	ParentID *int     `json:"parent_id"`
	Children []Folder `json:"children,omitempty"`
}

// FolderCreate is the body of POST /scenarios/folders.
type FolderCreate struct {
	Name     string `json:"name"`
	ParentID *int   `json:"parent_id,omitempty"`
}
