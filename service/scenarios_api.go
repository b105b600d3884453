package service

import (
	"context"
	"fmt"
	"net/url"

	"myclient/domain"
	"myclient/helpers"
)

// ScenariosAPI wraps the /scenarios endpoints.
type ScenariosAPI struct {
	client *APIClient
}

// NewScenariosAPI creates a ScenariosAPI. Panics on nil client.
func NewScenariosAPI(client *APIClient) *ScenariosAPI {
	return &ScenariosAPI{client: helpers.NilPanic(client, "service.scenarios_api.go: client is required")}
}

// List returns the scenarios, filtered by type when scenarioType is not empty.
func (s *ScenariosAPI) List(ctx context.Context, scenarioType string) (domain.ScenarioList, error) {
	endpoint := "/scenarios"
	if scenarioType != "" {
		endpoint += "?type=" + url.QueryEscape(scenarioType)
	}
	return decodeAs[domain.ScenarioList](s.client.Get(ctx, endpoint))
}

func (s *ScenariosAPI) Get(ctx context.Context, id int) (domain.Scenario, error) {
	return decodeAs[domain.Scenario](s.client.Get(ctx, fmt.Sprintf("/scenarios/%d", id)))
}

func (s *ScenariosAPI) Create(ctx context.Context, req domain.ScenarioCreate) (domain.Scenario, error) {
	return decodeAs[domain.Scenario](s.client.Post(ctx, "/scenarios", req))
}

func (s *ScenariosAPI) Update(ctx context.Context, id int, req domain.ScenarioUpdate) (domain.Scenario, error) {
	return decodeAs[domain.Scenario](s.client.Put(ctx, fmt.Sprintf("/scenarios/%d", id), req))
}

func (s *ScenariosAPI) Delete(ctx context.Context, id int) (domain.ActionResult, error) {
	return decodeAs[domain.ActionResult](s.client.Delete(ctx, fmt.Sprintf("/scenarios/%d", id)))
}

// Duplicate asks the backend to copy scenario id.
func (s *ScenariosAPI) Duplicate(ctx context.Context, id int) (domain.Scenario, error) {
	return decodeAs[domain.Scenario](s.client.Post(ctx, fmt.Sprintf("/scenarios/%d/duplicate", id), nil))
}

// Stats returns the per-type scenario counters.
func (s *ScenariosAPI) Stats(ctx context.Context) (domain.ScenarioStats, error) {
	return decodeAs[domain.ScenarioStats](s.client.Get(ctx, "/scenarios/stats"))
}

// Folders returns the folder tree.
func (s *ScenariosAPI) Folders(ctx context.Context) ([]domain.Folder, error) {
	return decodeAs[[]domain.Folder](s.client.Get(ctx, "/scenarios/folders"))
}

func (s *ScenariosAPI) CreateFolder(ctx context.Context, req domain.FolderCreate) (domain.Folder, error) {
	return decodeAs[domain.Folder](s.client.Post(ctx, "/scenarios/folders", req))
}

func (s *ScenariosAPI) DeleteFolder(ctx context.Context, id int) (domain.ActionResult, error) {
	return decodeAs[domain.ActionResult](s.client.Delete(ctx, fmt.Sprintf("/scenarios/folders/%d", id)))
}
