package service

import (
	"context"
	"fmt"

	"myclient/domain"
	"myclient/helpers"
)

// JobsAPI wraps the /jobs endpoints: bundles of scenarios run across devices.
type JobsAPI struct {
	client *APIClient
}

// NewJobsAPI creates a JobsAPI. Panics on nil client.
func NewJobsAPI(client *APIClient) *JobsAPI {
	return &JobsAPI{client: helpers.NilPanic(client, "service.jobs_api.go: client is required")}
}

func (j *JobsAPI) List(ctx context.Context) (domain.JobList, error) {
	return decodeAs[domain.JobList](j.client.Get(ctx, "/jobs"))
}

func (j *JobsAPI) Get(ctx context.Context, id int) (domain.Job, error) {
	return decodeAs[domain.Job](j.client.Get(ctx, fmt.Sprintf("/jobs/%d", id)))
}

func (j *JobsAPI) Create(ctx context.Context, req domain.JobCreate) (domain.Job, error) {
	return decodeAs[domain.Job](j.client.Post(ctx, "/jobs", req))
}

func (j *JobsAPI) Delete(ctx context.Context, id int) (domain.ActionResult, error) {
	return decodeAs[domain.ActionResult](j.client.Delete(ctx, fmt.Sprintf("/jobs/%d", id)))
}

// Run starts an execution of job id. The backend runs it in the background.
func (j *JobsAPI) Run(ctx context.Context, id int) (domain.JobRun, error) {
	return decodeAs[domain.JobRun](j.client.Post(ctx, fmt.Sprintf("/jobs/%d/run", id), nil))
}

// Stop cancels the active execution of job id. Success is false when nothing was running.
func (j *JobsAPI) Stop(ctx context.Context, id int) (domain.ActionResult, error) {
	return decodeAs[domain.ActionResult](j.client.Post(ctx, fmt.Sprintf("/jobs/%d/stop", id), nil))
}

// History returns the executions of job id, newest first.
func (j *JobsAPI) History(ctx context.Context, id int) ([]domain.JobExecution, error) {
	return decodeAs[[]domain.JobExecution](j.client.Get(ctx, fmt.Sprintf("/jobs/%d/history", id)))
}

func (j *JobsAPI) Scenarios(ctx context.Context, id int) (domain.JobScenarios, error) {
	return decodeAs[domain.JobScenarios](j.client.Get(ctx, fmt.Sprintf("/jobs/%d/scenarios", id)))
}

func (j *JobsAPI) Devices(ctx context.Context, id int) (domain.JobDevices, error) {
	return decodeAs[domain.JobDevices](j.client.Get(ctx, fmt.Sprintf("/jobs/%d/devices", id)))
}
