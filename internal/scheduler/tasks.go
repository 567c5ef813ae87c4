package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskProspectRecompute = "prospects.recompute"

type ProspectRecomputePayload struct {
	TenantID   string `json:"tenantId"`
	ProspectID string `json:"prospectId"`
}

func NewProspectRecomputeTask(payload ProspectRecomputePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProspectRecompute, data), nil
}

func ParseProspectRecomputePayload(task *asynq.Task) (ProspectRecomputePayload, error) {
	var payload ProspectRecomputePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ProspectRecomputePayload{}, err
	}
	return payload, nil
}
