package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskOrderMirrorSync = "orders.mirror.sync"

type OrderMirrorSyncPayload struct {
	OrderID string `json:"orderId"`
}

func NewOrderMirrorSyncTask(payload OrderMirrorSyncPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderMirrorSync, data), nil
}

func ParseOrderMirrorSyncPayload(task *asynq.Task) (OrderMirrorSyncPayload, error) {
	var payload OrderMirrorSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return OrderMirrorSyncPayload{}, err
	}
	return payload, nil
}
