// tasks.go - Task records kept under the "task:" prefix

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go-task-backend/kv"
	"go-task-backend/models"
)

const taskPrefix = "task:"

type Tasks struct {
	kv *kv.Store
}

func NewTasks(s *kv.Store) *Tasks {
	return &Tasks{kv: s}
}

func (t *Tasks) Get(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := t.kv.Get(ctx, taskPrefix+id, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Put writes the whole record; concurrent writers to one id race and the last one wins.
func (t *Tasks) Put(ctx context.Context, task *models.Task) error {
	return t.kv.Set(ctx, taskPrefix+task.ID, task)
}

func (t *Tasks) Delete(ctx context.Context, id string) error {
	return t.kv.Del(ctx, taskPrefix+id)
}

// List returns every task in key order. Callers filter and sort.
func (t *Tasks) List(ctx context.Context) ([]models.Task, error) {
	values, err := t.kv.GetByPrefix(ctx, taskPrefix)
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(values))
	for _, raw := range values {
		var task models.Task
		if err := json.Unmarshal(raw, &task); err != nil {
			return nil, fmt.Errorf("decode task record: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
