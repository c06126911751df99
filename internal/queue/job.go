// Package queue carries dispatch requests from producers of notifications to
// the SMS worker over Kafka.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrMalformedJob = errors.New("malformed dispatch job")

// DispatchJob asks the worker to send pending SMS. A nil UserID means every
// user with pending notifications.
type DispatchJob struct {
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	EnqueuedAt time.Time  `json:"enqueued_at"`
}

func UserJob(userID uuid.UUID) DispatchJob {
	return DispatchJob{UserID: &userID, EnqueuedAt: time.Now().UTC()}
}

func AllUsersJob() DispatchJob {
	return DispatchJob{EnqueuedAt: time.Now().UTC()}
}

// Key partitions jobs by user so one user's jobs stay ordered.
func (j DispatchJob) Key() string {
	if j.UserID == nil {
		return "all"
	}
	return j.UserID.String()
}

func Encode(job DispatchJob) ([]byte, error) {
	return json.Marshal(job)
}

func Decode(data []byte) (DispatchJob, error) {
	var job DispatchJob
	if err := json.Unmarshal(data, &job); err != nil {
		return DispatchJob{}, fmt.Errorf("%w: %v", ErrMalformedJob, err)
	}
	return job, nil
}

type Publisher interface {
	Publish(ctx context.Context, job DispatchJob) error
}
