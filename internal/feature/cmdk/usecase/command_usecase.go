package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"aurora_backend/internal/feature/cmdk/domain/entity"
)

// JobStore はジョブの保存先です。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type JobStore interface {
	Save(ctx context.Context, job entity.Job) error
	Get(ctx context.Context, id string) (entity.Job, error)
}

// CommandTicket はコマンド受付時に返すチケットです。
type CommandTicket struct {
	JobID            string         `json:"jobId"`
	StatusURL        string         `json:"statusUrl"`
	EstimatedSeconds int            `json:"estimatedSeconds"`
	Received         map[string]any `json:"received"`
}

// JobState はジョブ状態照会のレスポンスです。
type JobState struct {
	JobID    string           `json:"jobId"`
	Status   entity.JobStatus `json:"status"`
	Progress float64          `json:"progress"`
}

// CommandUsecase はコマンド受付（モック）を処理します。実際のコマンドは実行しません。
type CommandUsecase struct {
	jobs  JobStore
	now   func() time.Time
	newID func() string
}

// NewCommandUsecase は CommandUsecase を生成します。
func NewCommandUsecase(jobs JobStore) *CommandUsecase {
	return &CommandUsecase{jobs: jobs, now: time.Now, newID: uuid.NewString}
}

// estimateSeconds はコマンド種別から処理時間の見積もりを返します。
func estimateSeconds(p entity.ParsedCommand) int {
	if p.Kind != entity.KindCmd {
		return 2
	}
	switch strings.ToLower(p.Name) {
	case "generate":
		return 12
	case "compare", "snapshot":
		return 4
	default:
		return 6
	}
}

// Submit は入力を解釈してジョブを登録し、チケットを返します。
// received にはリクエストボディ全体と解釈結果を含めます。
func (uc *CommandUsecase) Submit(ctx context.Context, input string, body map[string]any) (*CommandTicket, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}
	parsed := ParseCommand(input)
	job := entity.Job{
		ID:               uc.newID(),
		Input:            input,
		Parsed:           parsed,
		CreatedAt:        uc.now(),
		EstimatedSeconds: estimateSeconds(parsed),
	}
	if err := uc.jobs.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	received := make(map[string]any, len(body)+1)
	for k, v := range body {
		received[k] = v
	}
	received["parsed"] = parsed

	return &CommandTicket{
		JobID:            job.ID,
		StatusURL:        "/api/cmdk/jobs/" + job.ID,
		EstimatedSeconds: job.EstimatedSeconds,
		Received:         received,
	}, nil
}

// Status はジョブの現在の状態を返します。
func (uc *CommandUsecase) Status(ctx context.Context, id string) (*JobState, error) {
	job, err := uc.jobs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	status, progress := job.Progress(uc.now())
	return &JobState{JobID: job.ID, Status: status, Progress: progress}, nil
}
