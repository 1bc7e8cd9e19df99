package publisher

import (
	"context"

	"github.com/DorianABDS/spec-to-issues/internal/logger"
	"github.com/DorianABDS/spec-to-issues/internal/models"
	"github.com/DorianABDS/spec-to-issues/internal/vcs"
)

type creationJob struct {
	ctx   context.Context
	draft models.IssueDraft
}

// creationQueue feeds drafts to a single worker so issues are created one at
// a time and in submission order.
type creationQueue struct {
	tracker vcs.IssueTracker
	pacer   Pacer
	jobs    chan creationJob
	done    chan *models.CreationResult
}

func newCreationQueue(tracker vcs.IssueTracker, pacer Pacer) *creationQueue {
	q := &creationQueue{
		tracker: tracker,
		pacer:   pacer,
		jobs:    make(chan creationJob),
		done:    make(chan *models.CreationResult, 1),
	}
	go q.run()
	return q
}

func (q *creationQueue) submit(ctx context.Context, draft models.IssueDraft) {
	q.jobs <- creationJob{ctx: ctx, draft: draft}
}

// close waits for the worker to drain and returns the accumulated result.
func (q *creationQueue) close() *models.CreationResult {
	close(q.jobs)
	return <-q.done
}

func (q *creationQueue) run() {
	result := models.NewCreationResult()
	for job := range q.jobs {
		q.process(job, result)
	}
	result.TotalCreated = len(result.Created)
	q.done <- result
}

func (q *creationQueue) process(job creationJob, result *models.CreationResult) {
	published, err := q.tracker.CreateIssue(job.ctx, job.draft)
	if err != nil {
		logger.Warn(job.ctx, "issue creation failed", "title", job.draft.Title, "error", err)
		result.Failed = append(result.Failed, models.FailedIssue{
			Title: job.draft.Title,
			Error: err.Error(),
		})
		return
	}

	logger.Debug(job.ctx, "issue created", "title", job.draft.Title, "number", published.Number)
	result.Created = append(result.Created, models.CreatedIssue{
		Title:  job.draft.Title,
		URL:    published.URL,
		Number: published.Number,
	})

	if err := q.pacer.Wait(job.ctx); err != nil {
		logger.Debug(job.ctx, "pacing interrupted", "error", err)
	}
}
