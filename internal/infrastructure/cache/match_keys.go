package cache

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

const (
	jobMatchesPrefix       = "match:jobs:cv:"
	candidateMatchesPrefix = "match:candidates:req:"
)

func JobMatchesKey(cvID uuid.UUID, hash string) string {
	return jobMatchesPrefix + cvID.String() + ":" + hash
}

func CandidateMatchesKey(reqID uuid.UUID, hash string) string {
	return candidateMatchesPrefix + reqID.String() + ":" + hash
}

// InvalidateJobsChanged drops every ranked job page since any CV may rank the job.
func (r *Redis) InvalidateJobsChanged(ctx context.Context) error {
	return r.DeleteByPattern(ctx, jobMatchesPrefix+"*")
}

// InvalidateCVChanged drops the CV's own job rankings and every candidate ranking.
func (r *Redis) InvalidateCVChanged(ctx context.Context, cvID uuid.UUID) error {
	return errors.Join(
		r.DeleteByPattern(ctx, jobMatchesPrefix+cvID.String()+":*"),
		r.DeleteByPattern(ctx, candidateMatchesPrefix+"*"),
	)
}

func (r *Redis) InvalidateRequirementChanged(ctx context.Context, reqID uuid.UUID) error {
	return r.DeleteByPattern(ctx, candidateMatchesPrefix+reqID.String()+":*")
}
