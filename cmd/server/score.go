package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"talent-match/internal/domain/cv"
	"talent-match/internal/domain/matching"
	"talent-match/internal/mapper"
	"talent-match/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type scoreOptions struct {
	jobFile         string
	cvFile          string
	requirementFile string
	candidateFile   string
}

type scoredCandidate struct {
	Name   string          `json:"name"`
	Result matching.Result `json:"result"`
}

type requirementRanking struct {
	Requirement string            `json:"requirement"`
	Candidates  []scoredCandidate `json:"candidates"`
}

func newScoreCmd(root *rootOptions) *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score payloads locally with the built-in rubric",
		Long: "Scores a job JSON file against a CV JSON file, or a requirement file against a candidate file.\n" +
			"Without files, ranks the bundled demo candidates against every demo requirement.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := root.logger()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return runScore(cmd.OutOrStdout(), opts, log)
		},
	}

	cmd.Flags().StringVar(&opts.jobFile, "job", "", "job posting JSON file")
	cmd.Flags().StringVar(&opts.cvFile, "cv", "", "CV JSON file scored against --job")
	cmd.Flags().StringVar(&opts.requirementFile, "requirement", "", "hiring requirement JSON file")
	cmd.Flags().StringVar(&opts.candidateFile, "candidate", "", "candidate CV JSON file scored against --requirement")
	cmd.MarkFlagsRequiredTogether("job", "cv")
	cmd.MarkFlagsRequiredTogether("requirement", "candidate")
	cmd.MarkFlagsMutuallyExclusive("job", "requirement")
	return cmd
}

func runScore(w io.Writer, opts *scoreOptions, log *zap.Logger) error {
	switch {
	case opts.jobFile != "":
		j, err := readPayload(opts.jobFile, mapper.JobFromJSON)
		if err != nil {
			return err
		}
		c, err := readPayload(opts.cvFile, mapper.CVFromJSON)
		if err != nil {
			return err
		}
		log.Debug("scoring job against cv", zap.String("job", j.Title), zap.String("cv", c.Fullname))
		return writeJSON(w, matching.ScoreJob(mapper.JobTarget(j), mapper.Resume(c)))

	case opts.requirementFile != "":
		r, err := readPayload(opts.requirementFile, mapper.RequirementFromJSON)
		if err != nil {
			return err
		}
		c, err := readPayload(opts.candidateFile, mapper.CVFromJSON)
		if err != nil {
			return err
		}
		log.Debug("scoring requirement against candidate", zap.String("requirement", r.Title), zap.String("candidate", c.Fullname))
		return writeJSON(w, matching.ScoreCandidate(mapper.RequirementTarget(r), mapper.Candidate(c)))

	default:
		log.Debug("no payloads given, ranking demo fixtures")
		return writeJSON(w, rankSeed(seed.Candidates()))
	}
}

func rankSeed(candidates []cv.CV) []requirementRanking {
	reqs := seed.Requirements()
	out := make([]requirementRanking, 0, len(reqs))
	for _, r := range reqs {
		target := mapper.RequirementTarget(r)
		ranked := make([]scoredCandidate, 0, len(candidates))
		for _, c := range candidates {
			ranked = append(ranked, scoredCandidate{Name: c.Fullname, Result: matching.ScoreCandidate(target, mapper.Candidate(c))})
		}
		sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].Result.Score > ranked[b].Result.Score })
		out = append(out, requirementRanking{Requirement: r.Title, Candidates: ranked})
	}
	return out
}

func readPayload[T any](path string, parse func([]byte) (T, error)) (T, error) {
	var zero T
	b, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("read %s: %w", path, err)
	}
	v, err := parse(b)
	if err != nil {
		if errors.Is(err, mapper.ErrInvalidPayload) {
			return zero, fmt.Errorf("%s: %w", path, err)
		}
		return zero, err
	}
	return v, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
