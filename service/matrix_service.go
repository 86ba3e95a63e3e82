package service

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/analyzer"
	"github.com/ludo-technologies/codesim/internal/constants"
	"github.com/ludo-technologies/codesim/internal/lexer"
	"github.com/ludo-technologies/codesim/internal/version"
	"github.com/rs/zerolog/log"
)

// MatrixServiceImpl implements domain.MatrixService
type MatrixServiceImpl struct {
	progress domain.ProgressManager
}

// NewMatrixService creates a matrix service. progress may be nil.
func NewMatrixService(progress domain.ProgressManager) *MatrixServiceImpl {
	return &MatrixServiceImpl{progress: progress}
}

// prepared holds the per-snippet work shared by all of its pairs
type prepared struct {
	tokens    []string
	grams     analyzer.NGramSet
	signature *analyzer.MinHashSignature
	err       error // normalization or limit failure
	tooLarge  bool
}

type pairJob struct {
	index int
	i, j  int
}

// Analyze scores every unordered pair of snippets. Snippets that fail to
// normalize still get a subsequence score; their pairs are reported as
// failed with the error text. When a prefilter threshold is set, pairs whose
// MinHash estimate falls below it are reported as skipped.
func (s *MatrixServiceImpl) Analyze(ctx context.Context, snippets []domain.Snippet, req *domain.MatrixRequest) (*domain.MatrixResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	startTime := time.Now()
	runID := uuid.New().String()
	logger := log.With().Str("run_id", runID).Logger()

	if req.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	workers := req.MaxWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	preps, err := s.prepare(ctx, snippets, req, workers)
	if err != nil {
		return nil, err
	}

	filter := newPrefilter(preps, req.PrefilterThreshold)

	total := len(snippets) * (len(snippets) - 1) / 2
	results := make([]domain.PairResult, total)
	jobs := make(chan pairJob)

	if s.progress != nil {
		s.progress.Initialize(total)
		s.progress.Start()
		defer s.progress.Close()
	}
	var processed int64

	executor := NewParallelExecutor()
	executor.SetTimeout(0)
	tasks := make([]domain.ExecutableTask, workers)
	for w := range tasks {
		tasks[w] = NewSimpleTask(fmt.Sprintf("worker-%d", w), true, func(ctx context.Context) (interface{}, error) {
			for job := range jobs {
				results[job.index] = s.scorePair(snippets, preps, filter, job)
				done := atomic.AddInt64(&processed, 1)
				if s.progress != nil {
					s.progress.Update(int(done), total)
				}
			}
			return nil, nil
		})
	}

	go func() {
		defer close(jobs)
		index := 0
		for i := 0; i < len(snippets); i++ {
			for j := i + 1; j < len(snippets); j++ {
				select {
				case jobs <- pairJob{index: index, i: i, j: j}:
				case <-ctx.Done():
					return
				}
				index++
			}
		}
	}()

	if err := executor.Execute(ctx, tasks); err != nil {
		return nil, classifyEngineError(err)
	}
	if err := ctx.Err(); err != nil {
		if s.progress != nil {
			s.progress.Complete(false)
		}
		return nil, domain.NewAnalysisError("matrix run did not finish", err)
	}
	if s.progress != nil {
		s.progress.Complete(true)
	}

	response := &domain.MatrixResponse{
		RunID:       runID,
		Files:       snippetNames(snippets),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}
	response.Pairs, response.Statistics = summarize(results, req.MinScore)
	response.Statistics.FilesAnalyzed = len(snippets)
	response.Duration = time.Since(startTime).Milliseconds()

	logger.Info().
		Int("files", len(snippets)).
		Int("scored", response.Statistics.PairsScored).
		Int("skipped", response.Statistics.PairsSkipped).
		Int("failed", response.Statistics.PairsFailed).
		Msg("matrix run complete")

	return response, nil
}

// prepare tokenizes and normalizes every snippet once
func (s *MatrixServiceImpl) prepare(ctx context.Context, snippets []domain.Snippet, req *domain.MatrixRequest, workers int) ([]prepared, error) {
	preps := make([]prepared, len(snippets))
	tasks := make([]domain.ExecutableTask, len(snippets))
	for i := range snippets {
		i := i
		tasks[i] = NewSimpleTask(snippets[i].Name, true, func(ctx context.Context) (interface{}, error) {
			p := &preps[i]
			p.tokens = lexer.Tokenize(snippets[i].Code)
			if err := checkTokenLimit(snippets[i], len(p.tokens), req.MaxTokens); err != nil {
				p.err = err
				p.tooLarge = true
				return nil, nil
			}
			grams, err := analyzer.NormalizedNGrams(ctx, snippets[i].Code, req.NGramSize)
			if err != nil {
				p.err = wrapNormalizeError(snippets[i], err)
				log.Debug().Err(err).Str("file", snippets[i].Name).Msg("normalization failed")
				return nil, nil
			}
			p.grams = grams
			return nil, nil
		})
	}

	executor := NewParallelExecutor()
	executor.SetTimeout(0)
	executor.SetMaxConcurrency(workers)
	if err := executor.Execute(ctx, tasks); err != nil {
		return nil, classifyEngineError(err)
	}
	return preps, nil
}

// prefilter holds the MinHash state of a run with a prefilter threshold
type prefilter struct {
	threshold  float64
	hasher     *analyzer.MinHasher
	candidates map[analyzer.CandidatePair]bool
}

// newPrefilter signs every normalized snippet and collects the LSH candidate
// pairs. It returns nil when threshold is zero.
func newPrefilter(preps []prepared, threshold float64) *prefilter {
	if threshold <= 0 {
		return nil
	}

	hasher := analyzer.NewMinHasher(constants.DefaultMinHashFunctions)
	index := analyzer.NewLSHIndex(lshConfigFor(threshold, hasher.NumHashes()))
	for i := range preps {
		if preps[i].err != nil {
			continue
		}
		preps[i].signature = hasher.ComputeNGramSignature(preps[i].grams)
		_ = index.Add(pairKey(i), preps[i].signature)
	}

	candidates := make(map[analyzer.CandidatePair]bool)
	for _, pair := range index.CandidatePairs() {
		candidates[pair] = true
	}
	return &prefilter{threshold: threshold, hasher: hasher, candidates: candidates}
}

// skip reports whether pair (i, j) is screened out, with its estimate
func (f *prefilter) skip(i, j int, a, b *prepared) (bool, float64) {
	estimate := f.hasher.EstimateJaccardSimilarity(a.signature, b.signature)
	pair := analyzer.CandidatePair{First: pairKey(i), Second: pairKey(j)}
	return !f.candidates[pair] || estimate < f.threshold, estimate
}

// lshConfigFor picks the most selective banding whose own threshold stays
// at or below half of the requested one, so that pairs near the requested
// threshold almost always become candidates.
func lshConfigFor(threshold float64, numHashes int) analyzer.LSHConfig {
	best := analyzer.LSHConfig{Bands: numHashes, Rows: 1}
	for rows := 2; rows <= numHashes; rows *= 2 {
		cfg := analyzer.LSHConfig{Bands: numHashes / rows, Rows: rows}
		if analyzer.NewLSHIndex(cfg).Threshold() > threshold/2 {
			break
		}
		best = cfg
	}
	return best
}

// pairKey is a zero-padded index so that string order matches index order
func pairKey(i int) string {
	return fmt.Sprintf("%08d", i)
}

func (s *MatrixServiceImpl) scorePair(snippets []domain.Snippet, preps []prepared, filter *prefilter, job pairJob) domain.PairResult {
	a, b := &preps[job.i], &preps[job.j]
	result := domain.PairResult{
		FileA: snippets[job.i].Name,
		FileB: snippets[job.j].Name,
	}

	if a.tooLarge || b.tooLarge {
		result.Status = domain.PairFailed
		result.Error = joinErrors(a.err, b.err)
		return result
	}

	if filter != nil && a.err == nil && b.err == nil {
		skip, estimate := filter.skip(job.i, job.j, a, b)
		result.Estimate = estimate
		if skip {
			result.Status = domain.PairSkipped
			return result
		}
	}

	result.Subsequence = analyzer.SubsequenceSimilarity(a.tokens, b.tokens)
	if a.err != nil || b.err != nil {
		result.Status = domain.PairFailed
		result.Error = joinErrors(a.err, b.err)
		return result
	}

	result.NGramJaccard = analyzer.Jaccard(a.grams, b.grams)
	result.Status = domain.PairScored
	return result
}

func joinErrors(errs ...error) string {
	msg := ""
	for _, err := range errs {
		if err == nil {
			continue
		}
		if msg != "" {
			msg += "; "
		}
		msg += err.Error()
	}
	return msg
}

// summarize counts results and orders the reported pairs: scored pairs by
// descending best score, then failed, then skipped.
func summarize(results []domain.PairResult, minScore float64) ([]domain.PairResult, domain.MatrixStatistics) {
	stats := domain.MatrixStatistics{PairsTotal: len(results)}
	reported := make([]domain.PairResult, 0, len(results))

	for _, r := range results {
		switch r.Status {
		case domain.PairScored:
			stats.PairsScored++
			if bestScore(r) < minScore {
				continue
			}
		case domain.PairSkipped:
			stats.PairsSkipped++
		case domain.PairFailed:
			stats.PairsFailed++
		}
		reported = append(reported, r)
	}

	rank := map[domain.PairStatus]int{domain.PairScored: 0, domain.PairFailed: 1, domain.PairSkipped: 2}
	sort.SliceStable(reported, func(i, j int) bool {
		a, b := reported[i], reported[j]
		if rank[a.Status] != rank[b.Status] {
			return rank[a.Status] < rank[b.Status]
		}
		if bestScore(a) != bestScore(b) {
			return bestScore(a) > bestScore(b)
		}
		if a.FileA != b.FileA {
			return a.FileA < b.FileA
		}
		return a.FileB < b.FileB
	})

	stats.PairsReported = len(reported)
	return reported, stats
}

func bestScore(r domain.PairResult) float64 {
	if r.NGramJaccard > r.Subsequence {
		return r.NGramJaccard
	}
	return r.Subsequence
}

func snippetNames(snippets []domain.Snippet) []string {
	names := make([]string, len(snippets))
	for i, s := range snippets {
		names[i] = s.Name
	}
	return names
}
