package selector

import "fmt"

// Rand is the random source used for sampling. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// GenerateBatch draws cfg.BatchSize distinct questions, favoring facts
// with higher weights.
//
// Each draw picks row and col uniformly from [1, bound] and accepts the
// pair when a uniform value in [0, AcceptanceScale) falls below its
// effective weight and the pair is not already in the batch. After
// MaxAttempts draws the remaining slots are filled uniformly from the
// unused pairs, so a table driven entirely to zero still yields a batch.
func GenerateBatch(rng Rand, table *WeightTable, level int, cfg Config) (Batch, error) {
	if err := cfg.Validate(); err != nil {
		return Batch{}, fmt.Errorf("invalid selector config: %w", err)
	}
	if table.Size() != cfg.Size {
		return Batch{}, fmt.Errorf("%w: table %d, config %d", ErrSizeMismatch, table.Size(), cfg.Size)
	}

	bound, err := cfg.Bound(level)
	if err != nil {
		return Batch{}, err
	}
	if bound*bound < cfg.BatchSize {
		return Batch{}, fmt.Errorf("%w: %d facts at level %d, batch needs %d",
			ErrBatchTooLarge, bound*bound, level, cfg.BatchSize)
	}

	batch := Batch{Questions: make([]Question, 0, cfg.BatchSize)}
	seen := make(map[Question]bool, cfg.BatchSize)

	for len(batch.Questions) < cfg.BatchSize && batch.Attempts < cfg.MaxAttempts {
		batch.Attempts++
		q := Question{Row: rng.IntN(bound) + 1, Col: rng.IntN(bound) + 1}
		u := rng.Float64() * cfg.AcceptanceScale
		if u < effectiveWeight(table, q, cfg) && !seen[q] {
			seen[q] = true
			batch.Questions = append(batch.Questions, q)
		}
	}

	if len(batch.Questions) < cfg.BatchSize {
		batch.Fallback = true
		fillUniform(rng, bound, seen, &batch, cfg.BatchSize)
	}

	return batch, nil
}

// effectiveWeight returns the weight used by the acceptance draw.
func effectiveWeight(table *WeightTable, q Question, cfg Config) float64 {
	w := table.Weight(q.Row, q.Col)
	if cfg.DampTrivial && (q.Row == 1 || q.Col == 1) {
		w /= cfg.TrivialDivisor
	}
	return w
}

// fillUniform tops up the batch with unused pairs chosen uniformly at random.
func fillUniform(rng Rand, bound int, seen map[Question]bool, batch *Batch, size int) {
	remaining := make([]Question, 0, bound*bound-len(seen))
	for r := 1; r <= bound; r++ {
		for c := 1; c <= bound; c++ {
			q := Question{Row: r, Col: c}
			if !seen[q] {
				remaining = append(remaining, q)
			}
		}
	}

	// Partial Fisher-Yates: only the slots we need are shuffled into place.
	need := size - len(batch.Questions)
	for i := 0; i < need && i < len(remaining); i++ {
		j := i + rng.IntN(len(remaining)-i)
		remaining[i], remaining[j] = remaining[j], remaining[i]
		seen[remaining[i]] = true
		batch.Questions = append(batch.Questions, remaining[i])
	}
}
