package selector

// RecordFeedback adjusts weights from graded answers: a correct answer
// lowers the fact's weight by step (floored at zero), a wrong one raises
// it by step. Records outside the table are skipped. It returns the
// number of records applied.
func RecordFeedback(table *WeightTable, answers []AnswerRecord, step float64) int {
	applied := 0
	for _, a := range answers {
		if !table.Contains(a.Row, a.Col) {
			continue
		}
		i := table.index(a.Row, a.Col)
		if a.Correct {
			table.weights[i] = clampWeight(table.weights[i] - step)
		} else {
			table.weights[i] = clampWeight(table.weights[i] + step)
		}
		applied++
	}
	return applied
}

// AdvanceLevel returns the level for the next round. A perfect round
// moves the learner up one level, saturating at maxLevel; the level
// never decreases.
func AdvanceLevel(level int, allCorrect bool, maxLevel int) int {
	if allCorrect && level < maxLevel {
		return level + 1
	}
	return level
}
