package engine

// Line is one row or column of a grid, ordered toward the edge tiles slide to.
type Line []int

// CompactAndMerge slides a line toward index 0 and merges equal neighbours.
// Returns a new line of the same length and the score gained from merges.
//
// Merging is a single left-to-right pass, so a merged tile never absorbs a
// second neighbour in the same move: [2,2,2,2] becomes [4,4,0,0].
func CompactAndMerge(line Line) (Line, int) {
	compacted := make([]int, 0, len(line))
	for _, v := range line {
		if v != 0 {
			compacted = append(compacted, v)
		}
	}

	score := 0
	for i := 0; i < len(compacted)-1; i++ {
		if compacted[i] == compacted[i+1] {
			compacted[i] *= 2
			score += compacted[i]
			compacted[i+1] = 0
		}
	}

	result := make(Line, len(line))
	writePos := 0
	for _, v := range compacted {
		if v == 0 {
			continue
		}
		result[writePos] = v
		writePos++
	}

	return result, score
}

// reverseLine returns a reversed copy.
func reverseLine(line Line) Line {
	n := len(line)
	out := make(Line, n)
	for i, v := range line {
		out[n-1-i] = v
	}
	return out
}

func (l Line) equal(other Line) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}
