package digit

// Unknown is the sentinel returned when no digit can be claimed, e.g. for
// an empty canvas.
const Unknown = -1

// bestOf returns the index of the highest-scoring template. Comparison is
// strictly greater-than, so a tie keeps the earlier (lower) index.
func bestOf(img Grid, tpls []Grid) (idx, score int) {
	idx, score = 0, -1
	for i, tpl := range tpls {
		if s := Similarity(img, tpl); s > score {
			idx, score = i, s
		}
	}
	return idx, score
}

// Match scores the normalized image against all ten templates and returns
// the winning digit together with its raw similarity score (0..256), which
// doubles as the confidence value.
func Match(img Grid) (d, score int) {
	return bestOf(img, Templates[:])
}

// Confidence scales a similarity score onto the 0..255 confidence range.
func Confidence(score int) uint8 {
	if score <= 0 {
		return 0
	}
	if score >= MaxScore {
		return 255
	}
	return uint8(score * 255 / MaxScore)
}
