package recommend

import "math"

// cosine returns the cosine similarity of two dense vectors, 0 when either
// vector is zero or the dimensions disagree.
func cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// sparse term-weight vector keyed by token.
type termVector map[string]float64

// normalize scales a term vector to unit L2 length in place and returns it.
// The zero vector stays zero.
func (v termVector) normalize() termVector {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for t, w := range v {
		v[t] = w / norm
	}
	return v
}

// dot of two normalized term vectors is their cosine similarity. Iterates the
// smaller map.
func (v termVector) dot(other termVector) float64 {
	if len(other) < len(v) {
		v, other = other, v
	}
	var sum float64
	for t, w := range v {
		if ow, ok := other[t]; ok {
			sum += w * ow
		}
	}
	return sum
}
