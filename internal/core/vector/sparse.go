package vector

import "math"

// SparseVector 稀疏向量，Indices 遞增且不重複，與 Values 一一對應
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Len 非零元素數量
func (v SparseVector) Len() int {
	return len(v.Indices)
}

// IsZero 是否為零向量
func (v SparseVector) IsZero() bool {
	for _, x := range v.Values {
		if x != 0 {
			return false
		}
	}
	return true
}

// Dot 內積，以合併走訪兩個已排序的索引
func (v SparseVector) Dot(o SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm L2 範數
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Normalize 回傳 L2 正規化後的副本；零向量原樣回傳
func (v SparseVector) Normalize() SparseVector {
	norm := v.Norm()
	out := SparseVector{
		Indices: append([]int(nil), v.Indices...),
		Values:  make([]float64, len(v.Values)),
	}
	if norm == 0 {
		copy(out.Values, v.Values)
		return out
	}
	for i, x := range v.Values {
		out.Values[i] = x / norm
	}
	return out
}

// Cosine 餘弦相似度，任一方為零向量時為 0，結果限制在 [0,1]
func Cosine(a, b SparseVector) float64 {
	return cosineWithNorms(a, b, a.Norm(), b.Norm())
}

func cosineWithNorms(a, b SparseVector, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	return clamp01(a.Dot(b) / (normA * normB))
}

func clamp01(x float64) float64 {
	switch {
	case math.IsNaN(x) || x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
