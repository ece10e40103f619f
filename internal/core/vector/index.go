package vector

import "fmt"

// Index 文件向量索引，vectors[i] 對應第 i 份文件
type Index struct {
	model   *TFIDF
	vectors []SparseVector
	norms   []float64
}

// BuildIndex 擬合模型並為每份文件計算向量
func BuildIndex(docs []string) (*Index, error) {
	model, err := Fit(docs)
	if err != nil {
		return nil, fmt.Errorf("fit tf-idf model: %w", err)
	}

	ix := &Index{
		model:   model,
		vectors: make([]SparseVector, len(docs)),
		norms:   make([]float64, len(docs)),
	}
	for i, doc := range docs {
		ix.vectors[i] = model.Transform(doc)
		ix.norms[i] = ix.vectors[i].Norm()
	}
	return ix, nil
}

// Len 文件數量
func (ix *Index) Len() int {
	return len(ix.vectors)
}

// Vector 第 i 份文件的向量
func (ix *Index) Vector(i int) SparseVector {
	return ix.vectors[i]
}

// Model 索引使用的模型
func (ix *Index) Model() *TFIDF {
	return ix.model
}

// Embed 以同一模型轉換查詢文字
func (ix *Index) Embed(text string) SparseVector {
	return ix.model.Transform(text)
}

// Similarities 查詢向量與每份文件的餘弦相似度，順序同文件順序
func (ix *Index) Similarities(q SparseVector) []float64 {
	scores := make([]float64, len(ix.vectors))
	qNorm := q.Norm()
	if qNorm == 0 {
		return scores
	}
	for i, v := range ix.vectors {
		scores[i] = cosineWithNorms(q, v, qNorm, ix.norms[i])
	}
	return scores
}
