package vector

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrEmptyCorpus 沒有任何文件可供建立模型
	ErrEmptyCorpus = errors.New("no documents to fit")
	// ErrEmptyVocabulary 所有文件都沒有可用詞彙
	ErrEmptyVocabulary = errors.New("empty vocabulary")
)

// TFIDF 已擬合的詞頻-逆文件頻率模型，建立後唯讀
//
// idf(t) = ln((1+N)/(1+df(t))) + 1，詞頻為原始次數，輸出向量經 L2 正規化。
type TFIDF struct {
	vocabulary map[string]int
	terms      []string
	idf        []float64
	docCount   int
}

// Fit 從文件集合建立詞彙表與 idf 權重；詞彙依字母順序編號
func Fit(docs []string) (*TFIDF, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	m := &TFIDF{
		vocabulary: make(map[string]int, len(terms)),
		terms:      terms,
		idf:        make([]float64, len(terms)),
		docCount:   len(docs),
	}
	n := float64(len(docs))
	for i, term := range terms {
		m.vocabulary[term] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return m, nil
}

// Transform 將文字轉成正規化的 TF-IDF 向量；不在詞彙表中的詞直接忽略
func (m *TFIDF) Transform(text string) SparseVector {
	counts := make(map[int]int)
	for _, tok := range Tokenize(text) {
		if idx, ok := m.vocabulary[tok]; ok {
			counts[idx]++
		}
	}

	v := SparseVector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		v.Indices = append(v.Indices, idx)
	}
	sort.Ints(v.Indices)
	for _, idx := range v.Indices {
		v.Values = append(v.Values, float64(counts[idx])*m.idf[idx])
	}
	return v.Normalize()
}

// VocabularySize 詞彙數量
func (m *TFIDF) VocabularySize() int {
	return len(m.terms)
}

// DocumentCount 擬合時的文件數
func (m *TFIDF) DocumentCount() int {
	return m.docCount
}

// Terms 依編號排列的詞彙副本
func (m *TFIDF) Terms() []string {
	return append([]string(nil), m.terms...)
}

// IDF 查詢詞彙的 idf 權重
func (m *TFIDF) IDF(term string) (float64, bool) {
	idx, ok := m.vocabulary[term]
	if !ok {
		return 0, false
	}
	return m.idf[idx], true
}
