package vectorindex

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cloudwego/eino/components/embedding"

	"reel-script-api/pkg/errors"
)

// MetricCosine 目前唯一支持的相似度度量
const MetricCosine = "cosine"

// Entry 一个文档及其嵌入向量；每个文档在索引中恰有一个向量
type Entry struct {
	Document Document  `json:"document"`
	Vector   []float32 `json:"vector"`
}

// Index 内存向量索引。整体构建、只读共享；重建产生新的 Index 值，
// 不做原地修改。
type Index struct {
	Model     string  `json:"model"`
	Dimension int     `json:"dimension"`
	Metric    string  `json:"metric"`
	Entries   []Entry `json:"entries"`
}

// Match 一次查询的命中结果
type Match struct {
	Document Document
	Score    float64
	// ord 插入序，用于同分并列时保持稳定排序
	ord int
}

// Len 返回索引内文档数
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.Entries)
}

// Search 在索引中检索与查询向量最相似的 topK 个文档。
// filter 若非 nil，先按其裁剪候选集再排序；topK<=0 返回空结果。
// 同分并列按插入序保序。
func (x *Index) Search(query []float32, topK int, filter func(Document) bool) []Match {
	if x == nil || topK <= 0 || len(query) == 0 {
		return []Match{}
	}

	matches := make([]Match, 0, len(x.Entries))
	for i, e := range x.Entries {
		if filter != nil && !filter(e.Document) {
			continue
		}
		matches = append(matches, Match{
			Document: e.Document,
			Score:    cosineSimilarity(query, e.Vector),
			ord:      i,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ord < matches[j].ord
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}

// cosineSimilarity 计算余弦相似度；维度不匹配或零向量时返回 0
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Build 嵌入全部文档并构建索引。嵌入调用失败直接向上返回，
// 重试由调用方负责。
func Build(ctx context.Context, embedder embedding.Embedder, model string, docs []Document) (*Index, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is nil")
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents to index")
	}

	texts := make([]string, 0, len(docs))
	for _, d := range docs {
		text := strings.TrimSpace(d.EmbedText())
		if text == "" {
			return nil, fmt.Errorf("document %s has no embeddable text", d.ID)
		}
		texts = append(texts, text)
	}

	vectors, err := embedder.EmbedStrings(ctx, texts)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEmbeddingFailed, "failed to embed documents")
	}
	if len(vectors) != len(docs) {
		return nil, errors.New(errors.CodeEmbeddingFailed, "embedding count mismatch").
			WithDetail(fmt.Sprintf("expected %d vectors, got %d", len(docs), len(vectors)))
	}

	dim := 0
	entries := make([]Entry, 0, len(docs))
	for i, d := range docs {
		vec := toFloat32(vectors[i])
		if len(vec) == 0 {
			return nil, errors.New(errors.CodeEmbeddingFailed, "empty embedding vector").
				WithDetail("document: " + d.ID)
		}
		if dim == 0 {
			dim = len(vec)
		} else if len(vec) != dim {
			return nil, errors.New(errors.CodeEmbeddingFailed, "inconsistent embedding dimension").
				WithDetail(fmt.Sprintf("document %s: expected %d, got %d", d.ID, dim, len(vec)))
		}
		entries = append(entries, Entry{Document: d, Vector: vec})
	}

	return &Index{
		Model:     model,
		Dimension: dim,
		Metric:    MetricCosine,
		Entries:   entries,
	}, nil
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, 0, len(v))
	for _, x := range v {
		out = append(out, float32(x))
	}
	return out
}
