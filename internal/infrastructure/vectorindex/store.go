package vectorindex

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrIndexNotFound 表示磁盘上不存在索引文件；
// 调用方应回退到内置示例库重建。
var ErrIndexNotFound = errors.New("vector index file not found")

// Save 将索引写入磁盘（单文件：向量 + 源文档）。
// 先写临时文件再重命名，避免读到半成品。
func Save(index *Index, path string) error {
	if index == nil {
		return fmt.Errorf("index is nil")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	data, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace index file: %w", err)
	}
	return nil
}

// Load 从磁盘读取索引；文件不存在时返回 ErrIndexNotFound
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, path)
		}
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}

	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index file %s: %w", path, err)
	}
	if index.Dimension <= 0 || len(index.Entries) == 0 {
		return nil, fmt.Errorf("index file %s is empty or corrupt", path)
	}
	for _, e := range index.Entries {
		if len(e.Vector) != index.Dimension {
			return nil, fmt.Errorf("index file %s is corrupt: vector dimension mismatch for %s",
				path, e.Document.ID)
		}
	}
	return &index, nil
}
