package chunker

import (
	"fmt"
	"strings"

	"codeloft/pkg/types"
)

const (
	// ChunkSize is the window size in lines.
	ChunkSize = 200

	// Overlap is the number of lines shared between consecutive chunks, so
	// a declaration cut by one window boundary still appears whole in a
	// neighboring chunk.
	Overlap = 20
)

// ChunkFile splits one file's text into overlapping line-bounded chunks.
// A file of at most ChunkSize lines yields a single chunk holding the whole
// file under a "// <path>" header. Larger files yield windows of up to
// ChunkSize lines advancing by ChunkSize-Overlap, each under a header naming
// the path and its 1-based inclusive line range. Pure and deterministic:
// the same input always produces the same sequence.
func ChunkFile(filePath, content string) []types.CodeChunk {
	lines := strings.Split(content, "\n")

	if len(lines) <= ChunkSize {
		return []types.CodeChunk{{
			FilePath:   filePath,
			ChunkIndex: 0,
			Content:    fmt.Sprintf("// %s\n%s", filePath, content),
		}}
	}

	step := ChunkSize - Overlap
	var chunks []types.CodeChunk
	for start, index := 0, 0; start < len(lines); start, index = start+step, index+1 {
		end := start + ChunkSize
		if end > len(lines) {
			end = len(lines)
		}
		header := fmt.Sprintf("// %s (lines %d-%d)", filePath, start+1, end)
		chunks = append(chunks, types.CodeChunk{
			FilePath:   filePath,
			ChunkIndex: index,
			Content:    header + "\n" + strings.Join(lines[start:end], "\n"),
		})
	}
	return chunks
}

// ChunkProject chunks every file in a content map into one ordered list.
// Paths are iterated in lexical order so the combined sequence, and therefore
// the index built from it, is reproducible across runs.
func ChunkProject(fileContents map[string]string) []types.CodeChunk {
	project := types.Project{FileContents: fileContents}

	var all []types.CodeChunk
	for _, path := range project.SortedPaths() {
		all = append(all, ChunkFile(path, fileContents[path])...)
	}
	return all
}
