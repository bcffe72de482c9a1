package codeblock

import (
	"regexp"
	"strings"
)

// Block is one fenced code block lifted out of an answer. TargetPath is
// set when the block's first line carried a file marker; the marker line
// itself is stripped from Code.
type Block struct {
	Language   string
	TargetPath string
	Code       string
}

// markerPattern matches a first-line file marker such as
//
//	// file: src/utils/helper.ts
//	# file: scripts/build.sh
//	<!-- file: index.html -->
//
// in the comment style of the block's language.
var markerPattern = regexp.MustCompile(`^\s*(?://|#|--|<!--|;)?\s*file:\s*(\S+?)\s*(?:-->)?\s*$`)

// Parse extracts every closed fenced code block from markdown text.
// An unterminated fence at the end of the text is ignored; a block only
// counts once its closing fence has arrived, which matters while an
// answer is still streaming.
func Parse(text string) []Block {
	var blocks []Block

	lines := strings.Split(text, "\n")
	inBlock := false
	var language string
	var body []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !inBlock {
			if strings.HasPrefix(trimmed, "```") {
				inBlock = true
				language = strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
				body = body[:0]
			}
			continue
		}
		if trimmed == "```" {
			blocks = append(blocks, newBlock(language, body))
			inBlock = false
			continue
		}
		body = append(body, line)
	}
	return blocks
}

// First returns the first block from the text, or nil when the text has
// no closed code block.
func First(text string) *Block {
	blocks := Parse(text)
	if len(blocks) == 0 {
		return nil
	}
	return &blocks[0]
}

func newBlock(language string, body []string) Block {
	block := Block{Language: language}
	if len(body) > 0 {
		if m := markerPattern.FindStringSubmatch(body[0]); m != nil {
			block.TargetPath = m[1]
			body = body[1:]
		}
	}
	block.Code = strings.Join(body, "\n")
	return block
}
