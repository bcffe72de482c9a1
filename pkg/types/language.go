package types

// languageByExtension maps file extensions to editor language identifiers.
var languageByExtension = map[string]string{
	"go":    "go",
	"py":    "python",
	"js":    "javascript",
	"jsx":   "javascript",
	"ts":    "typescript",
	"tsx":   "typescript",
	"rb":    "ruby",
	"rs":    "rust",
	"java":  "java",
	"kt":    "kotlin",
	"c":     "c",
	"h":     "c",
	"cpp":   "cpp",
	"cc":    "cpp",
	"hpp":   "cpp",
	"cs":    "csharp",
	"php":   "php",
	"swift": "swift",
	"md":    "markdown",
	"json":  "json",
	"yaml":  "yaml",
	"yml":   "yaml",
	"toml":  "toml",
	"xml":   "xml",
	"html":  "html",
	"css":   "css",
	"scss":  "scss",
	"sh":    "shell",
	"bash":  "shell",
	"sql":   "sql",
}

// LanguageForPath derives an editor language identifier from a file path's
// extension, defaulting to plaintext.
func LanguageForPath(path string) string {
	if lang, ok := languageByExtension[ExtensionOf(path)]; ok {
		return lang
	}
	return "plaintext"
}
