package assemble

import (
	"path/filepath"
	"strings"
)

// languages maps file extensions to fenced code block tags.
var languages = map[string]string{
	".ts":     "ts",
	".tsx":    "tsx",
	".js":     "js",
	".jsx":    "jsx",
	".mjs":    "js",
	".cjs":    "js",
	".py":     "python",
	".rb":     "ruby",
	".rs":     "rust",
	".go":     "go",
	".java":   "java",
	".cs":     "csharp",
	".cpp":    "cpp",
	".cc":     "cpp",
	".cxx":    "cpp",
	".h":      "c",
	".hpp":    "cpp",
	".c":      "c",
	".md":     "md",
	".json":   "json",
	".yml":    "yaml",
	".yaml":   "yaml",
	".toml":   "toml",
	".xml":    "xml",
	".html":   "html",
	".css":    "css",
	".scss":   "scss",
	".sql":    "sql",
	".sh":     "bash",
	".bat":    "bat",
	".ps1":    "powershell",
	".ini":    "ini",
	".cfg":    "ini",
	".vue":    "vue",
	".svelte": "svelte",
	".php":    "php",
	".kt":     "kotlin",
	".swift":  "swift",
}

// Language returns the code block tag for path, or "" when the extension
// is unknown.
func Language(path string) string {
	return languages[strings.ToLower(filepath.Ext(path))]
}
