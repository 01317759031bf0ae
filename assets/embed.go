package assets

import (
	"embed"
	"io/fs"
)

//go:embed words.txt
var FS embed.FS

// Vocabulary opens the embedded default word list (one lowercase five-letter
// word per line). Callers close the returned file.
func Vocabulary() (fs.File, error) {
	return FS.Open("words.txt")
}
