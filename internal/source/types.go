// Package source loads grammar files: it strips a UTF-8 BOM, normalizes
// CRLF line endings, indexes lines and hashes the normalized content, and
// restores the original conventions when content is written back.
package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte   // normalized: no BOM, LF line endings
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte // sha256 of Content
	Flags   FileFlags
}
