package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps short or relative paths and shortens long
	// absolute ones to their basename.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of errors.
type PrettyOpts struct {
	Color    bool
	Context  int // lines shown around the failing line
	PathMode PathMode
	BaseDir  string // for PathModeRelative, cwd when empty
}
