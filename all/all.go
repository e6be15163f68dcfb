// Package all imports all supported manifest formats.
//
// Import this package for its side effects to register every format:
//
//	import (
//		"github.com/git-pkgs/manifests"
//		_ "github.com/git-pkgs/manifests/all"
//	)
//
//	// Now all formats are available
//	formats := manifests.SupportedFormats()
//	// ["pkg-info", "pyproject"]
package all

import (
	_ "github.com/git-pkgs/manifests/internal/pkginfo"
	_ "github.com/git-pkgs/manifests/internal/pyproject"
)
