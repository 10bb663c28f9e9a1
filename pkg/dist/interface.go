// Standard interfaces and datatypes for the distkit project.
// Terms:
//   "distribution" : A named, versioned source tree prepared for installation
//   "builder" : A specific archive format that can package and install a staged distribution
package dist

import (
	"github.com/sirupsen/logrus"
)

// Logger is the logging surface handed to builders and the manager. Any logrus
// logger or entry satisfies it.
type Logger = logrus.FieldLogger

// A builder turns a staged distribution directory into an installable archive.
// The archive location is deterministically derived from the staging path so
// that commands can find it again without extra state.
type Builder interface {
	// Package up the staged distribution but don't install it anywhere.
	// stageDir may be assumed to be a unique path for this distribution.
	// Returns: path to the newly created archive
	Package(stageDir string) (pkgPath string, rerr error)

	// Install a previously built archive: extract it and place its bin/
	// scripts into binDir. It is assumed that Package() has already been
	// called for this distribution.
	Install(pkgPath string, binDir string) error

	// Users must call Destroy on any created builders to perform cleanup.
	Destroy()
}
