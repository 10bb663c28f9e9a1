package dist

// Registration contents of a distribution: which package directories it
// includes, which data files ship with them, and which scripts get installed.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/distkit/distkit/pkg/archive"
	"github.com/pkg/errors"
)

// Manifest is the full registration record for a distribution: the resolved
// metadata plus everything the source distribution will contain.
type Manifest struct {
	Metadata
	// Package directories relative to the project root
	Packages []string
	// Data files matched per package (relative to the project root)
	PackageData map[string][]string
	// Installable scripts relative to the project root
	Scripts []string
}

// ScanOptions override the conventional registration contents. Empty fields
// fall back to the defaults derived from the distribution name: one package
// named after the importable module and one script at bin/<name>.
type ScanOptions struct {
	Packages []string
	DataGlob string
	Scripts  []string
}

// Scan assembles the manifest for a resolved distribution. Declared package
// directories must exist; scripts are declarations only and are checked when
// the distribution is staged.
func Scan(projectDir string, meta *Metadata, opts ScanOptions) (*Manifest, error) {
	man := &Manifest{Metadata: *meta}

	man.Packages = opts.Packages
	if len(man.Packages) == 0 {
		man.Packages = []string{ModuleName(meta.Name)}
	}
	for _, pkg := range man.Packages {
		info, err := os.Stat(filepath.Join(projectDir, pkg))
		if err != nil {
			return nil, errors.Wrap(err, "Couldn't find package "+pkg)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("package %s is not a directory", pkg)
		}
	}

	if opts.DataGlob != "" {
		man.PackageData = make(map[string][]string)
		for _, pkg := range man.Packages {
			matches, err := filepath.Glob(filepath.Join(projectDir, pkg, opts.DataGlob))
			if err != nil {
				return nil, errors.Wrap(err, "Bad data file pattern "+opts.DataGlob)
			}
			for _, match := range matches {
				rel, err := filepath.Rel(projectDir, match)
				if err != nil {
					return nil, err
				}
				man.PackageData[pkg] = append(man.PackageData[pkg], rel)
			}
		}
	}

	man.Scripts = opts.Scripts
	if len(man.Scripts) == 0 {
		man.Scripts = []string{filepath.Join("bin", meta.Name)}
	}

	return man, nil
}

// InstallScripts copies every script under a bin/ directory of an extracted
// distribution tree into binDir, preserving modes. Archives unpack as
// <name>-<version>/bin/... but a bare bin/ at the root is accepted too.
// Returns the installed paths.
func InstallScripts(root, binDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(root, "*", "bin", "*"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		if matches, err = filepath.Glob(filepath.Join(root, "bin", "*")); err != nil {
			return nil, err
		}
	}
	if len(matches) == 0 {
		return nil, errors.New("distribution contains no installable scripts")
	}

	if err := os.MkdirAll(binDir, 0775); err != nil {
		return nil, errors.Wrap(err, "Failed to create bin directory at "+binDir)
	}

	var installed []string
	for _, script := range matches {
		dst := filepath.Join(binDir, filepath.Base(script))
		if err := archive.CopyFile(script, dst); err != nil {
			return installed, errors.Wrap(err, "Failed to install script "+filepath.Base(script))
		}
		installed = append(installed, dst)
	}
	return installed, nil
}
