// Zip source distributions. Implements the dist.Builder interface.
package zipdist

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/distkit/distkit/pkg/archive"
	"github.com/distkit/distkit/pkg/dist"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type zipBuilder struct {
	log dist.Logger
	cfg *viper.Viper
}

func New(logger dist.Logger, cfg *viper.Viper) dist.Builder {
	return &zipBuilder{logger, cfg}
}

func (self *zipBuilder) Package(stageDir string) (string, error) {
	pkgPath := filepath.Clean(stageDir) + ".zip"

	// Base off the parent so the archive unpacks as <name>-<version>/
	if err := archive.ZipDir(filepath.Dir(stageDir), stageDir, pkgPath); err != nil {
		return "", errors.Wrap(err, "Failed to archive "+stageDir)
	}
	return pkgPath, nil
}

func (self *zipBuilder) Install(pkgPath string, binDir string) error {
	buildDir := self.cfg.GetString("buildDir")
	if err := os.MkdirAll(buildDir, 0775); err != nil {
		return errors.Wrap(err, "Failed to create build directory at "+buildDir)
	}
	tmpDir, err := ioutil.TempDir(buildDir, "install")
	if err != nil {
		return errors.Wrap(err, "Failed to create extraction directory")
	}
	defer os.RemoveAll(tmpDir)

	if _, err := archive.Unzip(pkgPath, tmpDir); err != nil {
		return errors.Wrap(err, "Failed to extract "+pkgPath)
	}

	installed, err := dist.InstallScripts(tmpDir, binDir)
	if err != nil {
		return errors.Wrap(err, "Script installation failed")
	}
	for _, script := range installed {
		self.log.Info("Installed script: " + script)
	}
	return nil
}

func (self *zipBuilder) Destroy() {
	self.log.Debug("zip builder destroyed")
}
