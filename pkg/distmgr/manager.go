package distmgr

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/distkit/distkit/pkg/dist"
	"github.com/distkit/distkit/pkg/targz"
	"github.com/distkit/distkit/pkg/zipdist"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DistManager owns the configuration, logger, and archive builder that every
// distkit command works through.
type DistManager struct {
	Builder dist.Builder
	Logger  dist.Logger
	Cfg     *viper.Viper
}

func NewManager(userCfg map[string]interface{}) (*DistManager, error) {
	var err error
	mgr := &DistManager{}

	if cfgPathRaw, ok := userCfg["config-file"]; ok {
		if cfgPath, ok := cfgPathRaw.(string); ok {
			err = mgr.initConfig(&cfgPath)
		} else {
			return nil, errors.New("option 'config-file' must be of type string")
		}
	} else {
		err = mgr.initConfig(nil)
	}
	if err != nil {
		return nil, err
	}

	if loggerRaw, ok := userCfg["logger"]; ok {
		if logger, ok := loggerRaw.(dist.Logger); ok {
			mgr.Logger = logger
		} else {
			return nil, errors.New("option 'logger' must satisfy dist.Logger")
		}
	} else {
		mgr.Logger = logrus.New()
	}

	if err := mgr.initBuilder(); err != nil {
		return nil, err
	}

	return mgr, nil
}

func (self *DistManager) Destroy() {
	self.Builder.Destroy()
}

// ResolveMetadata resolves the name and version for projectDir and fills in
// the static registration fields from configuration.
func (self *DistManager) ResolveMetadata(projectDir string) (*dist.Metadata, error) {
	meta, err := dist.Resolve(projectDir, dist.ResolveOptions{
		VersionScript: self.Cfg.GetString("metadata.versionScript"),
		InfoFile:      self.Cfg.GetString("metadata.infoFile"),
	})
	if err != nil {
		return nil, err
	}

	if meta.Description == "" {
		meta.Description = self.Cfg.GetString("metadata.description")
	}
	if meta.URL == "" {
		url := self.Cfg.GetString("metadata.url")
		// A %s in the configured URL stands for the distribution name
		if strings.Contains(url, "%s") {
			url = fmt.Sprintf(url, meta.Name)
		}
		meta.URL = url
	}
	if meta.Author == "" {
		meta.Author = self.Cfg.GetString("metadata.author")
	}
	if meta.AuthorEmail == "" {
		meta.AuthorEmail = self.Cfg.GetString("metadata.authorEmail")
	}
	if len(meta.Classifiers) == 0 {
		meta.Classifiers = self.Cfg.GetStringSlice("metadata.classifiers")
	}

	return meta, nil
}

// BuildManifest scans projectDir for the registration contents declared in
// configuration (or the conventional defaults).
func (self *DistManager) BuildManifest(projectDir string, meta *dist.Metadata) (*dist.Manifest, error) {
	return dist.Scan(projectDir, meta, dist.ScanOptions{
		Packages: self.Cfg.GetStringSlice("project.packages"),
		DataGlob: self.Cfg.GetString("project.dataGlob"),
		Scripts:  self.Cfg.GetStringSlice("project.scripts"),
	})
}

// Returns the staging path for a distribution (whether it exists or not)
func (self *DistManager) GetStagePath(name, version string) string {
	return filepath.Join(
		self.Cfg.GetString("buildDir"),
		"dist",
		name+"-"+version)
}

// CreateStaging assembles the staging directory the builder will archive:
// package directories, declared scripts under bin/, and a generated metadata
// file so the result resolves in source-distribution mode. Replaces any
// existing staging directory for this distribution.
func (self *DistManager) CreateStaging(projectDir string, man *dist.Manifest) (string, error) {
	stageDir := self.GetStagePath(man.Name, man.Version)

	// Shared dist build directory
	distDir := filepath.Join(self.Cfg.GetString("buildDir"), "dist")
	if err := os.MkdirAll(distDir, 0775); err != nil {
		return "", errors.Wrap(err, "Failed to create build directory at "+distDir)
	}

	// Always cleanup old staging directories first
	if err := os.RemoveAll(stageDir); err != nil {
		return "", errors.Wrap(err, "Failed to cleanup old staging directory "+stageDir)
	}
	if err := os.MkdirAll(stageDir, 0775); err != nil {
		return "", errors.Wrap(err, "Failed to create staging directory "+stageDir)
	}

	for _, pkg := range man.Packages {
		pkgPath := filepath.Join(projectDir, pkg)
		if _, err := os.Stat(pkgPath); err != nil {
			return "", errors.Wrap(err, "Couldn't find package: "+pkg)
		}
		cmd := exec.Command("cp", "-r", pkgPath, stageDir)
		if out, err := cmd.CombinedOutput(); err != nil {
			return "", errors.Wrapf(err, "Adding package returned error\n%s", out)
		}

		if len(man.PackageData) > 0 && len(man.PackageData[pkg]) == 0 {
			self.Logger.Warn("No data files matched in package: " + pkg)
		}
	}

	if len(man.Scripts) > 0 {
		binDir := filepath.Join(stageDir, "bin")
		if err := os.MkdirAll(binDir, 0775); err != nil {
			return "", errors.Wrap(err, "Failed to create staging bin directory")
		}
		for _, script := range man.Scripts {
			scriptPath := filepath.Join(projectDir, script)
			if _, err := os.Stat(scriptPath); err != nil {
				return "", errors.Wrap(err, "Couldn't find script: "+script)
			}
			cmd := exec.Command("cp", scriptPath, binDir)
			if out, err := cmd.CombinedOutput(); err != nil {
				return "", errors.Wrapf(err, "Adding script returned error\n%s", out)
			}
		}
	}

	infoPath := filepath.Join(stageDir, self.Cfg.GetString("metadata.infoFile"))
	infoFile, err := os.Create(infoPath)
	if err != nil {
		return "", errors.Wrap(err, "Failed to create "+infoPath)
	}
	defer infoFile.Close()
	if err := man.WriteInfo(infoFile); err != nil {
		return "", errors.Wrap(err, "Failed to write distribution metadata")
	}

	return stageDir, nil
}

// CleanDirectory removes everything matching the glob pattern.
func (self *DistManager) CleanDirectory(pattern string) error {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return errors.Wrap(err, "Bad clean pattern "+pattern)
	}
	for _, match := range matches {
		if err := os.RemoveAll(match); err != nil {
			return errors.Wrap(err, "Failed to remove "+match)
		}
	}
	return nil
}

func (self *DistManager) initConfig(cfgPath *string) error {
	// Setup defaults and globals here. These can be overwritten in the config,
	// but aren't included by default.

	// This is a private viper context just for distkit (so as not to conflict
	// with the importer's usage).
	self.Cfg = viper.New()

	// Dumping ground for all generated output. Users should be able to "rm -rf
	// build" and get a clean system.
	self.Cfg.SetDefault("buildDir", "./build")

	// Development marker and source-distribution metadata file names
	self.Cfg.SetDefault("metadata.versionScript", dist.DefaultVersionScript)
	self.Cfg.SetDefault("metadata.infoFile", dist.DefaultInfoFile)

	// One bundled data file pattern, matched inside each package directory
	self.Cfg.SetDefault("project.dataGlob", "version.json")

	self.Cfg.SetDefault("sdist.format", "targz")

	// Order of precedence: ENV, distkit.yaml, /usr/local/bin
	self.Cfg.SetDefault("install.binDir", "/usr/local/bin")
	self.Cfg.BindEnv("install.binDir", "DISTKIT_BIN_DIR")

	if cfgPath != nil {
		// Use config file from the flag.
		self.Cfg.SetConfigFile(*cfgPath)
	} else {
		// default search path is ./configs/distkit.* then $HOME/distkit.*
		self.Cfg.AddConfigPath("./configs")
		if home, err := homedir.Dir(); err == nil {
			self.Cfg.AddConfigPath(home)
		}
		self.Cfg.SetConfigName("distkit")
	}

	if err := self.Cfg.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgPath == nil {
			// Everything has a default, so running without a config is fine
			return nil
		}
		return errors.Wrap(err, "Failed to load config")
	}
	return nil
}

func (self *DistManager) initBuilder() error {
	format := self.Cfg.GetString("sdist.format")

	switch format {
	case "targz":
		self.Builder = targz.New(self.Logger.WithField("module", "builder.targz"), self.Cfg)
	case "zip":
		self.Builder = zipdist.New(self.Logger.WithField("module", "builder.zip"), self.Cfg)
	default:
		return errors.New("Unrecognized sdist format: " + format)
	}
	return nil
}
