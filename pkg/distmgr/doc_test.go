package distmgr

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

func Example() {
	mgrArgs := map[string]interface{}{}
	// ./distkit.yaml is a distkit configuration that's been setup for your project
	mgrArgs["config-file"] = "./distkit.yaml"

	// Adding a custom logger is optional
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	mgrArgs["logger"] = logger

	mgr, err := NewManager(mgrArgs)
	if err != nil {
		fmt.Printf("Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer mgr.Destroy()

	// "." points at the project to package (a development checkout with a
	// version script, or a prepared tree with a metadata file)
	meta, err := mgr.ResolveMetadata(".")
	if err != nil {
		fmt.Printf("Failed to resolve distribution: %v\n", err)
		os.Exit(1)
	}

	man, err := mgr.BuildManifest(".", meta)
	if err != nil {
		fmt.Printf("Failed to assemble manifest: %v\n", err)
		os.Exit(1)
	}

	// Stage the distribution contents under the build directory
	stageDir, err := mgr.CreateStaging(".", man)
	if err != nil {
		fmt.Printf("Staging failed: %v\n", err)
		os.Exit(1)
	}

	// Create the archive for the configured format
	pkgPath, err := mgr.Builder.Package(stageDir)
	if err != nil {
		fmt.Printf("Packaging failed: %v\n", err)
		os.Exit(1)
	}

	// Install the archive's scripts to the configured bin directory
	if err := mgr.Builder.Install(pkgPath, mgr.Cfg.GetString("install.binDir")); err != nil {
		fmt.Printf("Installation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(pkgPath)
}
