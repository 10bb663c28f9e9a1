package dist

// Name and version resolution for a distribution, plus the PKG-INFO metadata
// file format that ships inside prepared source distributions.

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/distkit/distkit/pkg/shell"
	"github.com/pkg/errors"
)

// Metadata holds everything a distribution registers about itself.
type Metadata struct {
	Name        string
	Version     string
	Description string
	URL         string
	Author      string
	AuthorEmail string
	Classifiers []string
}

// ResolveOptions control where Resolve looks inside the project directory.
// Zero values fall back to the conventional file names.
type ResolveOptions struct {
	// Executable whose presence marks a development checkout. Its trimmed
	// stdout is the version string.
	VersionScript string
	// Metadata file consulted in source-distribution mode.
	InfoFile string
}

const (
	DefaultVersionScript = "version.sh"
	DefaultInfoFile      = "PKG-INFO"
)

// ModuleName derives the importable module name from a distribution name by
// replacing every hyphen with an underscore (e.g. "foo-bar" -> "foo_bar").
func ModuleName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// Resolve determines the distribution name and version for projectDir.
//
// If the version script exists this is a development checkout: the script is
// run and its trimmed output becomes the version, while the name is the base
// name of the project directory. Otherwise the metadata file is scanned for
// its "Name:" and "Version:" fields. If neither file exists, or the fields
// never appear, Resolve fails rather than producing an empty distribution.
func Resolve(projectDir string, opts ResolveOptions) (*Metadata, error) {
	if opts.VersionScript == "" {
		opts.VersionScript = DefaultVersionScript
	}
	if opts.InfoFile == "" {
		opts.InfoFile = DefaultInfoFile
	}

	absDir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, errors.Wrap(err, "Couldn't resolve project directory "+projectDir)
	}

	scriptPath := filepath.Join(absDir, opts.VersionScript)
	if _, err := os.Stat(scriptPath); err == nil {
		// Development checkout
		version, err := shell.Output(scriptPath)
		if err != nil {
			return nil, errors.Wrap(err, "Version script failed")
		}
		if version == "" {
			return nil, errors.New("Version script produced no output")
		}
		return &Metadata{Name: filepath.Base(absDir), Version: version}, nil
	}

	infoPath := filepath.Join(absDir, opts.InfoFile)
	infoFile, err := os.Open(infoPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no %s or %s in %s: not a distribution",
				opts.VersionScript, opts.InfoFile, absDir)
		}
		return nil, errors.Wrap(err, "Failed to open metadata file")
	}
	defer infoFile.Close()

	meta, err := ParseInfo(infoFile)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to parse "+infoPath)
	}
	if meta.Name == "" {
		return nil, errors.New("No Name field in " + infoPath)
	}
	if meta.Version == "" {
		return nil, errors.New("No Version field in " + infoPath)
	}
	return meta, nil
}

// ParseInfo reads colon-delimited "Key: Value" metadata lines. The first
// occurrence of each scalar field wins; Classifier lines accumulate. Lines
// without a colon and unknown keys are ignored.
func ParseInfo(r io.Reader) (*Metadata, error) {
	meta := &Metadata{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parts := strings.SplitN(scanner.Text(), ":", 2)
		if len(parts) != 2 {
			continue
		}
		value := strings.TrimSpace(parts[1])

		switch parts[0] {
		case "Name":
			if meta.Name == "" {
				meta.Name = value
			}
		case "Version":
			if meta.Version == "" {
				meta.Version = value
			}
		case "Summary":
			if meta.Description == "" {
				meta.Description = value
			}
		case "Home-page":
			if meta.URL == "" {
				meta.URL = value
			}
		case "Author":
			if meta.Author == "" {
				meta.Author = value
			}
		case "Author-email":
			if meta.AuthorEmail == "" {
				meta.AuthorEmail = value
			}
		case "Classifier":
			meta.Classifiers = append(meta.Classifiers, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return meta, nil
}

// WriteInfo emits the metadata in the same "Key: Value" format that ParseInfo
// reads, so a built source distribution resolves without its version script.
func (m *Metadata) WriteInfo(w io.Writer) error {
	write := func(key, value string) error {
		if value == "" {
			return nil
		}
		_, err := fmt.Fprintf(w, "%s: %s\n", key, value)
		return err
	}

	if err := write("Metadata-Version", "1.1"); err != nil {
		return err
	}
	if err := write("Name", m.Name); err != nil {
		return err
	}
	if err := write("Version", m.Version); err != nil {
		return err
	}
	if err := write("Summary", m.Description); err != nil {
		return err
	}
	if err := write("Home-page", m.URL); err != nil {
		return err
	}
	if err := write("Author", m.Author); err != nil {
		return err
	}
	if err := write("Author-email", m.AuthorEmail); err != nil {
		return err
	}
	for _, c := range m.Classifiers {
		if err := write("Classifier", c); err != nil {
			return err
		}
	}
	return nil
}
