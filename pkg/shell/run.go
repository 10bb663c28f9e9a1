package shell

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	Shell = "/bin/bash"
	Exec  = "-c"
)

// Run executes exe with args, capturing stdout and stderr separately. A
// nonzero exit status is returned as the error.
func Run(exe string, args ...string) ([]byte, []byte, error) {

	log.Debugf("exec %s %v", exe, args)

	cmd := exec.Command(exe, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// RunSimple is Run for commands where anything on stderr means failure.
func RunSimple(exe string, args ...string) (string, error) {

	stdout, stderr, err := Run(exe, args...)
	if err != nil {
		return "", err
	}

	if len(stderr) > 0 {
		return "", errors.New(string(stderr))
	}

	return string(stdout), nil
}

// Output runs exe and returns its whitespace-trimmed stdout. Unlike RunSimple,
// stderr chatter is tolerated as long as the command exits zero; on failure
// the stderr text is folded into the error.
func Output(exe string, args ...string) (string, error) {

	stdout, stderr, err := Run(exe, args...)
	if err != nil {
		if len(stderr) > 0 {
			return "", errors.New(err.Error() + ": " + strings.TrimSpace(string(stderr)))
		}
		return "", err
	}

	return strings.TrimSpace(string(stdout)), nil
}
