package shell_test

import (
	"testing"

	"github.com/distkit/distkit/pkg/shell"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {

	message := "hello, world"

	stdout, stderr, err := shell.Run(shell.Shell, shell.Exec, "/bin/echo -n "+message+" | tee /dev/stderr")
	assert.Nil(t, err)

	assert.Equal(t, message, string(stdout))
	assert.Equal(t, message, string(stderr))
}

func TestRunExitStatus(t *testing.T) {

	_, _, err := shell.Run(shell.Shell, shell.Exec, "exit 3")
	assert.NotNil(t, err)
}

func TestOutput(t *testing.T) {

	out, err := shell.Output(shell.Shell, shell.Exec, "echo '  1.2.3  '")
	assert.Nil(t, err)
	assert.Equal(t, "1.2.3", out)

	// stderr noise is fine as long as the command exits zero
	out, err = shell.Output(shell.Shell, shell.Exec, "echo warning >&2; echo 1.2.3")
	assert.Nil(t, err)
	assert.Equal(t, "1.2.3", out)

	_, err = shell.Output(shell.Shell, shell.Exec, "echo broken >&2; exit 1")
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "broken")
}
