package shell

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestChprompt(t *testing.T) {
	sh, out, _ := newTestShell(t)

	execute(t, sh, "chprompt foo")
	assert.Equal(t, "foo> ", sh.Prompt())

	execute(t, sh, "chprompt")
	assert.Equal(t, "smash> ", sh.Prompt())
	assert.Empty(t, out.String())
}

func TestShowPid(t *testing.T) {
	sh, out, _ := newTestShell(t)

	cmd := sh.Parse("showpid")
	require.NoError(t, sh.run(context.Background(), cmd))
	assert.Equal(t, fmt.Sprintf("smash pid is %d\n", os.Getpid()), out.String())
	assert.Equal(t, os.Getpid(), cmd.PID())
}

func TestChangeDirectory(t *testing.T) {
	start, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	target, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	chdir(t, start)

	sh, out, errOut := newTestShell(t)

	execute(t, sh, "cd -")
	assert.Equal(t, "smash error: cd: OLDPWD not set\n", errOut.String())
	errOut.Reset()

	execute(t, sh, "cd", "pwd")
	assert.Equal(t, start+"\n", out.String())
	out.Reset()

	execute(t, sh, "cd "+target, "pwd")
	assert.Equal(t, target+"\n", out.String())
	out.Reset()

	execute(t, sh, "cd -", "pwd")
	assert.Equal(t, start+"\n", out.String())
	out.Reset()

	execute(t, sh, "cd -", "pwd")
	assert.Equal(t, target+"\n", out.String())

	execute(t, sh, "cd a b")
	assert.Equal(t, "smash error: cd: too many arguments\n", errOut.String())
	errOut.Reset()

	execute(t, sh, "cd "+filepath.Join(target, "missing"))
	assert.Contains(t, errOut.String(), "smash error: cd: chdir failed:")
}

func TestAlias(t *testing.T) {
	sh, out, errOut := newTestShell(t)

	execute(t, sh,
		"alias ll=ls -la",
		"alias g='grep -n'",
		"alias count_lines=wc -l",
		"alias",
	)
	assert.Empty(t, errOut.String())

	g := goldie.New(t)
	g.Assert(t, "alias_list", out.Bytes())

	assert.Equal(t, "grep -n foo", sh.Parse("g foo").Line())
}

func TestAliasErrors(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{line: "alias cd=ls", want: "alias: cd already exists or is a reserved command"},
		{line: "alias ll=true", want: "alias: ll already exists or is a reserved command"},
		{line: "alias bad-name=ls", want: "alias: invalid alias format"},
		{line: "alias noequals", want: "alias: invalid alias format"},
		{line: "alias =ls", want: "alias: invalid alias format"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			sh, _, errOut := newTestShell(t)
			execute(t, sh, "alias ll=ls", tt.line)
			assert.Equal(t, "smash error: "+tt.want+"\n", errOut.String())
		})
	}
}

func TestUnalias(t *testing.T) {
	sh, out, errOut := newTestShell(t)

	execute(t, sh, "alias a=ls", "alias b=ls", "unalias a b", "alias")
	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())

	execute(t, sh, "unalias")
	assert.Equal(t, "smash error: unalias: not enough arguments\n", errOut.String())
	errOut.Reset()

	execute(t, sh, "unalias nope")
	assert.Equal(t, "smash error: unalias: nope alias does not exist\n", errOut.String())
}

func TestUnsetenv(t *testing.T) {
	t.Setenv("SMASH_TEST_ONE", "1")
	t.Setenv("SMASH_TEST_TWO", "2")
	sh, _, errOut := newTestShell(t)

	execute(t, sh, "unsetenv SMASH_TEST_ONE SMASH_TEST_TWO")
	_, ok := os.LookupEnv("SMASH_TEST_ONE")
	assert.False(t, ok)
	_, ok = os.LookupEnv("SMASH_TEST_TWO")
	assert.False(t, ok)
	assert.Empty(t, errOut.String())

	execute(t, sh, "unsetenv")
	assert.Equal(t, "smash error: unsetenv: not enough arguments\n", errOut.String())
	errOut.Reset()

	execute(t, sh, "unsetenv SMASH_TEST_ONE")
	assert.Equal(t, "smash error: unsetenv: SMASH_TEST_ONE does not exist\n", errOut.String())
}
