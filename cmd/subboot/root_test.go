package subboot

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/arthur-debert/subboot/pkg/errors"
	"github.com/arthur-debert/subboot/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgetManifest = `
- name: widget
  pre-install:
    - echo configuring
  pre-remove:
    - echo cleaning
  actions:
    - type: link-file
      src: include/widget.h
      dst: vendor/widget.h
`

type harness struct {
	app    *App
	out    *bytes.Buffer
	errOut *bytes.Buffer
	exec   *testutil.RecordingExecutor
}

// gitResponder scripts git and lets every hook succeed silently
func gitResponder(name string, args []string) testutil.Response {
	if name == "git" && len(args) == 1 && args[0] == "--version" {
		return testutil.Response{Output: "git version 2.39.1\n"}
	}
	return testutil.Response{}
}

func newHarness(t *testing.T, p *testutil.Project, input string) *harness {
	t.Helper()
	h := &harness{
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		exec:   &testutil.RecordingExecutor{Respond: gitResponder},
	}
	h.app = &App{
		In:       strings.NewReader(input),
		Out:      h.out,
		Err:      h.errOut,
		Dir:      p.Root,
		Executor: h.exec,
		Getenv:   func(string) string { return "" },
	}
	t.Cleanup(func() { _ = h.app.Close() })
	return h
}

func (h *harness) run(args ...string) error {
	return h.app.Execute(context.Background(), append([]string{"--log-file", "-"}, args...))
}

func widgetProject(t *testing.T) *testutil.Project {
	p := testutil.NewProject(t).
		WithManifest(widgetManifest).
		WithCheckout("widget", testutil.FileTree{
			"include": testutil.FileTree{"widget.h": "int widget(void);\n"},
		})
	return p
}

func TestRoot_DeclinedConfirmation(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		input string
		want  string
	}{
		{"empty answer", nil, "\n", MsgAbortBootstrap},
		{"no", nil, "n\n", MsgAbortBootstrap},
		{"uppercase Y", nil, "Y\n", MsgAbortBootstrap},
		{"yes spelled out", nil, "yes\n", MsgAbortBootstrap},
		{"end of input", nil, "", MsgAbortBootstrap},
		{"clean", []string{"-c"}, "n\n", MsgAbortClean},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := widgetProject(t)
			before := p.Snapshot()
			h := newHarness(t, p, tt.input)

			err := h.run(tt.args...)
			require.NoError(t, err)
			assert.Equal(t, 0, ExitCode(err))
			assert.Contains(t, h.errOut.String(), tt.want)
			assert.Contains(t, h.out.String(), "(y/[n])")
			assert.Empty(t, h.exec.Calls(), "nothing may run before confirmation")
			assert.Equal(t, before, p.Snapshot())
		})
	}
}

func TestRoot_BootstrapThenClean(t *testing.T) {
	p := widgetProject(t)

	h := newHarness(t, p, "y\n")
	require.NoError(t, h.run())
	p.AssertSymlink("vendor/widget.h", "external-libs/widget/include/widget.h")
	assert.Contains(t, h.out.String(), "Proceed with project bootstrapping?")
	assert.Contains(t, h.out.String(), "1 linked")
	assert.Contains(t, h.exec.Lines(), "git --version")
	assert.Contains(t, h.exec.Lines(), "/bin/sh -c echo configuring")

	h = newHarness(t, p, "y\n")
	require.NoError(t, h.run("-c", "-s"))
	p.AssertNotExists("vendor/widget.h")
	assert.Contains(t, h.out.String(), "Proceed with project cleanup?")
	assert.Contains(t, h.out.String(), "1 unlinked")
	assert.Empty(t, h.exec.Calls(), "clean neither touches git nor runs skipped hooks")
}

func TestRoot_DryRunSkipsPromptAndChanges(t *testing.T) {
	p := widgetProject(t)
	before := p.Snapshot()
	h := newHarness(t, p, "")

	require.NoError(t, h.run("--dry-run"))
	assert.NotContains(t, h.out.String(), "(y/[n])")
	assert.Contains(t, h.out.String(), "(dry run)")
	assert.Equal(t, []string{"git --version"}, h.exec.Lines(), "only read-only git commands run")
	assert.Equal(t, before, p.Snapshot())
}

func TestRoot_OnlyUnknownDependency(t *testing.T) {
	p := widgetProject(t)
	h := newHarness(t, p, "y\n")

	require.NoError(t, h.run("-o", "nope"))
	assert.Contains(t, h.out.String(), MsgNoDependencies)
	p.AssertNotExists("vendor/widget.h")
}

func TestRoot_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--bogus"}},
		{"unknown shorthand", []string{"-x"}},
		{"positional argument", []string{"extra"}},
		{"only without value", []string{"-o"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := widgetProject(t)
			h := newHarness(t, p, "y\n")

			err := h.run(tt.args...)
			require.Error(t, err)
			assert.Equal(t, 1, ExitCode(err))
			p.AssertNotExists("vendor/widget.h")
		})
	}
}

func TestRoot_Help(t *testing.T) {
	p := widgetProject(t)
	h := newHarness(t, p, "")

	err := h.run("-h")
	require.NoError(t, err)
	assert.Equal(t, 0, ExitCode(err))
	for _, flag := range []string{"--clean", "--skip-pre", "--only"} {
		assert.Contains(t, h.out.String(), flag)
	}
	assert.Empty(t, h.exec.Calls())
}

func TestRoot_ManifestErrors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		p := testutil.NewProject(t)
		h := newHarness(t, p, "y\n")

		err := h.run()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
		assert.Equal(t, 1, ExitCode(err))
	})

	t.Run("unparseable", func(t *testing.T) {
		p := testutil.NewProject(t).WithManifest("- name: [unclosed\n")
		h := newHarness(t, p, "y\n")

		err := h.run()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
		assert.Equal(t, 1, ExitCode(err))
	})

	t.Run("config flag", func(t *testing.T) {
		p := widgetProject(t).WithFileTree(testutil.FileTree{"deps.yml": "[]\n"})
		h := newHarness(t, p, "y\n")

		require.NoError(t, h.run("--config", "deps.yml"))
		assert.Contains(t, h.out.String(), MsgNoDependencies)
	})
}

func TestRoot_GitVersionFailureExitsOne(t *testing.T) {
	p := widgetProject(t)
	h := newHarness(t, p, "y\n")
	h.exec.Respond = func(name string, args []string) testutil.Response {
		if name == "git" && len(args) == 1 && args[0] == "--version" {
			return testutil.Response{Output: "git: broken install\n", ExitCode: 1}
		}
		return testutil.Response{}
	}

	for _, args := range [][]string{nil, {"--strict"}} {
		h.app.In = strings.NewReader("y\n")
		err := h.run(args...)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrGitVersion))
		assert.Equal(t, 1, ExitCode(err))
	}
	p.AssertNotExists("vendor/widget.h")
}

func TestRoot_Strict(t *testing.T) {
	manifest := `
- name: widget
  actions:
    - type: copy-file
      src: a
      dst: b
`
	p := testutil.NewProject(t).WithManifest(manifest).
		WithCheckout("widget", testutil.FileTree{"a": "x"})

	h := newHarness(t, p, "y\n")
	require.NoError(t, h.run(), "without --strict failures only log")
	assert.Contains(t, h.errOut.String(), "valid options are")

	h = newHarness(t, p, "y\n")
	err := h.run("--strict")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStrictFailures))
	assert.Equal(t, 2, ExitCode(err))
}

func TestValidateCmd(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p := widgetProject(t)
		h := newHarness(t, p, "")

		require.NoError(t, h.run("validate"))
		assert.Contains(t, h.out.String(), "manifest is valid")
	})

	t.Run("invalid", func(t *testing.T) {
		p := testutil.NewProject(t).WithManifest(`
- name: widget
  actions:
    - type: link-file
      src: /etc/passwd
      dst: ../outside
`)
		h := newHarness(t, p, "")

		err := h.run("validate")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		assert.Equal(t, 1, ExitCode(err))
		assert.Contains(t, h.out.String(), "must be relative")
	})
}

func TestStatusCmd(t *testing.T) {
	p := widgetProject(t)

	h := newHarness(t, p, "")
	require.NoError(t, h.run("status"))
	assert.Contains(t, h.out.String(), "missing")

	h = newHarness(t, p, "y\n")
	require.NoError(t, h.run("-s"))

	h = newHarness(t, p, "")
	require.NoError(t, h.run("status"))
	assert.Contains(t, h.out.String(), "linked")
	assert.Contains(t, h.out.String(), "vendor/widget.h")
}

func TestVersionCmd(t *testing.T) {
	h := newHarness(t, testutil.NewProject(t), "")

	require.NoError(t, h.run("version"))
	assert.Contains(t, h.out.String(), "subboot")
}

func TestHelpTopic(t *testing.T) {
	h := newHarness(t, testutil.NewProject(t), "")

	require.NoError(t, h.run("help", "manifest"))
	assert.Contains(t, h.out.String(), "link-include-dir")

	h = newHarness(t, testutil.NewProject(t), "")
	require.NoError(t, h.run("help", "topics"))
	assert.Contains(t, h.out.String(), "hooks")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 2, ExitCode(errors.New(errors.ErrStrictFailures, "x")))
	assert.Equal(t, 1, ExitCode(errors.New(errors.ErrRunFailed, "x")), "a failed child process is not a strict failure")
	assert.Equal(t, 1, ExitCode(errors.New(errors.ErrConfigParse, "x")))
	assert.Equal(t, 1, ExitCode(assert.AnError))
}

func TestStatusCmd_StaleLock(t *testing.T) {
	p := widgetProject(t)

	h := newHarness(t, p, "y\n")
	require.NoError(t, h.run("-s", "--write-lock"))
	assert.FileExists(t, p.Path("submodules.lock"))

	h = newHarness(t, p, "")
	require.NoError(t, h.run("status"))
	assert.NotContains(t, h.errOut.String(), "Manifest changed")

	p.WithManifest(widgetManifest + "- name: gadget\n")
	h = newHarness(t, p, "")
	require.NoError(t, h.run("status"))
	assert.Contains(t, h.errOut.String(), "Manifest changed")
}
