package ui_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/subboot/pkg/bootstrap"
	"github.com/arthur-debert/subboot/pkg/config"
	"github.com/arthur-debert/subboot/pkg/errors"
	"github.com/arthur-debert/subboot/pkg/git"
	"github.com/arthur-debert/subboot/pkg/links"
	"github.com/arthur-debert/subboot/pkg/types"
	"github.com/arthur-debert/subboot/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *bootstrap.Report {
	return &bootstrap.Report{
		Mode: types.ModeBootstrap,
		Results: []links.Result{
			{
				Dependency: "widget",
				Action:     types.LinkAction{Type: types.ActionLinkFile, RawType: "link-file", Src: "include/widget.h", Dst: "vendor/widget.h"},
				Outcome:    links.OutcomeLinked,
			},
			{
				Dependency: "gadget",
				Action:     types.LinkAction{Type: types.ActionLinkFile, RawType: "link-file", Src: "g.h", Dst: "vendor/g.h"},
				Outcome:    links.OutcomeSkipped,
				Reason:     `Path "vendor/g.h" is already a link, will leave untouched`,
			},
		},
		Hooks: []bootstrap.HookFailure{{Dependency: "gizmo", Err: errors.New(errors.ErrHookFailed, "make failed")}},
	}
}

func TestTextRenderer_Summary(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, ui.NewRenderer(ui.FormatText, &out).RenderSummary(sampleReport()))

	text := out.String()
	assert.Contains(t, text, "linked   widget vendor/widget.h -> include/widget.h\n")
	assert.Contains(t, text, "already a link")
	assert.Contains(t, text, "hook failed for gizmo")
	assert.Contains(t, text, "bootstrap: 1 linked, 0 unlinked, 1 skipped, 0 failed, 1 hook failures\n")
}

func TestTerminalRenderer_Summary(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, ui.NewRenderer(ui.FormatTerminal, &out).RenderSummary(sampleReport()))

	text := out.String()
	assert.Contains(t, text, "Dependency")
	assert.Contains(t, text, "vendor/widget.h")
	assert.Contains(t, text, "gizmo")
}

func TestRenderStatus(t *testing.T) {
	rows := []ui.StatusRow{{
		Status: links.Status{
			Dependency: "widget",
			Action:     types.LinkAction{Type: types.ActionLinkFile, Dst: "vendor/widget.h"},
			State:      links.StateLinked,
			Target:     "/p/external-libs/widget/include/widget.h",
		},
		Submodule: git.StateOK,
	}}

	var out bytes.Buffer
	require.NoError(t, ui.NewRenderer(ui.FormatText, &out).RenderStatus(rows))
	assert.Equal(t, "linked    widget vendor/widget.h -> /p/external-libs/widget/include/widget.h [submodule ok]\n", out.String())

	out.Reset()
	require.NoError(t, ui.NewRenderer(ui.FormatTerminal, &out).RenderStatus(rows))
	assert.Contains(t, out.String(), "vendor/widget.h")
}

func TestRenderFindings(t *testing.T) {
	var out bytes.Buffer
	r := ui.NewRenderer(ui.FormatText, &out)

	require.NoError(t, r.RenderFindings(nil))
	assert.Equal(t, "manifest is valid\n", out.String())

	out.Reset()
	require.NoError(t, r.RenderFindings([]config.Finding{{Severity: config.SeverityError, Dependency: "widget", Message: "boom"}}))
	assert.Equal(t, "error: widget: boom\n", out.String())
}
