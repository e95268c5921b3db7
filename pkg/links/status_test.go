package links_test

import (
	"os"
	"testing"

	"github.com/arthur-debert/subboot/pkg/links"
	"github.com/arthur-debert/subboot/pkg/testutil"
	"github.com/arthur-debert/subboot/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	p := testutil.NewProject(t).
		WithCheckout("widget", testutil.FileTree{
			"a.h": "a", "b.h": "b", "c.h": "c",
		}).
		WithFileTree(testutil.FileTree{
			"elsewhere.h": "other",
			"out":         testutil.FileTree{"conflict.h": "real file"},
		})

	require.NoError(t, os.Symlink(p.Path("external-libs", "widget", "a.h"), p.Path("out", "linked.h")))
	require.NoError(t, os.Symlink(p.Path("elsewhere.h"), p.Path("out", "foreign.h")))
	require.NoError(t, os.Symlink(p.Path("external-libs", "widget", "gone.h"), p.Path("out", "dangling.h")))
	require.NoError(t, os.Symlink("../external-libs/widget/c.h", p.Path("out", "relative.h")))

	dep := types.Dependency{Name: "widget", Actions: []types.LinkAction{
		{Type: types.ActionLinkFile, Src: "a.h", Dst: "out/linked.h"},
		{Type: types.ActionLinkFile, Src: "b.h", Dst: "out/foreign.h"},
		{Type: types.ActionLinkFile, Src: "gone.h", Dst: "out/dangling.h"},
		{Type: types.ActionLinkFile, Src: "b.h", Dst: "out/missing.h"},
		{Type: types.ActionLinkFile, Src: "b.h", Dst: "out/conflict.h"},
		{Type: types.ActionLinkFile, Src: "c.h", Dst: "out/relative.h"},
		{Type: types.ActionUnknown, RawType: "bogus-type", Src: "b.h", Dst: "out/bogus.h"},
	}}

	before := p.Snapshot()
	var states []links.State
	for _, st := range newManager(p, nil).Inspect(dep) {
		states = append(states, st.State)
	}

	assert.Equal(t, []links.State{
		links.StateLinked,
		links.StateForeign,
		links.StateDangling,
		links.StateMissing,
		links.StateConflict,
		links.StateLinked,
		links.StateInvalid,
	}, states)
	assert.Equal(t, before, p.Snapshot())
}
