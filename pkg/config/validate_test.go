package config_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/subboot/pkg/config"
	"github.com/arthur-debert/subboot/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		deps      []types.Dependency
		wantError bool
		contains  string
	}{
		{
			name: "valid",
			deps: []types.Dependency{{
				Name: "widget",
				Actions: []types.LinkAction{
					{Type: types.ActionLinkFile, RawType: "link-file", Src: "include/widget.h", Dst: "vendor/widget.h"},
				},
			}},
		},
		{
			name: "unknown_type",
			deps: []types.Dependency{{
				Name:    "widget",
				Actions: []types.LinkAction{{Type: types.ActionUnknown, RawType: "bogus-type", Src: "a", Dst: "b"}},
			}},
			wantError: true,
			contains:  "bogus-type",
		},
		{
			name:      "missing_name",
			deps:      []types.Dependency{{}},
			wantError: true,
			contains:  "no name",
		},
		{
			name: "absolute_dst",
			deps: []types.Dependency{{
				Name:    "widget",
				Actions: []types.LinkAction{{Type: types.ActionLinkFile, Src: "a", Dst: "/etc/passwd"}},
			}},
			wantError: true,
			contains:  "must be relative",
		},
		{
			name: "escaping_src_is_a_warning",
			deps: []types.Dependency{{
				Name:    "widget",
				Actions: []types.LinkAction{{Type: types.ActionLinkFile, Src: "../other/a.h", Dst: "a.h"}},
			}},
			contains: "leaves its base directory",
		},
		{
			name:     "duplicate_is_a_warning",
			deps:     []types.Dependency{{Name: "widget"}, {Name: "widget"}},
			contains: "more than once",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := config.Validate(tt.deps)
			assert.Equal(t, tt.wantError, config.HasErrors(findings))

			if tt.contains == "" {
				assert.Empty(t, findings)
				return
			}

			var all []string
			for _, f := range findings {
				all = append(all, f.String())
			}
			assert.Contains(t, strings.Join(all, "\n"), tt.contains)
		})
	}
}

func TestValidate_UnknownTypeListsValidOptions(t *testing.T) {
	findings := config.Validate([]types.Dependency{{
		Name:    "widget",
		Actions: []types.LinkAction{{Type: types.ActionUnknown, RawType: "bogus-type", Src: "a", Dst: "b"}},
	}})

	msg := findings[0].String()
	assert.Contains(t, msg, "link-file")
	assert.Contains(t, msg, "link-include-dir")
}
