package git

import (
	"testing"

	"github.com/arthur-debert/subboot/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		output  string
		want    string
		wantErr bool
	}{
		{"git version 2.39.1\n", "2.39.1", false},
		{"git version 2.39.3 (Apple Git-145)\n", "2.39.3", false},
		{"git version 2.41.0.windows.1", "2.41.0", false},
		{"git version 2.9", "2.9.0", false},
		{"hub version 2.14.2", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			v, err := ParseVersion(tt.output)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrGitVersion))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestCheckMinimum(t *testing.T) {
	v, err := ParseVersion("git version 2.20.1")
	require.NoError(t, err)

	assert.NoError(t, CheckMinimum(v, "2.13.0"))
	assert.NoError(t, CheckMinimum(v, "2.20.1"))
	assert.NoError(t, CheckMinimum(v, ""))

	err = CheckMinimum(v, "v2.30")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrGitVersion))

	assert.Error(t, CheckMinimum(v, "latest"))
}
