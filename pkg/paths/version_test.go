// pkg/paths/version_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test mapping of declared versions to install folder names

package paths

import (
	"testing"

	"github.com/arthur-debert/nulink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		declared string
		want     string
	}{
		{"1.2.3", "1.2.3"},
		{"1.0", "1.0.0"},
		{"2", "2.0.0"},
		{"1.2.3.0", "1.2.3"},
		{"1.2.3.4", "1.2.3.4"},
		{"1.02.3.4", "1.2.3.4"},
		{"1.0.0-Beta", "1.0.0-beta"},
		{"1.0.0+sha.abc", "1.0.0"},
		{"[1.2.3]", "1.2.3"},
		{"[1.0,2.0)", "1.0.0"},
		{" 3.1.4 ", "3.1.4"},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			got, err := NormalizeVersion(tt.declared)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeVersion_Unmappable(t *testing.T) {
	for _, declared := range []string{"", "1.*", "(1.0,2.0)", "(,2.0]", "[,2.0]", "[1.0", "not-a-version"} {
		t.Run(declared, func(t *testing.T) {
			_, err := NormalizeVersion(declared)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		})
	}
}
