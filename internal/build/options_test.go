package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.False(t, opts.Docker)
	assert.Equal(t, "v1.1.0", opts.Tag)
	assert.Equal(t, "elf", opts.OutputDirectory)
	assert.Empty(t, opts.Features)
	assert.NoError(t, opts.Validate())
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "defaults", opts: DefaultOptions()},
		{name: "empty output directory", opts: Options{Tag: DefaultTag}},
		{name: "docker without tag", opts: Options{Docker: true, OutputDirectory: "elf"}, wantErr: true},
		{name: "local without tag", opts: Options{OutputDirectory: "elf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrConfiguration)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestOptionsClone(t *testing.T) {
	features := []string{"a", "b"}
	opts := Options{Features: features}

	clone := opts.Clone()
	features[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, clone.Features)
}
