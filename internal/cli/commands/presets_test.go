package commands

import (
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/sqldivider/internal/cli/output"
	"github.com/leapstack-labs/sqldivider/pkg/divider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, NewPresetsCommand(), "-f", "json")
	require.NoError(t, err)

	var infos []output.PresetInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &infos))
	require.Len(t, infos, len(divider.PresetNames()))

	defaults := 0
	for _, info := range infos {
		assert.NotEmpty(t, info.Pattern, info.Name)
		if info.Default {
			defaults++
			assert.Equal(t, divider.DefaultPreset, info.Name)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestPresets_Markdown(t *testing.T) {
	stdout, _, err := executeCommand(t, NewPresetsCommand())
	require.NoError(t, err)

	assert.Contains(t, stdout, "# Title presets")
	assert.Contains(t, stdout, "## create_table (default)")
	assert.Contains(t, stdout, "```regexp\n")
}
