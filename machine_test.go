package studio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineInfo(t *testing.T) {
	info := MachineInfo()
	require.NotNil(t, info)

	cpu, ok := info["cpu"].(int)
	require.True(t, ok)
	assert.Greater(t, cpu, 0)
}
