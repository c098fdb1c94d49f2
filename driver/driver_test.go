package driver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileAndRunToHalt(t *testing.T) {
	d := New()
	require.NoError(t, d.Compile("ld r0, 0x2A\nhalt"))
	require.NoError(t, d.Run())
	require.NoError(t, d.StepFullSpeed())

	assert.False(t, d.CPU.Running())
	assert.Equal(t, byte(0x2A), d.CPU.RegisterAt(0))
}

func TestStepManualAdvancesOneInstructionAtATime(t *testing.T) {
	d := New()
	require.NoError(t, d.Compile("ld r0, 0x01\nld r1, 0x02\nhalt"))
	require.NoError(t, d.Run())

	require.NoError(t, d.StepManual())
	assert.Equal(t, byte(0x01), d.CPU.RegisterAt(0))
	assert.Equal(t, byte(0), d.CPU.RegisterAt(1))

	require.NoError(t, d.StepManual())
	assert.Equal(t, byte(0x02), d.CPU.RegisterAt(1))

	require.NoError(t, d.StepManual())
	assert.False(t, d.CPU.Running())
}

func TestStepTimedFiresOncePerPeriod(t *testing.T) {
	d := New()
	require.NoError(t, d.Compile("ld r0, 0x01\nld r1, 0x02\nhalt"))
	require.NoError(t, d.Run())

	period := 100 * time.Millisecond

	ticked, err := d.StepTimed(40*time.Millisecond, period)
	require.NoError(t, err)
	assert.False(t, ticked)
	assert.Equal(t, byte(0), d.CPU.RegisterAt(0))

	ticked, err = d.StepTimed(70*time.Millisecond, period)
	require.NoError(t, err)
	assert.True(t, ticked)
	assert.Equal(t, byte(0x01), d.CPU.RegisterAt(0))
}

func TestCompileErrorDoesNotTouchCPU(t *testing.T) {
	d := New()
	err := d.Compile("jp r0, nowhere")
	require.Error(t, err)
	assert.Nil(t, d.ROM)
	assert.Equal(t, [256]byte{}, d.CPU.Memory())
}

func TestRunPropagatesInvalidOpcode(t *testing.T) {
	d := New()
	d.ROM = []byte{0x00, 0x00}
	require.NoError(t, d.Run())
	err := d.StepFullSpeed()
	require.Error(t, err)
}
