package imagegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsForPreview(t *testing.T) {
	params := ParamsFor(ModePreview, 0)

	assert.Equal(t, 25, params.Steps)
	assert.Equal(t, 2.5, params.Guidance)
	assert.Equal(t, 0.6, params.Strength)
	assert.Equal(t, 1024, params.Size)
}

func TestParamsForUpscale(t *testing.T) {
	params := ParamsFor(ModeUpscale, 0)

	assert.Equal(t, 35, params.Steps)
	assert.Equal(t, 1536, params.Size)
	assert.Zero(t, params.Strength)
}

func TestParamsForMicroDecaysWithIterations(t *testing.T) {
	first := ParamsFor(ModeMicro, 0)
	third := ParamsFor(ModeMicro, 3)

	assert.Equal(t, 18, first.Steps)
	assert.InDelta(t, 0.25, first.Strength, 0.0001)
	assert.InDelta(t, 0.25*0.7, third.Strength, 0.0001)
	assert.Less(t, third.Strength, first.Strength)
}

func TestParamsForMacro(t *testing.T) {
	params := ParamsFor(ModeMacro, 1)

	assert.Equal(t, 28, params.Steps)
	assert.InDelta(t, 0.75*0.9, params.Strength, 0.0001)
}

func TestParamsForDecayFloor(t *testing.T) {
	// 20 iterations would push the adjustment negative without the floor
	params := ParamsFor(ModeMicro, 20)

	assert.InDelta(t, 0.25*0.1, params.Strength, 0.0001)
}

func TestParamsForUnknownModeFallsBackToInitial(t *testing.T) {
	params := ParamsFor(Mode("unknown"), 0)

	assert.Equal(t, ParamsFor(ModeInitial, 0), params)
}
