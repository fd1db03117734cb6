package imagegen

// Mode selects the generation parameter preset
type Mode string

const (
	// ModePreview is the fast first pass shown while the user browses
	ModePreview Mode = "preview"
	// ModeUpscale re-renders a selected image at higher quality
	ModeUpscale Mode = "upscale"
	// ModeInitial is the default full-strength iteration preset
	ModeInitial Mode = "initial"
	// ModeMicro applies small refinements while preserving the image
	ModeMicro Mode = "micro"
	// ModeMacro applies large changes (style shifts, layout changes)
	ModeMacro Mode = "macro"
)

// Params are the tunables sent to the image backend
type Params struct {
	Steps    int
	Guidance float64
	Strength float64
	Size     int
}

const maxIterationDecay = 0.1

// ParamsFor returns the parameter preset for a generation mode. Micro
// edits lose strength as iterations accumulate so repeated refinements
// stop degrading the image.
func ParamsFor(mode Mode, iteration int) Params {
	switch mode {
	case ModePreview:
		return Params{Steps: 25, Guidance: 2.5, Strength: 0.6, Size: 1024}
	case ModeUpscale:
		return Params{Steps: 35, Guidance: 2.5, Size: 1536}
	}

	qualityAdjustment := 1.0 - float64(iteration)*0.1
	if qualityAdjustment < maxIterationDecay {
		qualityAdjustment = maxIterationDecay
	}

	switch mode {
	case ModeMicro:
		return Params{Steps: 18, Guidance: 2.5, Strength: 0.25 * qualityAdjustment, Size: 1024}
	case ModeMacro:
		return Params{Steps: 28, Guidance: 2.5, Strength: 0.75 * qualityAdjustment, Size: 1024}
	default:
		return Params{Steps: 25, Guidance: 2.5, Strength: 0.6, Size: 1024}
	}
}
