// Package pipeline drives the five generation stages in a fixed order,
// recording per-step timings and refreshing diagnostics after each step.
package pipeline

import (
	"time"

	"github.com/rs/zerolog/log"

	"worldgen-engine/internal/worldgen/basefields"
	"worldgen-engine/internal/worldgen/biomes"
	"worldgen-engine/internal/worldgen/diagnostics"
	"worldgen-engine/internal/worldgen/geology"
	"worldgen-engine/internal/worldgen/hydraulics"
	"worldgen-engine/internal/worldgen/hydrofinal"
	"worldgen-engine/internal/worldgen/params"
	"worldgen-engine/internal/worldgen/state"
)

// RunStep runs a single named stage against w, updates w.Params to p,
// records the stage's elapsed time, advances w.CurrentStep, and refreshes
// diagnostics.
func RunStep(w *state.World, step state.Step, p params.GenerationParams) {
	w.Params = p
	start := time.Now()

	switch step {
	case state.BaseFields:
		basefields.Run(w, p)
	case state.ErosionHydrology:
		hydraulics.Run(w, p)
	case state.Biomes:
		biomes.Run(w, p)
	case state.HydroFinalize:
		hydrofinal.Run(w, p)
	case state.Geology:
		geology.Run(w, p)
	default:
		return
	}

	elapsedMs := float64(time.Since(start)) / float64(time.Millisecond)
	w.CurrentStep = step
	w.StepTimingsMs[step] = elapsedMs
	diagnostics.Update(w)

	log.Debug().
		Str("stage", step.String()).
		Float64("elapsed_ms", elapsedMs).
		Str("checksum", w.Diagnostics.Checksum).
		Msg("worldgen stage complete")
}

// nextStep returns the stage that follows current in the fixed run order,
// or 0 ("none") once Geology has run.
func nextStep(current state.Step) state.Step {
	switch current {
	case 0:
		return state.BaseFields
	case state.BaseFields:
		return state.ErosionHydrology
	case state.ErosionHydrology:
		return state.Biomes
	case state.Biomes:
		return state.HydroFinalize
	case state.HydroFinalize:
		return state.Geology
	default:
		return 0
	}
}

// RunNextStep advances w by exactly one stage past w.CurrentStep and
// returns the stage that ran, or 0 if the pipeline was already complete.
func RunNextStep(w *state.World, p params.GenerationParams) state.Step {
	step := nextStep(w.CurrentStep)
	if step == 0 {
		return 0
	}
	RunStep(w, step, p)
	return step
}

// RunAllSteps runs all five stages in order, from BaseFields through
// Geology, regardless of w.CurrentStep.
func RunAllSteps(w *state.World, p params.GenerationParams) {
	for _, step := range state.AllSteps {
		RunStep(w, step, p)
	}
}
