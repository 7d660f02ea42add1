package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"worldgen-engine/internal/cache"
	"worldgen-engine/internal/events"
	"worldgen-engine/internal/store"
	"worldgen-engine/internal/worldgen/export"
	"worldgen-engine/internal/worldgen/params"
	"worldgen-engine/internal/worldgen/pipeline"
	"worldgen-engine/internal/worldgen/state"
)

// Generator wires the pipeline to the optional persistence, cache, and
// event-publishing collaborators. Any of Store, Cache, or Events may be
// nil, in which case that concern is skipped.
type Generator struct {
	Store  *store.Store
	Cache  *cache.Cache
	Events *events.Publisher
}

type generateRequest struct {
	Params *params.GenerationParams `json:"params"`
}

// ServeHTTP runs one full generation and returns its metadata record as
// JSON. If a websocket upgrade is requested via the Upgrade header, stage
// progress is streamed instead: one frame per completed stage, then a done
// frame. The metadata record is not sent in any websocket frame.
func (g *Generator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := params.Default()
	if r.Body != nil && r.ContentLength > 0 {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if req.Params != nil {
			p = *req.Params
		}
	}
	if err := p.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	logger := FromContext(ctx)

	if g.Cache != nil {
		if key, err := cache.Key(p); err == nil {
			if checksum, hit, err := g.Cache.GetChecksum(ctx, key); err == nil && hit {
				logger.Info().Str("checksum", checksum).Msg("generation cache hit")
			}
		}
	}

	start := time.Now()
	wld := state.New(p)
	runID := uuid.New()

	if progress, err := maybeUpgrade(w, r); err == nil && progress != nil {
		defer progress.Close()
		for {
			step := pipeline.RunNextStep(wld, p)
			if step == 0 {
				break
			}
			progress.ReportStage(step, wld.StepTimingsMs[step], wld.Diagnostics.Checksum)
		}
	} else {
		pipeline.RunAllSteps(wld, p)
	}

	ObserveGeneration(time.Since(start))
	meta := export.BuildMetadata(runID, wld, time.Now())

	g.finishAsync(ctx, meta, p)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(meta)
}

func (g *Generator) finishAsync(ctx context.Context, meta export.Metadata, p params.GenerationParams) {
	logger := FromContext(ctx)

	if g.Store != nil {
		if err := g.Store.SaveRun(ctx, meta); err != nil {
			logger.Error().Err(err).Msg("failed to persist generation run")
		}
	}
	if g.Cache != nil {
		if key, err := cache.Key(p); err == nil {
			if err := g.Cache.PutChecksum(ctx, key, meta.Checksum); err != nil {
				logger.Warn().Err(err).Msg("failed to cache generation checksum")
			}
		}
	}
	if g.Events != nil {
		if err := g.Events.PublishWorldGenerated(meta); err != nil {
			logger.Warn().Err(err).Msg("failed to publish world.generated event")
		}
	}
}

// maybeUpgrade upgrades the connection to a websocket only when the client
// asked for one; otherwise it returns (nil, nil) so the caller falls back
// to a plain synchronous response.
func maybeUpgrade(w http.ResponseWriter, r *http.Request) (*ProgressReporter, error) {
	if r.Header.Get("Upgrade") != "websocket" {
		return nil, nil
	}
	return UpgradeProgress(w, r)
}
