package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/digbiz/insight-engine/internal/config"
	"github.com/digbiz/insight-engine/internal/deal"
	"github.com/digbiz/insight-engine/internal/market"
	"github.com/digbiz/insight-engine/internal/match"
	"github.com/digbiz/insight-engine/internal/model"
	"github.com/digbiz/insight-engine/internal/store"
)

// engineEnv bundles the three engines behind one construction path so every
// command scores with identical configuration.
type engineEnv struct {
	Matcher   *match.Engine
	Market    *market.Service
	Predictor *deal.Predictor
}

func initEngines(cfg *config.Config) (*engineEnv, error) {
	if err := match.ValidateConfig(cfg.Match); err != nil {
		return nil, err
	}

	tables := match.DefaultTables()
	if cfg.Match.TablesPath != "" {
		t, err := match.LoadTables(cfg.Match.TablesPath)
		if err != nil {
			return nil, err
		}
		tables = t
	}

	return &engineEnv{
		Matcher:   match.NewEngine(cfg.Match, tables),
		Market:    market.NewService(cfg.Market, nil, nil),
		Predictor: deal.NewPredictor(cfg.Deal),
	}, nil
}

func initStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store)
}

// loadProfileArg reads a profile either from an inline JSON flag or from the
// store by ID. Exactly one of the two must be given.
func loadProfileArg(ctx context.Context, inlineJSON, id string) (model.Profile, error) {
	if inlineJSON != "" {
		var p model.Profile
		if err := json.Unmarshal([]byte(inlineJSON), &p); err != nil {
			return model.Profile{}, eris.Wrap(err, "parse profile JSON")
		}
		return p, nil
	}
	if id == "" {
		return model.Profile{}, eris.New("either an inline profile or a profile ID is required")
	}

	st, err := initStore(ctx)
	if err != nil {
		return model.Profile{}, err
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return model.Profile{}, err
	}

	p, err := st.GetProfile(ctx, id)
	if err != nil {
		return model.Profile{}, err
	}
	if p == nil {
		return model.Profile{}, eris.Errorf("profile not found: %s", id)
	}
	return *p, nil
}

// printJSON writes indented JSON to stdout; command output is machine-readable.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
