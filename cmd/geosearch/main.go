// Command geosearch resolves place names to coordinates from the terminal,
// an interactive map UI or an MCP server.
package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/geosearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/geosearch/internal/adapters/driven/providers"
	"github.com/custodia-labs/geosearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui"
	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
	"github.com/custodia-labs/geosearch/internal/core/ports/driving"
	"github.com/custodia-labs/geosearch/internal/core/services"
	"github.com/custodia-labs/geosearch/internal/logger"
)

// Set by the linker at release time.
var version = "dev"

// closers are released once the command returns.
var closers []io.Closer

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	err := cli.Execute()
	for _, c := range closers {
		if cerr := c.Close(); cerr != nil {
			logger.Warn("closing: %v", cerr)
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

func bootstrap(opts cli.Options) error {
	store, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return err
	}
	settings := services.NewSettingsService(store)
	registry := providers.DefaultRegistry()

	lookup := services.NewLookupService(func() (driven.ProviderConfig, driven.ResultTransport, io.Closer, error) {
		s, err := settings.Get()
		if err != nil {
			return driven.ProviderConfig{}, nil, nil, err
		}
		inst, err := registry.Build(*s)
		if err != nil {
			return driven.ProviderConfig{}, nil, nil, err
		}
		return inst.Provider, inst.Transport, inst, nil
	})

	closers = append(closers, lookup)

	cli.SetSettingsService(settings)
	cli.SetLookupService(lookup)
	cli.SetTUIConfig(&cli.TUIConfig{
		SettingsService: settings,
		NewControl:      controlFactory(registry),
		ConfigPath:      store.Path(),
		LogPath:         filepath.Join(filepath.Dir(store.Path()), "geosearch.log"),
	})

	logger.Debug("config loaded from %s", store.Path())
	return nil
}

// controlFactory builds a fresh control, with its own provider, each time
// the settings change.
func controlFactory(registry *providers.Registry) tui.ControlFactory {
	return func(s domain.Settings, env tui.ControlEnv) (driving.GeoSearch, io.Closer, error) {
		inst, err := registry.Build(s)
		if err != nil {
			return nil, nil, err
		}

		ctrl, err := services.NewGeoSearchControl(s.Control, services.ControlDeps{
			Provider:  inst.Provider,
			Transport: inst.Transport,
			Map:       env.Map,
			Presenter: env.Presenter,
			Scheduler: env.Scheduler,
		})
		if err != nil {
			_ = inst.Close()
			return nil, nil, err
		}

		ctx, cancel := context.WithCancel(context.Background())
		ctrl.WithContext(ctx)

		return ctrl, closerFunc(func() error {
			cancel()
			return inst.Close()
		}), nil
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
