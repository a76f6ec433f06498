package commands

import (
	"github.com/colonyops/scenelens/internal/core/config"
	"github.com/colonyops/scenelens/internal/core/logging"
	"github.com/colonyops/scenelens/internal/core/provider"
)

// NewProvider builds the annotation provider selected by cfg: the fixture
// directory when one is configured, the HTTP API otherwise.
func NewProvider(cfg *config.Config) provider.Provider {
	if cfg.UsesFixtures() {
		return provider.NewFile(cfg.Provider.FixturesDir)
	}
	return provider.NewHTTP(cfg.Provider.URL, cfg.Provider.Timeout, logging.Component("provider"))
}
