package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/treerec/slimids/internal/config"
	"github.com/treerec/slimids/internal/ctxlog"
	"github.com/treerec/slimids/internal/nodetable"
	"github.com/treerec/slimids/pkg/nodemap"
)

// ErrNodesFileRequired is returned when a command is missing its node table argument.
var ErrNodesFileRequired = errors.New("nodes file is required")

// resolvePath makes path absolute against the effective working directory.
func resolvePath(cfg *config.Config, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(cfg.EffectiveCwd, path)
}

// loadMap reads the node table at path and builds its map under policy.
func loadMap(ctx context.Context, cfg *config.Config, path string, policy nodemap.Policy) (nodemap.Map, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := ctxlog.FromContext(ctx).WithField("path", path)

	table, err := nodetable.Open(resolvePath(cfg, path), cfg.TableOptions())
	if err != nil {
		return nil, err
	}

	log.WithField("nodes", table.Len()).Debug("node table read")

	m, err := nodemap.BuildFrom(table, nodemap.WithDuplicates(policy))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if dropped := table.Len() - len(m); dropped > 0 {
		log.WithField("overwritten", dropped).Warn("duplicate slim ids resolved last-wins")
	}

	log.WithField("entries", len(m)).WithField("policy", policy.String()).Debug("map built")

	return m, nil
}
