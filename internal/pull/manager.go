package pull

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/MrSnakeDoc/crate/internal/catalog"
	"github.com/MrSnakeDoc/crate/internal/config"
	"github.com/MrSnakeDoc/crate/internal/core"
	"github.com/MrSnakeDoc/crate/internal/errs"
	"github.com/MrSnakeDoc/crate/internal/logger"
	"github.com/MrSnakeDoc/crate/internal/service"
	"github.com/MrSnakeDoc/crate/internal/store"
)

type Puller struct {
	*core.Base
}

func New(cfg *config.Config, storeURL string, client service.HTTPClient) (*Puller, error) {
	base, err := core.NewBase(cfg, storeURL, client)
	if err != nil {
		return nil, err
	}
	return &Puller{Base: base}, nil
}

// Execute downloads every named artifact into outDir. With verify set, the
// catalog is fetched first and each download is checked against its digest.
func (p *Puller) Execute(ctx context.Context, names []string, outDir string, verify bool) error {
	for _, name := range names {
		if !store.ValidName(name) {
			return fmt.Errorf("%q is not a valid artifact name", name)
		}
	}

	var known map[string]catalog.Entry
	if verify {
		var err error
		if known, err = p.Client.FetchCatalog(ctx); err != nil {
			return fmt.Errorf("failed to fetch catalog: %w", err)
		}
	}

	action := core.TransferAction{Name: "Pulling", ActionVerb: "pull"}
	return p.HandleTargets(ctx, action, names, func(ctx context.Context, name string) error {
		var sha string
		if verify {
			entry, ok := known[name]
			if !ok {
				logger.Warn("%s", errs.Msg(errs.ChecksumUnverified, name))
			}
			sha = entry.SHA256
		}

		dst := filepath.Join(outDir, name)
		if err := p.Client.Download(ctx, name, dst, sha); err != nil {
			return err
		}
		logger.Debug("pull: %s -> %s (sha256=%s)", name, dst, sha)
		return nil
	})
}
