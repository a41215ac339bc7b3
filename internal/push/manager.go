package push

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/MrSnakeDoc/crate/internal/config"
	"github.com/MrSnakeDoc/crate/internal/core"
	"github.com/MrSnakeDoc/crate/internal/errs"
	"github.com/MrSnakeDoc/crate/internal/logger"
	"github.com/MrSnakeDoc/crate/internal/service"
	"github.com/MrSnakeDoc/crate/internal/utils"
)

type Pusher struct {
	*core.Base
}

func New(cfg *config.Config, storeURL string, client service.HTTPClient) (*Pusher, error) {
	base, err := core.NewBase(cfg, storeURL, client)
	if err != nil {
		return nil, err
	}
	return &Pusher{Base: base}, nil
}

// Execute uploads each local file under its base name. Every path is
// checked up front so a typo does not leave a half-pushed batch.
func (p *Pusher) Execute(ctx context.Context, paths []string, multipart bool) error {
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("cannot push %s: %w", path, err)
		}
		if !fi.Mode().IsRegular() {
			return errors.New(errs.Msg(errs.UploadNotRegular, path))
		}
		logger.Debug("push: %s (%s)", path, utils.HumanSize(fi.Size()))
	}

	upload := p.Client.Upload
	if multipart {
		upload = p.Client.UploadMultipart
	}

	action := core.TransferAction{Name: "Pushing", ActionVerb: "push"}
	return p.HandleTargets(ctx, action, paths, upload)
}
