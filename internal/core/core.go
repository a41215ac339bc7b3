package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/crate/internal/config"
	"github.com/MrSnakeDoc/crate/internal/logger"
	"github.com/MrSnakeDoc/crate/internal/service"
	"github.com/MrSnakeDoc/crate/internal/utils"
	"github.com/schollz/progressbar/v3"
)

var pastTense = map[string]string{
	"pull": "pulled",
	"push": "pushed",
}

// TransferAction describes the operation applied to each target.
type TransferAction struct {
	Name       string // progress label, e.g. "Pulling"
	ActionVerb string // "pull" | "push"
}

// Base carries what every client-side command needs: the loaded config and a
// client bound to its store URL.
type Base struct {
	Config *config.Config
	Client *service.StoreClient

	// Jobs bounds concurrent transfers; <= 1 runs targets one by one.
	Jobs int
	// Progress receives a targets-completed bar when non-nil.
	Progress io.Writer
}

// NewBase validates storeURL and builds a client for it. An empty storeURL
// falls back to cfg.StoreURL.
func NewBase(cfg *config.Config, storeURL string, client service.HTTPClient) (*Base, error) {
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	if strings.TrimSpace(storeURL) == "" {
		storeURL = cfg.StoreURL
	}
	if _, err := utils.ParseStoreURL(storeURL); err != nil {
		return nil, err
	}
	if client == nil {
		client = service.NewHTTPClient(cfg.ClientTimeout)
	}

	return &Base{
		Config: cfg,
		Client: service.NewStoreClient(storeURL, client),
		Jobs:   1,
	}, nil
}

// HandleTargets applies fn to every target using up to b.Jobs workers. A
// failing target is logged and the others carry on; the joined failures are
// returned once all workers are done.
func (b *Base) HandleTargets(ctx context.Context, action TransferAction, targets []string, fn func(ctx context.Context, target string) error) error {
	workers := min(max(b.Jobs, 1), len(targets))
	bar := b.newBar(action, len(targets))

	var (
		mu     sync.Mutex
		failed []error
		wg     sync.WaitGroup
	)
	jobs := make(chan string, len(targets))

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for target := range jobs {
				if err := b.handleTarget(ctx, action, target, fn); err != nil {
					mu.Lock()
					failed = append(failed, err)
					mu.Unlock()
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}()
	}

	for _, target := range targets {
		jobs <- target
	}
	close(jobs)
	wg.Wait()

	if bar != nil {
		_ = bar.Finish()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Join(failed...)
}

func (b *Base) handleTarget(ctx context.Context, action TransferAction, target string, fn func(ctx context.Context, target string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Info("%s %s...", action.Name, target)
	if err := fn(ctx, target); err != nil {
		logger.LogError("%s: %v", target, err)
		return fmt.Errorf("failed to %s %s: %w", action.ActionVerb, target, err)
	}
	logger.Success("%s has been %s successfully!", target, pastTense[action.ActionVerb])
	return nil
}

func (b *Base) newBar(action TransferAction, total int) *progressbar.ProgressBar {
	if b.Progress == nil || total < 2 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.Progress),
		progressbar.OptionSetDescription(strings.ToLower(action.Name)),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
}
