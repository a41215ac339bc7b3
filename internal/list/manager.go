package list

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/MrSnakeDoc/crate/internal/catalog"
	"github.com/MrSnakeDoc/crate/internal/config"
	"github.com/MrSnakeDoc/crate/internal/core"
	"github.com/MrSnakeDoc/crate/internal/logger"
	"github.com/MrSnakeDoc/crate/internal/printer"
	"github.com/MrSnakeDoc/crate/internal/service"
	"github.com/MrSnakeDoc/crate/internal/utils"
	"github.com/olekukonko/tablewriter"
)

const shortHashLen = 12

// row is a view model for rendering.
type row struct {
	Name    string
	Version string
	SHA256  string
	Stem    string // lowercased, sort key
}

type Lister struct {
	*core.Base
	Out io.Writer // defaults to the logger output
}

func New(cfg *config.Config, storeURL string, client service.HTTPClient) (*Lister, error) {
	base, err := core.NewBase(cfg, storeURL, client)
	if err != nil {
		return nil, err
	}
	return &Lister{Base: base}, nil
}

// Execute fetches the remote catalog and renders it.
// - latest=true  => one entry per package stem, the highest version
// - asJSON=true  => the entries as served, indented
func (l *Lister) Execute(ctx context.Context, asJSON, latest bool) error {
	entries, err := l.Client.FetchCatalogList(ctx)
	if err != nil {
		return fmt.Errorf("an error occurred while fetching the catalog: %w", err)
	}
	if latest {
		entries = catalog.Latest(entries)
	}

	out := l.Out
	if out == nil {
		out = logger.Out()
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		logger.Info("The store at %s has no artifacts", l.Client.BaseURL)
		return nil
	}

	p := printer.NewColorPrinter(logger.Colored())
	table := logger.CreateTableTo(out, []string{"Package", "Version", "SHA256"})

	rows := utils.Map(entries, func(e catalog.Entry) row {
		return row{
			Name:    e.PackageName,
			Version: e.Version,
			SHA256:  utils.ShortHash(e.SHA256, shortHashLen),
			Stem:    strings.ToLower(utils.PackageStem(e.PackageName)),
		}
	})

	slices.SortFunc(rows, func(a, b row) int {
		return cmp.Or(cmp.Compare(a.Stem, b.Stem), cmp.Compare(a.Name, b.Name))
	})

	for _, r := range rows {
		if err := renderRow(table, r.Name, prettyVersion(p, r.Version), r.SHA256); err != nil {
			return fmt.Errorf("an error occurred while appending to the table: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("an error occurred while rendering the table: %w", err)
	}

	return nil
}

func renderRow(table *tablewriter.Table, name, ver, sha string) error {
	return table.Append([]string{name, ver, sha})
}

// prettyVersion mutes the fallback version so unversioned artifacts stand out.
func prettyVersion(p *printer.ColorPrinter, v string) string {
	if v == utils.DefaultVersion {
		return p.Muted("%s", v)
	}
	return v
}
