package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
	"github.com/goliatone/go-adminview/pkg/render/template/gotemplate"
	"github.com/goliatone/go-adminview/pkg/renderers/table"
)

var errNoApp = errors.New("cli: application not initialised")

func appFor(cmd *cobra.Command) (*App, error) {
	app := fromContext(cmd.Context())
	if app == nil {
		return nil, errNoApp
	}
	return app, nil
}

func newModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List loaded entities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := appFor(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			store := app.Engine.Store()
			for _, entity := range app.Engine.Entities() {
				cfg, _ := store.Get(entity)
				fmt.Fprintf(out, "%s\t%s\t%s\n", entity, cfg.Plural, store.Source(entity))
			}
			return nil
		},
	}
}

type dataFlags struct {
	data    string
	query   string
	related string
}

func (d *dataFlags) bind(cmd *cobra.Command, withRelated bool) {
	cmd.Flags().StringVar(&d.data, "data", "", "JSON file with the record(s)")
	cmd.Flags().StringVar(&d.query, "query", "", "jq expression selecting the record(s) inside --data")
	if withRelated {
		cmd.Flags().StringVar(&d.related, "related", "", "JSON file mapping related keys to record lists")
	}
}

func newTableCmd(prompt Prompter) *cobra.Command {
	var (
		data dataFlags
		opts table.Options
	)
	cmd := &cobra.Command{
		Use:   "table [entity]",
		Short: "Render the list table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, entity, err := prepare(cmd, args, prompt)
			if err != nil {
				return err
			}
			var items []model.Item
			if data.data != "" {
				payload, err := readJSON(cmd.Context(), data.data, data.query)
				if err != nil {
					return err
				}
				if items, err = toItems(payload); err != nil {
					return err
				}
			}
			rc := app.Engine.NewContext(cmd.Context(), app.Request())
			html, err := app.Engine.RenderTable(rc, entity, items, opts)
			if err != nil {
				return err
			}
			return app.emit(cmd.OutOrStdout(), page(app, rc, entity, "table", html))
		},
	}
	data.bind(cmd, false)
	cmd.Flags().StringVar(&opts.OrderBy, "orderby", "", "column the table is sorted by")
	cmd.Flags().StringVar(&opts.Order, "order", "", "sort direction (ASC or DESC)")
	cmd.Flags().StringVar(&opts.BaseURL, "base-url", "", "URL sort links are built on")
	return cmd
}

func newDetailCmd(prompt Prompter) *cobra.Command {
	var (
		data        dataFlags
		contentOnly bool
	)
	cmd := &cobra.Command{
		Use:   "detail [entity]",
		Short: "Render the detail sidebar for one record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, entity, err := prepare(cmd, args, prompt)
			if err != nil {
				return err
			}
			if data.data == "" {
				return errors.New("cli: --data is required")
			}
			payload, err := readJSON(cmd.Context(), data.data, data.query)
			if err != nil {
				return err
			}
			item, err := toItem(payload)
			if err != nil {
				return err
			}
			var related model.RelatedData
			if data.related != "" {
				raw, err := readJSON(cmd.Context(), data.related, "")
				if err != nil {
					return err
				}
				if related, err = toRelated(raw); err != nil {
					return err
				}
			}

			rc := app.Engine.NewContext(cmd.Context(), app.Request())
			var html string
			if contentOnly {
				html, err = app.Engine.RenderDetailContent(rc, entity, item, related)
			} else {
				html, err = app.Engine.RenderDetail(rc, entity, item, related)
			}
			if err != nil {
				return err
			}
			return app.emit(cmd.OutOrStdout(), page(app, rc, entity, "detail", html))
		},
	}
	data.bind(cmd, true)
	cmd.Flags().BoolVar(&contentOnly, "content-only", false, "render the sections without the header")
	return cmd
}

func newFormCmd(prompt Prompter) *cobra.Command {
	var data dataFlags
	cmd := &cobra.Command{
		Use:   "form [entity]",
		Short: "Render the create form, or the edit form when --data is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, entity, err := prepare(cmd, args, prompt)
			if err != nil {
				return err
			}
			var item model.Item
			if data.data != "" {
				payload, err := readJSON(cmd.Context(), data.data, data.query)
				if err != nil {
					return err
				}
				if item, err = toItem(payload); err != nil {
					return err
				}
			}
			rc := app.Engine.NewContext(cmd.Context(), app.Request())
			html, err := app.Engine.RenderForm(rc, entity, item)
			if err != nil {
				return err
			}
			return app.emit(cmd.OutOrStdout(), page(app, rc, entity, "form", html))
		},
	}
	data.bind(cmd, false)
	return cmd
}

func prepare(cmd *cobra.Command, args []string, prompt Prompter) (*App, string, error) {
	app, err := appFor(cmd)
	if err != nil {
		return nil, "", err
	}
	entity, err := resolveEntity(args, app.Engine.Entities(), prompt)
	if err != nil {
		return nil, "", err
	}
	return app, entity, nil
}

// page titles tables with the plural label and single records with the
// singular one.
func page(app *App, rc *render.Context, entity, surface, content string) gotemplate.Page {
	title := entity
	if cfg, err := app.Engine.Module(entity); err == nil {
		title = cfg.Singular
		if surface == "table" {
			title = cfg.Plural
		}
	}
	return gotemplate.Page{
		Title:   title,
		Entity:  entity,
		Surface: surface,
		Locale:  rc.Locale,
		Content: content,
	}
}
