// Package cli implements the adminview command line: it loads module configs
// from disk and renders table, detail and form fragments from JSON data.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-adminview/pkg/settings"
	"github.com/goliatone/go-adminview/pkg/orchestrator"
	"github.com/goliatone/go-adminview/pkg/render"
	"github.com/goliatone/go-adminview/pkg/render/template/gotemplate"
)

// GlobalFlags holds the persistent flags shared by every subcommand.
type GlobalFlags struct {
	Config    string
	Modules   string
	Templates string
	Messages  string
	Locale    string
	Theme     string
	Variant   string
	Verbose   int
	Grants    []string
	AllowAll  bool
	NoEnvFile bool

	Page            bool
	Layout          string
	TemplateGlobals []string
}

// App is the state built once per invocation.
type App struct {
	Flags    GlobalFlags
	Settings *settings.Settings
	Engine   *orchestrator.Engine
	Logger   zerolog.Logger

	// Layout wraps output into a full document; nil prints bare fragments.
	Layout *gotemplate.Layout
}

type appKey struct{}

func withApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

func fromContext(ctx context.Context) *App {
	if ctx == nil {
		return nil
	}
	app, _ := ctx.Value(appKey{}).(*App)
	return app
}

// Request builds the per-render request from the flags.
func (a *App) Request() orchestrator.Request {
	req := orchestrator.Request{
		Locale:       a.Flags.Locale,
		ThemeName:    a.Flags.Theme,
		ThemeVariant: a.Flags.Variant,
	}
	switch {
	case a.Flags.AllowAll:
		req.Gate = render.AllowAll
	case len(a.Flags.Grants) > 0:
		req.Gate = grantGate(a.Flags.Grants)
	}
	return req
}

// grantGate allows exactly the listed "action:module" pairs. A "*" module
// grants the action on every module.
func grantGate(grants []string) render.PermissionGate {
	allowed := make(map[string]struct{}, len(grants))
	for _, grant := range grants {
		for _, part := range strings.Split(grant, ",") {
			if part = strings.TrimSpace(part); part != "" {
				allowed[part] = struct{}{}
			}
		}
	}
	return func(action, module string) bool {
		if _, ok := allowed[action+":"+module]; ok {
			return true
		}
		_, ok := allowed[action+":*"]
		return ok
	}
}

// emit prints page.Content, wrapped by the layout when one is configured.
func (a *App) emit(out io.Writer, page gotemplate.Page) error {
	html := page.Content
	if a.Layout != nil {
		wrapped, err := a.Layout.Wrap(page)
		if err != nil {
			return err
		}
		html = wrapped
	}
	_, err := fmt.Fprintln(out, html)
	return err
}

// parseGlobals reads repeated "key=value" flags.
func parseGlobals(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("cli: template global %q must be key=value", pair)
		}
		out[key] = value
	}
	return out, nil
}
