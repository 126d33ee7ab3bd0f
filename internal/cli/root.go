package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-adminview/internal/logging"
	"github.com/goliatone/go-adminview/pkg/settings"
	"github.com/goliatone/go-adminview/pkg/config"
	"github.com/goliatone/go-adminview/pkg/orchestrator"
	"github.com/goliatone/go-adminview/pkg/render/template/gotemplate"
)

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	return newRootCmd(surveyPrompt)
}

func newRootCmd(prompt Prompter) *cobra.Command {
	var flags GlobalFlags

	cmd := &cobra.Command{
		Use:   "adminview",
		Short: "Render admin tables, detail sidebars and forms from module configs",
		Long: `adminview renders the HTML fragments of an admin interface from declarative
module configs (YAML or JSON) and JSON record files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipSetup(cmd) {
				return nil
			}
			if !flags.NoEnvFile {
				_ = godotenv.Load()
			}
			logging.SetupWriter(cmd.ErrOrStderr(), flags.Verbose)
			log.Debug().Str("command", cmd.Name()).Msg("command started")

			app, err := setupApp(cmd, flags)
			if err != nil {
				return err
			}
			cmd.SetContext(withApp(cmd.Context(), app))
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.Config, "config", "", "settings file (TOML)")
	pf.StringVar(&flags.Modules, "modules", "", "directory holding module configs")
	pf.StringVar(&flags.Templates, "templates", "", "directory holding special section templates")
	pf.StringVar(&flags.Messages, "messages", "", "directory holding message catalogs (one file per locale)")
	pf.StringVar(&flags.Locale, "locale", "", "locale for labels and messages")
	pf.StringVar(&flags.Theme, "theme", "", "theme name")
	pf.StringVar(&flags.Variant, "variant", "", "theme variant")
	pf.CountVarP(&flags.Verbose, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	pf.StringArrayVar(&flags.Grants, "grant", nil, "grant a permission as action:module (repeatable)")
	pf.BoolVar(&flags.AllowAll, "allow-all", false, "grant every permission")
	pf.BoolVar(&flags.NoEnvFile, "no-env-file", false, "do not read .env from the working directory")
	pf.BoolVar(&flags.Page, "page", false, "wrap output in a full HTML document")
	pf.StringVar(&flags.Layout, "layout", "", "page layout template file (implies --page)")
	pf.StringArrayVar(&flags.TemplateGlobals, "template-global", nil, "value visible to templates and layouts as key=value (repeatable)")

	cmd.AddCommand(newModulesCmd())
	cmd.AddCommand(newTableCmd(prompt))
	cmd.AddCommand(newDetailCmd(prompt))
	cmd.AddCommand(newFormCmd(prompt))
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, flags GlobalFlags) (*App, error) {
	ctx := cmd.Context()
	logger := logging.Component("cli")
	done := logging.LogOperationStart(logger, "setup")
	defer done()

	s, err := settings.Load(settings.Options{File: flags.Config})
	if err != nil {
		return nil, err
	}
	modulesDir := firstSet(flags.Modules, s.Paths.Modules)
	templatesDir := firstSet(flags.Templates, s.Paths.Templates)
	messagesDir := firstSet(flags.Messages, s.Paths.Messages)

	loader := config.NewLoader(
		config.WithFileSystem(os.DirFS(modulesDir)),
		config.WithLogger(logging.Component("config")),
	)
	store, err := loader.LoadDir(ctx, ".")
	if err != nil {
		return nil, fmt.Errorf("cli: load modules from %s: %w", modulesDir, err)
	}
	logger.Info().Int("modules", store.Len()).Str("dir", modulesDir).Msg("modules loaded")

	opts := []orchestrator.Option{
		orchestrator.WithSettings(s),
		orchestrator.WithStore(store),
		orchestrator.WithLogger(logging.Component("render")),
	}
	if messagesDir != "" {
		catalog, err := config.LoadCatalog(ctx, os.DirFS(messagesDir), ".", s.Render.FallbackLocale)
		if err != nil {
			return nil, fmt.Errorf("cli: load messages from %s: %w", messagesDir, err)
		}
		opts = append(opts, orchestrator.WithTranslator(catalog))
	}
	globals, err := parseGlobals(flags.TemplateGlobals)
	if err != nil {
		return nil, err
	}
	if templatesDir != "" {
		engine, err := gotemplate.New(gotemplate.WithBaseDir(templatesDir), gotemplate.WithGlobalData(globals))
		if err != nil {
			return nil, fmt.Errorf("cli: templates: %w", err)
		}
		opts = append(opts, orchestrator.WithTemplates(engine))
	}

	engine, err := orchestrator.New(opts...)
	if err != nil {
		return nil, err
	}
	app := &App{Flags: flags, Settings: s, Engine: engine, Logger: logger}
	if flags.Page || flags.Layout != "" {
		layout, err := gotemplate.NewLayout(gotemplate.WithLayoutFile(flags.Layout), gotemplate.WithLayoutGlobals(globals))
		if err != nil {
			return nil, fmt.Errorf("cli: layout: %w", err)
		}
		app.Layout = layout
	}
	return app, nil
}

// skipSetup reports commands that run without loading modules.
func skipSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

func firstSet(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
