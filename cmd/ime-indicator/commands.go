package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"ime-indicator/internal/app"
	"ime-indicator/internal/config"
	"ime-indicator/internal/hotkey"
	"ime-indicator/internal/i18n"
	"ime-indicator/internal/icon"
	"ime-indicator/internal/layout"
	"ime-indicator/internal/logging"
)

type rootFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "ime-indicator",
		Short:         "Keyboard layout indicator for the system tray",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(true)
			if err != nil {
				return err
			}
			return runTray(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path (default: config.toml next to the binary)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newProbeCmd(flags),
		newRenderCmd(flags),
		newVersionCmd(),
	)
	return rootCmd
}

// load читает конфигурацию и настраивает журнал.
// withFile дублирует журнал в файл рядом с конфигурацией.
func (f *rootFlags) load(withFile bool) (*config.Config, error) {
	path := f.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		logging.Setup("info", os.Stderr, nil)
		log.Error().Err(err).Msg("Ошибка загрузки конфигурации")
		return nil, err
	}
	if f.logLevel != "" {
		cfg.SetLogLevel(f.logLevel)
	}

	var file *os.File
	if withFile && cfg.Path() != "" {
		file, err = logging.OpenFile(filepath.Dir(cfg.Path()))
		if err != nil {
			// Без файла журнала приложение работает.
			fmt.Fprintln(os.Stderr, err)
		}
	}
	if file != nil {
		logging.Setup(cfg.LogLevel(), os.Stderr, file)
	} else {
		logging.Setup(cfg.LogLevel(), os.Stderr, nil)
	}

	i18n.SetLanguage(i18n.Language(cfg.UILanguage()))
	return cfg, nil
}

func runTray(cfg *config.Config) error {
	log.Info().Str("version", Version).Str("config", cfg.Path()).Msg("IME Indicator запускается")

	var runErr error
	// Трей и горячие клавиши работают в главном потоке.
	hotkey.RunOnMainThread(func() {
		application, err := app.New(cfg, Version)
		if err != nil {
			log.Error().Err(err).Msg("Ошибка инициализации")
			runErr = err
			return
		}
		application.Run()
	})
	return runErr
}

func newProbeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Print the current keyboard layout language and theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(false)
			if err != nil {
				return err
			}
			probe := layout.NewSystemProbe(
				layout.WithThemeOverride(layout.ParseThemeOverride(cfg.Theme())),
				layout.WithNamer(layout.NewNamer(i18n.Tag())),
			)
			printProbe(cmd, probe)
			return nil
		},
	}
}

type languageProbe interface {
	CurrentLanguage() layout.Language
	CurrentThemeIsDark() bool
}

func printProbe(cmd *cobra.Command, p languageProbe) {
	lang := p.CurrentLanguage()
	theme := "light"
	if p.CurrentThemeIsDark() {
		theme = "dark"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "code:    %s\n", lang.Code)
	fmt.Fprintf(out, "name:    %s\n", lang.DisplayName)
	fmt.Fprintf(out, "tooltip: %s\n", i18n.Tf("tooltip_keyboard", lang.DisplayName))
	fmt.Fprintf(out, "theme:   %s\n", theme)
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	var (
		outDir string
		theme  string
	)

	cmd := &cobra.Command{
		Use:   "render CODE...",
		Short: "Render language glyphs to PNG files",
		Example: `  ime-indicator render EN RU DE
  ime-indicator render --theme light --out icons JA`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(false)
			if err != nil {
				return err
			}
			themes, err := renderThemes(theme)
			if err != nil {
				return err
			}
			renderer, err := app.NewRenderer(cfg)
			if err != nil {
				return err
			}
			return renderGlyphs(cmd, renderer, outDir, args, themes)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
	cmd.Flags().StringVar(&theme, "theme", "both", "Theme: dark, light or both")
	return cmd
}

func renderThemes(theme string) ([]bool, error) {
	switch strings.ToLower(theme) {
	case "dark":
		return []bool{true}, nil
	case "light":
		return []bool{false}, nil
	case "both", "":
		return []bool{true, false}, nil
	default:
		return nil, fmt.Errorf("unknown theme %q", theme)
	}
}

func renderGlyphs(cmd *cobra.Command, r icon.Renderer, dir string, codes []string, themes []bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	for _, c := range codes {
		code := layout.Code(strings.ToUpper(c))
		for _, dark := range themes {
			ic, err := r.Render(code, dark)
			if err != nil {
				return fmt.Errorf("render %s: %w", code, err)
			}

			suffix := "light"
			if dark {
				suffix = "dark"
			}
			path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", code, suffix))
			if err := writePNG(path, ic); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", path)
		}
	}
	return nil
}

func writePNG(path string, ic *icon.Icon) error {
	defer ic.Release()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, ic.Image); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ime-indicator %s\n", Version)
		},
	}
}
