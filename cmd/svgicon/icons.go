package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EgorLis/svgicon/internal/app"
	"github.com/EgorLis/svgicon/internal/config"
	"github.com/EgorLis/svgicon/internal/icons"
	"github.com/EgorLis/svgicon/internal/infra/cache/memory"
	"github.com/EgorLis/svgicon/internal/infra/storage/local"
)

const (
	formatJSON   = "json"
	formatScript = "js"
	formatSprite = "sprite"
)

// icons разбирает спрайты с диска без БД и медиатеки
func iconsCmd() *cobra.Command {
	var (
		paths  []string
		tags   string
		format string
	)
	cmd := &cobra.Command{
		Use:   "icons [--path sprite.svg]...",
		Short: "Parse custom sprite files and print the icon list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return fmt.Errorf("failed load config: %w", err)
			}
			if len(paths) == 0 {
				paths = cfg.IconPaths
			}
			if tags == "" {
				tags = cfg.IconParseTags
			}

			logger, err := app.NewLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			lib := icons.NewLibrary(logger.Named("icons"), icons.Deps{
				Cache:     memory.New(),
				Discovery: &icons.Discoverer{CustomPaths: icons.StaticPaths(paths...)},
				Custom:    local.New("", "", logger.Named("custom")),
				ParseTags: tags,
			})

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			switch format {
			case formatJSON:
				entries, err := lib.ParseIcons(ctx)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case formatScript:
				js, err := lib.LocalizeScript(ctx)
				if err != nil {
					return err
				}
				_, err = out.Write(js)
				return err
			case formatSprite:
				return lib.RenderSprite(ctx, out)
			default:
				return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, formatJSON, formatScript, formatSprite)
			}
		},
	}
	cmd.Flags().StringSliceVarP(&paths, "path", "p", nil, "sprite file (repeatable, default ICON_PATHS)")
	cmd.Flags().StringVar(&tags, "tags", "", "tags kept while parsing (default ICON_PARSE_TAGS)")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output: json, js or sprite")
	return cmd
}
