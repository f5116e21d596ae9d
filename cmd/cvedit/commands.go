package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tendant/content-editor/pkg/contentedit"
	"github.com/tendant/content-editor/pkg/contentedit/config"
	"github.com/tendant/content-editor/pkg/contentedit/gallery"
	"github.com/tendant/content-editor/pkg/contentedit/navigation"
	"github.com/tendant/content-editor/pkg/contentedit/structured"
)

// NewClassifyCommand creates the classify command
func NewClassifyCommand() *cobra.Command {
	var hint string

	cmd := &cobra.Command{
		Use:   "classify [file]",
		Short: "Print the rendering strategy of a value",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := readValue(cmd, args)
			if err != nil {
				return err
			}
			h := contentedit.HintFor(hint)
			fmt.Fprintf(cmd.OutOrStdout(), "classification: %s\neditor: %s\n",
				contentedit.Classify(v, h), contentedit.EditorFor(v, h))
			return nil
		},
	}

	cmd.Flags().StringVar(&hint, "type", "", "Field type hint (navigation, gallery, ...)")

	return cmd
}

// NewFmtCommand creates the fmt command
func NewFmtCommand() *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Reformat a value as raw-mode text",
		Long:  `Reformat a value with two-space indentation, keeping object key order.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := readValue(cmd, args)
			if err != nil {
				return err
			}
			return writeValue(cmd, v, compact)
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "Write compact JSON")

	return cmd
}

// NewApplyCommand creates the apply command
func NewApplyCommand() *cobra.Command {
	var (
		actionJSON string
		unified    bool
		maxDepth   int
		noChildren bool
		compact    bool
	)

	cmd := &cobra.Command{
		Use:   "apply <structured|gallery|navigation> [file]",
		Short: "Apply one edit action to a value",
		Long: `Apply one edit action to a value and print the result.

The action is a JSON object, for example:
  cvedit apply structured data.json --action '{"op":"set_property","key":"title","text":"Hi"}'
  cvedit apply navigation menu.json --action '{"op":"move","path":[1],"delta":-1}'`,
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"structured", "gallery", "navigation"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var a contentedit.Action
			if err := json.Unmarshal([]byte(actionJSON), &a); err != nil {
				return fmt.Errorf("invalid --action: %w", err)
			}

			v, err := readValue(cmd, args[1:])
			if err != nil {
				return err
			}

			var res contentedit.Result
			switch args[0] {
			case "structured":
				var opts []structured.Option
				if unified {
					opts = append(opts, structured.WithUnifiedCoercion())
				}
				res, err = structured.Apply(v, a, opts...)
			case "gallery":
				res, err = gallery.Apply(v, a)
			case "navigation":
				res, err = navigation.Apply(v, a, navigation.Options{MaxDepth: maxDepth, AllowChildren: !noChildren})
			default:
				return fmt.Errorf("unknown editor: %s", args[0])
			}
			if err != nil {
				return err
			}
			if !res.Changed {
				slog.Info("Action made no change", "op", a.Op)
			}
			return writeValue(cmd, res.Value, compact)
		},
	}

	cmd.Flags().StringVarP(&actionJSON, "action", "a", "", "Action as JSON (required)")
	cmd.Flags().BoolVar(&unified, "unified-coercion", false, "Keep primitive types for every structured text edit")
	cmd.Flags().IntVar(&maxDepth, "max-depth", navigation.DefaultMaxDepth, "Maximum navigation depth")
	cmd.Flags().BoolVar(&noChildren, "no-children", false, "Disallow navigation children")
	cmd.Flags().BoolVar(&compact, "compact", false, "Write compact JSON")
	_ = cmd.MarkFlagRequired("action")

	return cmd
}

// NewPreviewCommand creates the preview command
func NewPreviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Print a navigation tree as an outline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := readValue(cmd, args)
			if err != nil {
				return err
			}
			nodes, err := navigation.Preview(v)
			if err != nil {
				return err
			}
			return navigation.RenderPreview(cmd.OutOrStdout(), nodes)
		},
	}

	return cmd
}

// NewTilesCommand creates the tiles command
func NewTilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tiles [file]",
		Short: "List the resolved tiles of a media gallery",
		Long: `List the resolved tiles of a media gallery.

Media URLs are resolved with the server configuration read from the
environment (MEDIA_URL_STRATEGY, MEDIA_CDN_BASE_URL, MEDIA_S3_* ...).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.WithEnv())
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			resolver, err := cfg.BuildResolver(ctx)
			if err != nil {
				return err
			}

			v, err := readValue(cmd, args)
			if err != nil {
				return err
			}
			if !v.IsNull() && !v.IsArray() {
				return contentedit.ErrNotArray
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INDEX\tKIND\tALT\tURL")
			for _, tile := range gallery.Tiles(v, resolver) {
				kind := "file"
				if tile.Image {
					kind = "image"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", tile.Index, kind, tile.Alt, tile.URL)
			}
			return tw.Flush()
		},
	}

	return cmd
}
