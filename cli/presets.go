package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ByLCY/newscard/layout"
)

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets [name]",
		Short: "List layout presets, or show one in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(a.cfg, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				return listPresets(out, reg)
			}
			cfg, err := reg.Get(args[0])
			if err != nil {
				return err
			}
			return describePreset(out, cfg)
		},
	}
}

func listPresets(w io.Writer, reg *layout.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCANVAS\tPADDING\tSPACING\tBODY LIMIT")
	for _, name := range reg.Names() {
		cfg, err := reg.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%d/%d\t%d\n",
			cfg.Name, cfg.Width, cfg.Height, cfg.Padding,
			cfg.Spacing.Normal, cfg.Spacing.Compressed, cfg.Limits[layout.RoleBody])
	}
	return tw.Flush()
}

func describePreset(w io.Writer, cfg layout.Config) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "preset\t%s\n", cfg.Name)
	fmt.Fprintf(tw, "canvas\t%dx%d\n", cfg.Width, cfg.Height)
	fmt.Fprintf(tw, "padding\t%d\n", cfg.Padding)
	fmt.Fprintf(tw, "line-spacing\t%g\n", cfg.LineSpacing)
	fmt.Fprintf(tw, "spacing\t%d / %d\n", cfg.Spacing.Normal, cfg.Spacing.Compressed)
	fmt.Fprintf(tw, "logo\tsize %d, reserved %d, offset %d\n", cfg.Logo.Size, cfg.Logo.Reserved, cfg.Logo.Offset)
	fmt.Fprintf(tw, "colors\t%s / %s / %s\n", cfg.Colors.Background.Hex(), cfg.Colors.Ink.Hex(), cfg.Colors.Rule.Hex())
	fmt.Fprintln(tw, "\t")
	fmt.Fprintln(tw, "ROLE\tFONT\tALIGN\tLIMIT\tUPPER\tBIND")
	for _, role := range layout.Roles {
		st := cfg.Styles[role]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%t\t%s\n",
			role, st.Font, st.Align, cfg.Limits[role], cfg.Upper[role], cfg.Bindings[role])
	}
	return tw.Flush()
}
