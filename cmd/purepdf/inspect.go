package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/JaimeStill/pure-pdf/internal/api"
	"github.com/JaimeStill/pure-pdf/internal/operations"
	"github.com/JaimeStill/pure-pdf/pkg/openapi"
	"github.com/spf13/cobra"
)

func (a *App) newInspectCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect FILE [FILE...]",
		Short: "Report the page count of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.readInputs(args)
			if err != nil {
				return err
			}

			infra, stop, err := a.startInfrastructure()
			if err != nil {
				return err
			}
			defer stop()

			infos := make([]operations.Info, 0, len(inputs))
			for _, in := range inputs {
				info, err := infra.Operations.Inspect(cmd.Context(), in)
				if err != nil {
					return fmt.Errorf("%s: %w", in.Name, err)
				}
				infos = append(infos, *info)
			}

			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tPAGES")
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%d\n", info.Name, info.PageCount)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func (a *App) newListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "operations",
		Short: "List available operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			descs := operations.Descriptors()

			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(descs)
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tOUTPUT\tSUMMARY")
			for _, d := range descs {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Name, d.Filename, d.Summary)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func (a *App) newSpecCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "spec",
		Short: "Print or write the HTTP API document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			spec := api.BuildSpec(cfg)
			if output != "" {
				return openapi.WriteJSON(spec, output)
			}

			data, err := openapi.MarshalJSON(spec)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, string(data))
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of standard output")
	return cmd
}
