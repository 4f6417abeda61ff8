package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/JaimeStill/pure-pdf/internal/operations"
	"github.com/spf13/cobra"
)

// EnvPassword supplies the protect password when --password is not given.
const EnvPassword = "PUREPDF_PASSWORD"

type operationOptions struct {
	output    string
	pages     string
	angle     string
	password  string
	watermark string
}

func (a *App) newOperationCmds() []*cobra.Command {
	descs := operations.Descriptors()
	cmds := make([]*cobra.Command, 0, len(descs))
	for _, d := range descs {
		cmds = append(cmds, a.newOperationCmd(d))
	}
	return cmds
}

func (a *App) newOperationCmd(d operations.Descriptor) *cobra.Command {
	opts := &operationOptions{}

	use := string(d.Name) + " FILE"
	if d.MinInputs > 1 {
		use = string(d.Name) + " FILE FILE [FILE...]"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: d.Summary,
		Long: fmt.Sprintf(`%s.

The result is written to %s unless --output is given. Use "-" as a file
name to read standard input or as the output to write standard output.`, d.Summary, d.Filename),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOperation(cmd, d, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", d.Filename, "output file, or - for standard output")

	if slices.Contains(d.Parameters, "pages") {
		flags.StringVarP(&opts.pages, "pages", "p", "", "comma-separated page numbers or ranges, e.g. 3,1,2-4")
	}
	if slices.Contains(d.Parameters, "angle") {
		flags.StringVarP(&opts.angle, "angle", "a", "90", "clockwise rotation: 90, 180, or 270")
	}
	if slices.Contains(d.Parameters, "password") {
		flags.StringVar(&opts.password, "password", "", "password, at least 4 characters (default: $"+EnvPassword+")")
	}
	if slices.Contains(d.Parameters, "watermark") {
		flags.StringVarP(&opts.watermark, "watermark", "w", "", "watermark PDF whose first page is overlaid")
	}

	return cmd
}

func (a *App) runOperation(cmd *cobra.Command, d operations.Descriptor, opts *operationOptions, args []string) error {
	inputs, err := a.readInputs(args)
	if err != nil {
		return err
	}

	var watermark *operations.Input
	if opts.watermark != "" {
		mark, err := a.readInput(opts.watermark)
		if err != nil {
			return err
		}
		watermark = &mark
	}

	password := opts.password
	if password == "" {
		password = os.Getenv(EnvPassword)
	}

	req, err := operations.NewRequest(string(d.Name), operations.Params{
		Pages:    opts.pages,
		Angle:    opts.angle,
		Password: password,
	}, inputs, watermark)
	if err != nil {
		return err
	}

	infra, stop, err := a.startInfrastructure()
	if err != nil {
		return err
	}
	defer stop()

	res, err := infra.Operations.Execute(cmd.Context(), req)
	if err != nil {
		return err
	}

	if err := a.writeOutput(opts.output, res.Data); err != nil {
		return err
	}

	if opts.output != "-" {
		if res.Pages > 0 {
			fmt.Fprintf(a.stdout, "wrote %s (%d pages)\n", opts.output, res.Pages)
		} else {
			fmt.Fprintf(a.stdout, "wrote %s\n", opts.output)
		}
	}
	return nil
}

func (a *App) readInputs(paths []string) ([]operations.Input, error) {
	inputs := make([]operations.Input, 0, len(paths))
	for _, p := range paths {
		in, err := a.readInput(p)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func (a *App) readInput(path string) (operations.Input, error) {
	if path == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return operations.Input{}, fmt.Errorf("read stdin: %w", err)
		}
		return operations.Input{Name: "stdin.pdf", Data: data}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return operations.Input{}, fmt.Errorf("read %s: %w", path, err)
	}
	return operations.Input{Name: filepath.Base(path), Data: data}, nil
}

func (a *App) writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := a.stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
