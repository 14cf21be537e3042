package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/sensi-go/internal/app"
	"github.com/doeshing/sensi-go/internal/infrastructure/cli/commands"
	"github.com/doeshing/sensi-go/internal/infrastructure/cli/helpers"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	container.Session.Start()
	return newRootCmd(container), nil
}

func newRootCmd(container *app.Container) *cobra.Command {
	var shortcut lookupOptions

	root := &cobra.Command{
		Use:   "sensi [device]",
		Short: "Sensi - Free Fire sensitivity finder",
		Long:  "Sensi asks an AI model for Free Fire sensitivity settings tuned to your phone and keeps the last results.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runLookup(cmd, container, args, shortcut)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return container.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	shortcut.bind(root)

	root.AddCommand(newLookupCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewMuteCommand(container))
	root.AddCommand(commands.NewServeCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root
}

type lookupOptions struct {
	model   string
	asJSON  bool
	timeout time.Duration
}

func (o *lookupOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.model, "model", "m", "", "Override model name (default from config)")
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "Print the settings as JSON")
	cmd.Flags().DurationVar(&o.timeout, "timeout", 0, "Abort the lookup after this long (default: transport timeout)")
}

func newLookupCommand(container *app.Container) *cobra.Command {
	var opts lookupOptions

	cmd := &cobra.Command{
		Use:   "lookup [device name]",
		Short: "Get sensitivity settings for a phone model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, container, args, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

// runLookup submits the joined args as one device name and prints the result.
func runLookup(cmd *cobra.Command, container *app.Container, args []string, opts lookupOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}
	if container.Retriever != nil {
		container.Retriever.ModelOverride = opts.model
	}

	device := strings.Join(args, " ")
	spinner := NewSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Finding settings for %s...", device))
	if !opts.asJSON {
		spinner.Start()
	}
	state, err := container.Session.Submit(ctx, device)
	spinner.Stop()
	if err != nil {
		if state.Error != "" {
			return errors.New(state.Error)
		}
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(state.Settings)
	}
	helpers.RenderSettings(cmd.OutOrStdout(), *state.Settings)
	return nil
}
