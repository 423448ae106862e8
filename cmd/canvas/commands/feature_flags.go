package commands

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// NewFlagsCommand creates the flags command group for feature flags.
func NewFlagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flags",
		Short: "Manage feature flags",
		Long:  "List and update Canvas feature flags on accounts and courses",
	}

	cmd.AddCommand(newFlagsListCommand())
	cmd.AddCommand(newFlagsShowCommand())
	cmd.AddCommand(newFlagsSetCommand())
	cmd.AddCommand(newFlagsResetCommand())

	return cmd
}

// flagContext resolves the optional --course flag into a feature flag
// context. Without it the configured account is used.
func flagContext(courseID int) (contextType string, contextID int, ok bool) {
	if courseID > 0 {
		return "courses", courseID, true
	}

	return "", 0, false
}

func newFlagsListCommand() *cobra.Command {
	var courseID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List features",
		Long:  "List the features available on the configured account or a course",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("context").Value.String())
			if err != nil {
				return err
			}

			ctx := cmdContext()

			var page *canvas.Page[canvas.Feature]

			if contextType, contextID, ok := flagContext(courseID); ok {
				page, err = client.FeatureFlags().ListInContext(ctx, contextType, contextID, url.Values{})
			} else {
				page, err = client.FeatureFlags().List(ctx, url.Values{})
			}

			if err != nil {
				return fmt.Errorf("listing features: %w", err)
			}

			return renderOutput(page.Items, func() error {
				return renderFeaturesTable(page.Items)
			})
		},
	}

	cmd.Flags().IntVar(&courseID, "course", 0, "list features of a course instead of the account")

	return cmd
}

func newFlagsShowCommand() *cobra.Command {
	var courseID int

	cmd := &cobra.Command{
		Use:   "show FEATURE",
		Short: "Show a feature flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("context").Value.String())
			if err != nil {
				return err
			}

			ctx := cmdContext()

			var flag *canvas.FeatureFlag

			if contextType, contextID, ok := flagContext(courseID); ok {
				flag, err = client.FeatureFlags().GetInContext(ctx, contextType, contextID, args[0])
			} else {
				flag, err = client.FeatureFlags().Get(ctx, args[0])
			}

			if err != nil {
				return fmt.Errorf("fetching feature flag: %w", err)
			}

			return renderOutput(flag, func() error {
				return renderFlagsTable([]canvas.FeatureFlag{*flag})
			})
		},
	}

	cmd.Flags().IntVar(&courseID, "course", 0, "read the flag from a course instead of the account")

	return cmd
}

func newFlagsSetCommand() *cobra.Command {
	var courseID int

	cmd := &cobra.Command{
		Use:   "set FEATURE STATE",
		Short: "Set a feature flag",
		Long:  "Set a feature flag to off, allowed, or on",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			feature, state := args[0], args[1]

			switch state {
			case "off", "allowed", "on":
			default:
				return fmt.Errorf("invalid state %q: must be off, allowed, or on", state)
			}

			client, err := CreateClient(cmd.Flag("context").Value.String())
			if err != nil {
				return err
			}

			ctx := cmdContext()

			var flag *canvas.FeatureFlag

			if contextType, contextID, ok := flagContext(courseID); ok {
				flag, err = client.FeatureFlags().UpdateInContext(ctx, contextType, contextID, feature, state)
			} else {
				flag, err = client.FeatureFlags().Update(ctx, feature, state)
			}

			if err != nil {
				return fmt.Errorf("updating feature flag: %w", err)
			}

			fmt.Fprintf(os.Stdout, "Feature '%s' is now %s\n", flag.Feature, flag.State)

			return nil
		},
	}

	cmd.Flags().IntVar(&courseID, "course", 0, "set the flag on a course instead of the account")

	return cmd
}

func newFlagsResetCommand() *cobra.Command {
	var courseID int

	cmd := &cobra.Command{
		Use:   "reset FEATURE",
		Short: "Reset a feature flag",
		Long:  "Remove the flag override so the value is inherited again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("context").Value.String())
			if err != nil {
				return err
			}

			ctx := cmdContext()

			if contextType, contextID, ok := flagContext(courseID); ok {
				err = client.FeatureFlags().DeleteInContext(ctx, contextType, contextID, args[0])
			} else {
				err = client.FeatureFlags().Delete(ctx, args[0])
			}

			if err != nil {
				return fmt.Errorf("resetting feature flag: %w", err)
			}

			fmt.Fprintf(os.Stdout, "Feature '%s' reset to inherited value\n", args[0])

			return nil
		},
	}

	cmd.Flags().IntVar(&courseID, "course", 0, "reset the flag on a course instead of the account")

	return cmd
}

func renderFeaturesTable(features []canvas.Feature) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Feature", "Display Name", "Applies To", "State")

	for _, feature := range features {
		state := ""
		if feature.FeatureFlag != nil {
			state = feature.FeatureFlag.State
		}

		_ = table.Append(feature.Feature, feature.DisplayName, feature.AppliesTo, state)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderFlagsTable(flags []canvas.FeatureFlag) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Feature", "State", "Context", "Locked")

	for _, flag := range flags {
		context := ""
		if flag.ContextType != "" {
			context = fmt.Sprintf("%s/%d", flag.ContextType, flag.ContextID)
		}

		_ = table.Append(flag.Feature, flag.State, context, strconv.FormatBool(flag.Locked))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
