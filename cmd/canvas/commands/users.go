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

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
		Long:  "List and inspect Canvas users",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersShowCommand())
	cmd.AddCommand(newUsersWhoamiCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	var (
		searchTerm string
		perPage    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long:  "List the users of the configured account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("context").Value.String())
			if err != nil {
				return err
			}

			query := url.Values{}
			if searchTerm != "" {
				query.Set("search_term", searchTerm)
			}

			if perPage > 0 {
				query.Set("per_page", strconv.Itoa(perPage))
			}

			page, err := client.Users().List(cmdContext(), query)
			if err != nil {
				return fmt.Errorf("listing users: %w", err)
			}

			return renderOutput(page.Items, func() error {
				return renderUsersTable(page.Items)
			})
		},
	}

	cmd.Flags().StringVar(&searchTerm, "search", "", "filter users by name or login")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "results per page")

	return cmd
}

func newUsersShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show USER_ID",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0], "user ID")
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Flag("context").Value.String())
			if err != nil {
				return err
			}

			user, err := client.Users().Find(cmdContext(), userID)
			if err != nil {
				return fmt.Errorf("finding user: %w", err)
			}

			return renderOutput(user, func() error {
				return renderUsersTable([]canvas.User{*user})
			})
		},
	}
}

func newUsersWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("context").Value.String())
			if err != nil {
				return err
			}

			user, err := client.Users().Self(cmdContext())
			if err != nil {
				return fmt.Errorf("fetching authenticated user: %w", err)
			}

			return renderOutput(user, func() error {
				return renderUsersTable([]canvas.User{*user})
			})
		},
	}
}

func renderUsersTable(users []canvas.User) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Login", "Email")

	for _, user := range users {
		_ = table.Append(strconv.Itoa(user.ID), user.Name, user.LoginID, user.Email)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
