package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, subcmd := range cmd.Commands() {
		if subcmd.Name() == name {
			return subcmd
		}
	}

	return nil
}

func TestNewCoursesCommand(t *testing.T) {
	t.Parallel()

	cmd := NewCoursesCommand()
	assert.Equal(t, "courses", cmd.Use)
	assert.Equal(t, "Manage courses", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 4)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "delete")
}

func TestCoursesListCommand(t *testing.T) {
	t.Parallel()

	cmd := findSubcommand(NewCoursesCommand(), "list")
	require.NotNil(t, cmd)
	assert.NotNil(t, cmd.RunE)

	assert.NotNil(t, cmd.Flags().Lookup("all"))
	assert.NotNil(t, cmd.Flags().Lookup("per-page"))
	assert.NotNil(t, cmd.Flags().Lookup("enrollment-type"))
	assert.NotNil(t, cmd.Flags().Lookup("state"))

	allFlag := cmd.Flags().Lookup("all")
	assert.Equal(t, "false", allFlag.DefValue)
}

func TestCoursesDeleteCommand(t *testing.T) {
	t.Parallel()

	cmd := findSubcommand(NewCoursesCommand(), "delete")
	require.NotNil(t, cmd)
	assert.NotNil(t, cmd.Flags().Lookup("force"))
}

func TestNewUsersCommand(t *testing.T) {
	t.Parallel()

	cmd := NewUsersCommand()
	assert.Equal(t, "users", cmd.Use)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 3)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "whoami")
}

func TestNewFlagsCommand(t *testing.T) {
	t.Parallel()

	cmd := NewFlagsCommand()
	assert.Equal(t, "flags", cmd.Use)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 4)

	for _, name := range []string{"list", "show", "set", "reset"} {
		subcmd := findSubcommand(cmd, name)
		require.NotNil(t, subcmd, name)
		assert.NotNil(t, subcmd.Flags().Lookup("course"), name)
	}
}

func TestFlagContext(t *testing.T) {
	t.Parallel()

	contextType, contextID, ok := flagContext(101)
	assert.True(t, ok)
	assert.Equal(t, "courses", contextType)
	assert.Equal(t, 101, contextID)

	_, _, ok = flagContext(0)
	assert.False(t, ok)
}

func TestNewVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCommand("1.2.3", "abc123", "2026-01-01")
	assert.Equal(t, "version", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestNewLoginCommand(t *testing.T) {
	t.Parallel()

	cmd := NewLoginCommand()
	assert.Equal(t, "login", cmd.Use)

	assert.NotNil(t, cmd.Flags().Lookup("base-url"))
	assert.NotNil(t, cmd.Flags().Lookup("api-key"))
	assert.NotNil(t, cmd.Flags().Lookup("oauth"))
	assert.NotNil(t, cmd.Flags().Lookup("code"))
	assert.NotNil(t, cmd.Flags().Lookup("replace-tokens"))
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id, err := parseID("42", "course ID")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	_, err = parseID("abc", "course ID")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "course ID")

	_, err = parseID("-1", "user ID")
	require.Error(t, err)
}
