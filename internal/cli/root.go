package cli

import (
	"github.com/spf13/cobra"

	"family-tasks/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config

	// flag values, applied as config overrides before any command runs
	flagDBDir        string
	flagAddress      string
	flagNoMemberGate bool
	flagVerbose      bool
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand() *RootCommand {
	root := &RootCommand{}

	root.cmd = &cobra.Command{
		Use:   "ft",
		Short: "A family task management server",
		Long: `Family Tasks (ft) manages shared task lists for a household: a task
collection per family member, a member roster, per-member statistics and
a change feed that keeps every connected client current.

EXAMPLES:
  ft serve                                 # Serve the API on the default address
  ft serve --address :9090                 # Serve on a custom address
  ft serve --no-member-gate                # Single-user mode, tasks owned by the account

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Database Configuration:
    FT_DB_DIR                              Data directory (default: ~/.ft)
    FT_DB_FILENAME                         Database filename (default: ft.db)
    FT_DB_QUERY_TIMEOUT                    Query timeout (default: 10s)
    FT_DB_WRITE_TIMEOUT                    Write timeout (default: 5s)

  Server Configuration:
    FT_SERVER_ADDRESS                      Listen address (default: :8080)
    FT_SERVER_READ_TIMEOUT                 Read timeout (default: 15s)
    FT_SERVER_WRITE_TIMEOUT                Write timeout (default: 15s)

  Auth Configuration:
    FT_AUTH_JWT_SECRET                     Token signing secret (required)
    FT_AUTH_TOKEN_TTL                      Session token lifetime (default: 24h)
    FT_AUTH_BCRYPT_COST                    Password hash cost (default: 10)

  Access Configuration:
    FT_ACCESS_REQUIRE_MEMBER               Require a selected member for task access (default: true)

  Selection Configuration:
    FT_SELECTION_DIR                       Selection file directory (default: ~/.ft)
    FT_SELECTION_FILENAME                  Selection filename (default: selection.json)

GETTING HELP:
  ft [command] --help                      # Get help for any specific command`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd)
		},
	}

	flags := root.cmd.PersistentFlags()
	flags.StringVar(&root.flagDBDir, "db-dir", "", "data directory (overrides FT_DB_DIR)")
	flags.StringVar(&root.flagAddress, "address", "", "listen address (overrides FT_SERVER_ADDRESS)")
	flags.BoolVar(&root.flagNoMemberGate, "no-member-gate", false, "serve tasks per account without member selection")
	flags.BoolVar(&root.flagVerbose, "verbose", false, "enable verbose output")

	root.cmd.AddCommand(newServeCommand(root))

	return root
}

// loadConfig builds the effective configuration from defaults, environment
// and the flags the user actually set.
func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	overrides := &config.ConfigOverrides{}

	if cmd.Flags().Changed("db-dir") {
		overrides.DBDir = &r.flagDBDir
	}
	if cmd.Flags().Changed("address") {
		overrides.ServerAddress = &r.flagAddress
	}
	if cmd.Flags().Changed("no-member-gate") {
		requireMember := !r.flagNoMemberGate
		overrides.RequireMemberSelection = &requireMember
	}
	if cmd.Flags().Changed("verbose") {
		overrides.Verbose = &r.flagVerbose
	}

	cfg, err := config.NewLoader().LoadWithOverrides(overrides)
	if err != nil {
		return err
	}

	r.config = cfg
	return nil
}

// Config returns the effective configuration after flag parsing.
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// Command returns the underlying cobra command.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command with the given arguments.
func (r *RootCommand) Execute(args []string) error {
	r.cmd.SetArgs(args)
	return r.cmd.Execute()
}
