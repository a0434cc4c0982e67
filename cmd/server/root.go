package server

import (
	"fmt"
	"github.com/ValentinKolb/oconn/cmd/util"
	"github.com/ValentinKolb/oconn/rpc/client"
	"github.com/ValentinKolb/oconn/rpc/common"
	"github.com/ValentinKolb/oconn/rpc/transport"
	"github.com/spf13/cobra"
)

var (
	config *common.ClientConfig

	// ServerCommands represents the server command group (no login needed)
	ServerCommands = &cobra.Command{
		Use:               "server",
		Short:             "Query the server without logging in",
		PersistentPreRunE: setupServerClient,
	}

	pingCmd = &cobra.Command{
		Use:   "ping",
		Short: "Checks if the server is reachable (2 second deadline)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := newTransport()
			if err != nil {
				return err
			}
			if !client.TestConnection(*config, t) {
				return fmt.Errorf("server %s is not reachable", config.BaseURL())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "server %s is reachable\n", config.BaseURL())
			return nil
		},
	}
	databasesCmd = &cobra.Command{
		Use:   "databases",
		Short: "Lists the databases of the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := newTransport()
			if err != nil {
				return err
			}
			dbs, err := client.ListDatabases(cmd.Context(), *config, t)
			if err != nil {
				return err
			}
			return util.PrintResult(cmd, dbs)
		},
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Prints the version information of the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := newTransport()
			if err != nil {
				return err
			}
			version, err := client.ServerVersion(cmd.Context(), *config, t)
			if err != nil {
				return err
			}
			return util.PrintResult(cmd, version)
		},
	}
)

func init() {
	// Add common RPC flags to the server command
	util.SetupRPCClientFlags(ServerCommands)

	// Add subcommands
	ServerCommands.AddCommand(pingCmd)
	ServerCommands.AddCommand(databasesCmd)
	ServerCommands.AddCommand(versionCmd)
}

// setupServerClient reads the configuration, the transport is created per command
func setupServerClient(cmd *cobra.Command, _ []string) error {
	var err error
	config, err = util.SetupClient(cmd)
	return err
}

func newTransport() (transport.IRPCClientTransport, error) {
	return util.GetTransport(config)
}
