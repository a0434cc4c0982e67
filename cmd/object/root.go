package object

import (
	"github.com/ValentinKolb/oconn/cmd/util"
	"github.com/ValentinKolb/oconn/rpc/client"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
)

var (
	Logger = logger.GetLogger("cmd")

	session *client.Session

	// ObjectCommands represents the object command group
	ObjectCommands = &cobra.Command{
		Use:                "object",
		Short:              "Perform record operations on any model",
		PersistentPreRunE:  setupSession,
		PersistentPostRunE: closeSession,
	}
)

func init() {
	// Add common RPC flags to the object command
	util.SetupRPCClientFlags(ObjectCommands)

	// Add subcommands
	ObjectCommands.AddCommand(createCmd)
	ObjectCommands.AddCommand(searchCmd)
	ObjectCommands.AddCommand(readCmd)
	ObjectCommands.AddCommand(writeCmd)
	ObjectCommands.AddCommand(unlinkCmd)
	ObjectCommands.AddCommand(callCmd)
	ObjectCommands.AddCommand(perfTestCmd)
}

// setupSession logs in to the configured database
func setupSession(cmd *cobra.Command, _ []string) error {
	config, err := util.SetupClient(cmd)
	if err != nil {
		return err
	}

	t, err := util.GetTransport(config)
	if err != nil {
		return err
	}

	session, err = client.Connect(cmd.Context(), *config, t)
	if err != nil {
		return err
	}
	Logger.Infof("logged in as %s (uid %d)", session.UserName(), session.UserID())
	return nil
}

func closeSession(_ *cobra.Command, _ []string) error {
	if session == nil {
		return nil
	}
	return session.Close()
}
