package cmd

import (
	"context"
	"fmt"
	"github.com/ValentinKolb/oconn/cmd/attendance"
	"github.com/ValentinKolb/oconn/cmd/object"
	"github.com/ValentinKolb/oconn/cmd/server"
	"github.com/ValentinKolb/oconn/cmd/util"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "oconn",
		Short: "OpenERP/Odoo object service client",
		Long: fmt.Sprintf(`oconn (v%s)

A command line client for the remote object service of OpenERP/Odoo servers.
It logs in to a database and creates, searches, reads, updates and deletes
records over XML-RPC or JSON-RPC.`, Version),
		SilenceUsage: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			util.PrintMetrics()
		},
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of oconn",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("oconn v%s\n", Version)
		},
	}
)

func init() {
	// Run the hooks of the groups and of the root command
	cobra.EnableTraverseRunHooks = true

	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add Commands
	RootCmd.AddCommand(server.ServerCommands)
	RootCmd.AddCommand(object.ObjectCommands)
	RootCmd.AddCommand(attendance.AttendanceCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "protocol"
	RootCmd.PersistentFlags().String(key, "xmlrpc", util.WrapString("protocol to use (xmlrpc, jsonrpc)"))
	key = "output"
	RootCmd.PersistentFlags().StringP(key, "o", "text", util.WrapString("output format (text, json, yaml)"))
	key = "no-color"
	RootCmd.PersistentFlags().Bool(key, false, util.WrapString("disable colored text output"))
	key = "print-metrics"
	RootCmd.PersistentFlags().Bool(key, false, util.WrapString("print the call metrics to stderr after the command"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
