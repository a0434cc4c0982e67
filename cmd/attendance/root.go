package attendance

import (
	"fmt"
	"github.com/ValentinKolb/oconn/cmd/util"
	"github.com/ValentinKolb/oconn/rpc/client"
	"github.com/ValentinKolb/oconn/rpc/common"
	"github.com/spf13/cobra"
	"strconv"
)

var (
	session    *client.Session
	attendance *client.Attendance

	// AttendanceCommands represents the attendance command group
	AttendanceCommands = &cobra.Command{
		Use:                "attendance",
		Short:              "Register and query attendances (" + client.AttendanceModel + ")",
		PersistentPreRunE:  setupAttendance,
		PersistentPostRunE: closeSession,
	}

	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Checks if the logged in user may register attendances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := attendance.ValidateRegister(cmd.Context())
			if err != nil {
				return err
			}
			return util.PrintResult(cmd, msg)
		},
	}
	installedCmd = &cobra.Command{
		Use:   "installed [module]",
		Short: "Checks if a module is installed on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := attendance.ModuleInstalled(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return util.PrintResult(cmd, ok)
		},
	}
	registerCmd = &cobra.Command{
		Use:   "register [employee-id]",
		Short: "Registers a check in or check out of an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			employeeID, err := parseEmployeeID(args[0])
			if err != nil {
				return err
			}
			ok, err := attendance.RegisterAttendance(cmd.Context(), employeeID)
			if err != nil {
				return err
			}
			return util.PrintResult(cmd, ok)
		},
	}
	registersCmd = &cobra.Command{
		Use:     "registers [from] [to] [employee-id]",
		Short:   "Lists the registers of an employee between two dates",
		Example: `  oconn attendance registers "2024-01-01 00:00:00" "2024-01-31 23:59:59" 5`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			employeeID, err := parseEmployeeID(args[2])
			if err != nil {
				return err
			}
			registers, err := attendance.RegistersByDate(cmd.Context(), args[0], args[1], employeeID)
			if err != nil {
				return err
			}
			return util.PrintResult(cmd, registers)
		},
	}
	rangeCmd = &cobra.Command{
		Use:       "range [today|yesterday|week|month]",
		Short:     "Prints the date range of a period as computed by the server",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"today", "yesterday", "week", "month"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				r   common.Record
				err error
			)
			switch args[0] {
			case "today":
				r, err = attendance.RangeDatesToday(cmd.Context())
			case "yesterday":
				r, err = attendance.RangeDatesYesterday(cmd.Context())
			case "week":
				r, err = attendance.RangeDatesThisWeek(cmd.Context())
			case "month":
				r, err = attendance.RangeDatesThisMonth(cmd.Context())
			default:
				return fmt.Errorf("invalid period %s (expected one of: today, yesterday, week, month)", args[0])
			}
			if err != nil {
				return err
			}
			return util.PrintResult(cmd, r)
		},
	}
	lastCmd = &cobra.Command{
		Use:   "last [employee-id]",
		Short: "Prints the last register of an employee today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			employeeID, err := parseEmployeeID(args[0])
			if err != nil {
				return err
			}
			last, err := attendance.LastRegisterToday(cmd.Context(), employeeID)
			if err != nil {
				return err
			}
			return util.PrintResult(cmd, last)
		},
	}
)

func init() {
	// Add common RPC flags to the attendance command
	util.SetupRPCClientFlags(AttendanceCommands)

	// Add subcommands
	AttendanceCommands.AddCommand(validateCmd)
	AttendanceCommands.AddCommand(installedCmd)
	AttendanceCommands.AddCommand(registerCmd)
	AttendanceCommands.AddCommand(registersCmd)
	AttendanceCommands.AddCommand(rangeCmd)
	AttendanceCommands.AddCommand(lastCmd)
}

// setupAttendance logs in to the configured database
func setupAttendance(cmd *cobra.Command, _ []string) error {
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
	attendance = client.NewAttendance(session)
	return nil
}

func closeSession(_ *cobra.Command, _ []string) error {
	if session == nil {
		return nil
	}
	return session.Close()
}

func parseEmployeeID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid employee id %q: %w", s, err)
	}
	return id, nil
}
