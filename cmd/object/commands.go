package object

import (
	"fmt"
	"github.com/ValentinKolb/oconn/cmd/util"
	"github.com/ValentinKolb/oconn/rpc/client"
	"github.com/ValentinKolb/oconn/rpc/common"
	"github.com/spf13/cobra"
)

var (
	createCmd = &cobra.Command{
		Use:     "create [model] [values-json]",
		Short:   "Creates a record and prints its id",
		Example: `  oconn object create res.partner '{"name": "Alice", "email": "alice@example.com"}'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := util.ParseJSONObject(args[1])
			if err != nil {
				return err
			}
			reqContext, err := contextFlag(cmd)
			if err != nil {
				return err
			}
			id, err := session.Create(cmd.Context(), args[0], values, reqContext)
			if err != nil {
				return err
			}
			return util.PrintResult(cmd, id)
		},
	}
	searchCmd = &cobra.Command{
		Use:   "search [model] [domain-json]",
		Short: "Searches records and prints their ids",
		Long: `Searches records of a model. The domain is a json list of conditions
and operators, without a domain all records match.`,
		Example: `  oconn object search res.partner '[["name", "ilike", "a"]]' --limit 10 --order "name desc"`,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var domain common.Domain
			if len(args) == 2 {
				terms, err := util.ParseJSONList(args[1])
				if err != nil {
					return err
				}
				domain = common.NewDomain(terms...)
			}

			if count, _ := cmd.Flags().GetBool("count"); count {
				n, err := session.SearchCount(cmd.Context(), args[0], domain)
				if err != nil {
					return err
				}
				return util.PrintResult(cmd, n)
			}

			offset, _ := cmd.Flags().GetInt("offset")
			limit, _ := cmd.Flags().GetInt("limit")
			order, _ := cmd.Flags().GetString("order")
			opts := []client.SearchOption{client.WithOffset(offset), client.WithLimit(limit), client.WithOrder(order)}
			if reverse, _ := cmd.Flags().GetBool("reverse"); reverse {
				opts = append(opts, client.WithReverse())
			}

			ids, err := session.Search(cmd.Context(), args[0], domain, opts...)
			if err != nil {
				return err
			}
			return util.PrintResult(cmd, ids)
		},
	}
	readCmd = &cobra.Command{
		Use:     "read [model] [ids]",
		Short:   "Reads records (ids are comma separated)",
		Example: `  oconn object read res.partner 1,2,3 --fields name,email`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := util.ParseIDs(args[1])
			if err != nil {
				return err
			}
			fields, _ := cmd.Flags().GetString("fields")
			records, err := session.Read(cmd.Context(), args[0], ids, util.ParseFields(fields))
			if err != nil {
				return err
			}
			return util.PrintResult(cmd, records)
		},
	}
	writeCmd = &cobra.Command{
		Use:   "write [model] [ids] [values-json]",
		Short: "Updates records (ids are comma separated)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := util.ParseIDs(args[1])
			if err != nil {
				return err
			}
			values, err := util.ParseJSONObject(args[2])
			if err != nil {
				return err
			}
			reqContext, err := contextFlag(cmd)
			if err != nil {
				return err
			}
			ok, err := session.Write(cmd.Context(), args[0], ids, values, reqContext)
			if err != nil {
				return err
			}
			return util.PrintResult(cmd, ok)
		},
	}
	unlinkCmd = &cobra.Command{
		Use:   "unlink [model] [ids]",
		Short: "Deletes records (ids are comma separated)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := util.ParseIDs(args[1])
			if err != nil {
				return err
			}
			ok, err := session.Unlink(cmd.Context(), args[0], ids)
			if err != nil {
				return err
			}
			return util.PrintResult(cmd, ok)
		},
	}
	callCmd = &cobra.Command{
		Use:   "call [model] [method] [params-json]",
		Short: "Calls any method of a model",
		Long: `Calls any method of a model. The params are a json list, every element
is passed as one positional parameter.`,
		Example: `  oconn object call res.partner name_search '["ali"]'`,
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var params []interface{}
			if len(args) == 3 {
				var err error
				if params, err = util.ParseJSONList(args[2]); err != nil {
					return err
				}
			}
			result, err := session.Call(cmd.Context(), args[0], args[1], params...)
			if err != nil {
				return err
			}
			return util.PrintResult(cmd, result)
		},
	}
)

func init() {
	key := "offset"
	searchCmd.Flags().Int(key, 0, util.WrapString("Number of matching records to skip"))
	key = "limit"
	searchCmd.Flags().Int(key, 0, util.WrapString("Maximum number of ids to return (0 means no limit)"))
	key = "order"
	searchCmd.Flags().String(key, "", util.WrapString("Sort specification of the server (e.g. \"name desc, id\")"))
	key = "reverse"
	searchCmd.Flags().Bool(key, false, util.WrapString("Reverse the order of the returned ids"))
	key = "count"
	searchCmd.Flags().Bool(key, false, util.WrapString("Print the number of matching records instead of the ids"))

	key = "fields"
	readCmd.Flags().String(key, "", util.WrapString("Comma separated list of fields to read (default all fields)"))

	key = "context"
	for _, c := range []*cobra.Command{createCmd, writeCmd} {
		c.Flags().String(key, "", util.WrapString("Optional request context as json object (e.g. '{\"lang\": \"de_DE\"}')"))
	}
}

// contextFlag parses the --context flag, it returns nil if the flag is not set
func contextFlag(cmd *cobra.Command) (common.Context, error) {
	s, _ := cmd.Flags().GetString("context")
	if s == "" {
		return nil, nil
	}
	m, err := util.ParseJSONObject(s)
	if err != nil {
		return nil, fmt.Errorf("invalid context: %w", err)
	}
	return m, nil
}
