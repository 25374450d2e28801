package cli

import (
	"github.com/spf13/cobra"
	"github.com/viant/dbio/io/errx"
)

func newExecCmd(f *flags) *cobra.Command {
	var scoped bool
	cmd := &cobra.Command{
		Use:   "exec <sql> [args...]",
		Short: "Execute SQL in a transaction",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := f.client(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			execute := client.Execute
			if scoped {
				execute = client.ExecuteScoped
			}
			count, err := execute(cmd.Context(), args[0], stringArgs(args[1:])...)
			if err != nil {
				return err
			}
			return f.write(cmd.OutOrStdout(), &affected{Affected: count})
		},
	}
	cmd.Flags().BoolVar(&scoped, "scoped", false, "use transactional connection")
	return cmd
}

func newReadCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "read <table>",
		Short: "Read the whole table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := f.client(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			ds, err := client.Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return f.write(cmd.OutOrStdout(), ds)
		},
	}
}

func newQueryCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "query <sql> [args...]",
		Short: "Read query result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := f.client(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			ds, err := client.ReadQuery(cmd.Context(), args[0], stringArgs(args[1:])...)
			if err != nil {
				return err
			}
			return f.write(cmd.OutOrStdout(), ds)
		},
	}
}

func newInsertCmd(f *flags) *cobra.Command {
	var literal bool
	cmd := &cobra.Command{
		Use:   "insert <table> <dataset URL>",
		Short: "Insert dataset rows",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			client, err := f.client(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			insert := client.Insert
			if literal {
				insert = client.InsertLiteral
			}
			count, err := insert(cmd.Context(), args[0], ds)
			return f.report(cmd, count, err)
		},
	}
	cmd.Flags().BoolVar(&literal, "literal", false, "insert row by row with literal statements")
	return cmd
}

func newUpsertCmd(f *flags) *cobra.Command {
	var keys []string
	var literal bool
	cmd := &cobra.Command{
		Use:   "upsert <table> <dataset URL> --keys k1,k2",
		Short: "Upsert dataset rows matching existing rows by keys",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			client, err := f.client(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			upsert := client.Upsert
			if literal {
				upsert = client.UpsertLiteral
			}
			count, err := upsert(cmd.Context(), args[0], keys, ds)
			return f.report(cmd, count, err)
		},
	}
	cmd.Flags().StringSliceVarP(&keys, "keys", "k", nil, "key columns")
	cmd.Flags().BoolVar(&literal, "literal", false, "upsert row by row with literal statements")
	_ = cmd.MarkFlagRequired("keys")
	return cmd
}

//report writes affected rows, partial results are reported before the error
func (f *flags) report(cmd *cobra.Command, count int64, err error) error {
	if err != nil && !errx.IsPartial(err) {
		return err
	}
	if wErr := f.write(cmd.OutOrStdout(), &affected{Affected: count}); wErr != nil {
		return wErr
	}
	return err
}

func stringArgs(args []string) []interface{} {
	var result = make([]interface{}, len(args))
	for i, arg := range args {
		result[i] = arg
	}
	return result
}
