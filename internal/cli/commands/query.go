package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/geosql/internal/rewrite"
	"github.com/leapstack-labs/geosql/pkg/adapter"
)

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	var (
		geostoreID string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "query [sql]",
		Short: "Rewrite a query and run it against the target database",
		Long: `Rewrite a query exactly like the rewrite command, then execute it on the
PostGIS database configured as target.dsn (or --dsn).

SELECT results are printed as a table, JSON or CSV. DELETE statements
report the number of rows removed.`,
		Example: `  geosql query --dsn postgres://localhost/gis -g 0279093c36a4 "SELECT name FROM parcels"
  geosql query -f json "SELECT count(*) FROM parcels"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readSQL(cmd, args)
			if err != nil {
				return err
			}

			cc := NewCommandContext(cmd)
			if cc.Cfg.Target.DSN == "" {
				return fmt.Errorf("no target database: set target.dsn or --dsn")
			}

			svc, err := cc.NewService()
			if err != nil {
				return err
			}
			res, err := svc.Rewrite(cmd.Context(), rewrite.Request{SQL: sql, Geostore: geostoreID})
			if err != nil {
				return err
			}
			cc.Logger.Debug("running rewritten query", "sql", res.SQL)

			db, err := adapter.NewAdapter(cc.Cfg.Target.DSN, cc.Logger)
			if err != nil {
				return err
			}
			if err := db.Connect(cmd.Context(), adapter.Config{DSN: cc.Cfg.Target.DSN}); err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			out, err := adapter.Run(cmd.Context(), db, res.Parsed, res.SQL)
			if err != nil {
				return err
			}
			return renderOutcome(cmd.OutOrStdout(), out, format)
		},
	}

	cmd.Flags().StringVarP(&geostoreID, "geostore", "g", "", "Geostore id whose geometry filters the query")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table|json|csv)")
	cmd.Flags().String("dsn", "", "Target PostGIS connection string")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json", "csv"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
