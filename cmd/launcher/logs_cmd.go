package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idklol/launcher/internal/logtail"
)

func newLogsCmd(flags *rootFlags) *cobra.Command {
	var (
		lines    int
		pathOnly bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of today's launcher log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := flags.env()
			if err != nil {
				return err
			}
			defer env.Close()

			if env.LogPath == "" {
				return errors.New("log file is unavailable")
			}
			out := cmd.OutOrStdout()
			if pathOnly {
				fmt.Fprintln(out, env.LogPath)
				return nil
			}
			records, err := logtail.ReadRecords(env.LogPath, lines)
			if err != nil {
				return err
			}
			for _, rec := range records {
				fmt.Fprintln(out, logtail.Format(rec))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of records to print")
	cmd.Flags().BoolVar(&pathOnly, "path", false, "Print the log file path only")
	return cmd
}
