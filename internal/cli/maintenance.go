package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dukerupert/pantry/internal/backup"
	"github.com/dukerupert/pantry/internal/model"
	"github.com/dukerupert/pantry/internal/pantry"
)

func newRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh [CONTAINER]",
		Short: "Recompute freshness tags for one container or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			var changed int
			if len(args) == 1 {
				changed, err = svc.RefreshFreshness(args[0])
			} else {
				changed, err = svc.RefreshAll()
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d items changed freshness\n", changed)
			return nil
		},
	}
}

func newReportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report CONTAINER",
		Short: "Summarize a container by freshness and food group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			r, err := svc.Report(args[0])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), r)
			}
			return printReport(cmd, r)
		},
	}
}

func printReport(cmd *cobra.Command, r pantry.Report) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d items, %d units\n", r.Container, r.Total, r.Quantity)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, f := range model.Freshnesses.Values {
		fmt.Fprintf(tw, "  %s\t%d\n", f, r.Counts[f])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(r.Expiring) > 0 {
		fmt.Fprintln(out, "Use soon:")
		return printItems(out, r.Expiring)
	}
	return nil
}

func newTipCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tip FOOD",
		Short: "Show storage advice for a food",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			tip, err := svc.StorageTip(args[0])
			if err != nil {
				return err
			}
			if tip == "" {
				return fmt.Errorf("no storage tip for %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), tip)
			return nil
		},
	}
}

func newBackupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write an encrypted snapshot of the database",
		Long: "Write an encrypted snapshot of the database to the backup directory and\n" +
			"prune old snapshots. The passphrase comes from backup_passphrase\n" +
			"(PANTRY_BACKUP_PASSPHRASE).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.backups()
			if err != nil {
				return err
			}
			path, err := m.Snapshot(cmd.Context(), a.cfg.BackupPassphrase)
			if err != nil {
				return err
			}
			removed, err := m.Prune(a.cfg.BackupKeep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (pruned %d)\n", path, removed)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.backups()
			if err != nil {
				return err
			}
			infos, err := m.List()
			if err != nil {
				return err
			}
			if a.jsonOut {
				if infos == nil {
					infos = []backup.Info{}
				}
				return printJSON(cmd.OutOrStdout(), infos)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", info.Name, info.CreatedAt.Format("2006-01-02 15:04:05"), info.SizeBytes)
			}
			return tw.Flush()
		},
	})

	return cmd
}

func (a *app) backups() (*backup.Manager, error) {
	db, err := a.open()
	if err != nil {
		return nil, err
	}
	return backup.NewManager(db, a.cfg.BackupDir, a.logger), nil
}

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore FILE",
		Short: "Replace the database with a decrypted snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := backup.Restore(cmd.Context(), args[0], a.cfg.DBPath, a.cfg.BackupPassphrase); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from %s\n", a.cfg.DBPath, args[0])
			return nil
		},
	}
}
