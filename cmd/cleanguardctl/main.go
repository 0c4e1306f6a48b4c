package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"cleanguard-backend/internal/app"
	"cleanguard-backend/internal/config"
	"cleanguard-backend/internal/logger"
	"cleanguard-backend/internal/services"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "cleanguardctl",
		Short:        "CleanGuard operator CLI",
		Long:         "Maintenance commands for the CleanGuard locker backend: migrations, backups, imports and snapshots.",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "path to the YAML config file")

	// open loads config and connects; callers must Close the app
	open := func(cmd *cobra.Command) (*app.App, error) {
		cfg, err := config.LoadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		logger.InitLogging(cfg.Logging.File, cfg.Logging.Level)
		return app.New(cmd.Context(), cfg)
	}

	// migrate
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.Migrate(cmd.Context()); err != nil {
				return err
			}
			perKind, _ := cmd.Flags().GetInt("seed")
			if perKind > 0 {
				if err := a.Lockers.Seed(cmd.Context(), perKind); err != nil {
					return fmt.Errorf("seed lockers: %w", err)
				}
			}
			fmt.Println("migrations applied")
			return nil
		},
	}
	migrateCmd.Flags().Int("seed", 0, "seed this many lockers per floor and type when the table is empty")
	rootCmd.AddCommand(migrateCmd)

	// reset
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop all data and recreate the schema",
		Long:  "Deletes every employee, locker, log, snapshot and user. Intended for test databases only.",
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("database reset")
			return nil
		},
	}
	resetCmd.Flags().Bool("yes", false, "confirm that all data will be deleted")
	rootCmd.AddCommand(resetCmd)

	// backup run|list
	backupCmd := &cobra.Command{Use: "backup", Short: "Database backup commands"}
	backupRunCmd := &cobra.Command{
		Use:   "run",
		Short: "Dump the database now",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			file, err := a.Backups.RunBackup(cmd.Context(), "cli")
			if err != nil {
				return err
			}
			return printJSON(file)
		},
	}
	backupListCmd := &cobra.Command{
		Use:   "list",
		Short: "List local backups, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			files, err := a.Backups.ListBackups(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(files)
		},
	}
	backupCmd.AddCommand(backupRunCmd, backupListCmd)
	rootCmd.AddCommand(backupCmd)

	// import employees|lockers <file>
	importCmd := &cobra.Command{Use: "import", Short: "Bulk import from CSV or XLSX"}
	importEmployeesCmd := &cobra.Command{
		Use:   "employees <file>",
		Short: "Import employees with their lockers and issued items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			result, err := a.Imports.ImportEmployees(cmd.Context(), filepath.Base(args[0]), data, "cli")
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	importLockersCmd := &cobra.Command{
		Use:   "lockers <file>",
		Short: "Replace the locker layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			result, err := a.Lockers.Import(cmd.Context(), filepath.Base(args[0]), data, "cli")
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	importCmd.AddCommand(importEmployeesCmd, importLockersCmd)
	rootCmd.AddCommand(importCmd)

	// snapshot
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Record the current locker occupancy",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			snap, err := a.Lockers.CaptureSnapshot(cmd.Context(), "cli")
			if err != nil {
				return err
			}
			return printJSON(snap)
		},
	}
	rootCmd.AddCommand(snapshotCmd)

	// template employees|lockers
	templateCmd := &cobra.Command{
		Use:       "template <employees|lockers>",
		Short:     "Write an import template to the current directory",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"employees", "lockers"},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")

			var file *services.TableFile
			var err error
			switch args[0] {
			case "employees":
				file, err = (&services.ImportService{}).EmployeeTemplate(format)
			case "lockers":
				file, err = (&services.LockerService{}).Template(format)
			default:
				return fmt.Errorf("unknown template %q", args[0])
			}
			if err != nil {
				return err
			}
			if out == "" {
				out = file.Name
			}
			if err := os.WriteFile(out, file.Data, 0o644); err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	templateCmd.Flags().String("format", "xlsx", "csv or xlsx")
	templateCmd.Flags().String("out", "", "output path (defaults to the template name)")
	rootCmd.AddCommand(templateCmd)

	return rootCmd
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
