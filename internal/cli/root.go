package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/taskhub/internal/buildinfo"
	"github.com/dmitrijs2005/taskhub/internal/config"
	"github.com/dmitrijs2005/taskhub/internal/services"
)

// NewRootCommand builds the taskhub command tree. Storage and store
// settings come from cfg, which the caller loads from the same argv
// before handing the rest to cobra.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "taskhub",
		Short:         "TaskHub team task board",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, cfg, func(rt *Runtime) error {
				rt.NewApp(cmd.InOrStdin(), cmd.OutOrStdout()).Root(cmd.Context())
				return nil
			})
		},
	}

	root.AddCommand(
		adminCmd(cfg),
		versionCmd(),
	)
	return root
}

func adminCmd(cfg *config.Config) *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Maintenance operations",
	}

	var olderThan time.Duration
	clearTasks := &cobra.Command{
		Use:   "clear-tasks",
		Short: "Delete done tasks completed before the retention window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, cfg, func(rt *Runtime) error {
				n, err := rt.Tasks.ClearCompleted(cmd.Context(), olderThan)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleanup complete: %d task(s) removed.\n", n)
				return nil
			})
		},
	}
	clearTasks.Flags().DurationVar(&olderThan, "older-than", services.DefaultRetention, "minimum age of completed tasks")

	clearInactive := &cobra.Command{
		Use:   "clear-inactive",
		Short: "Delete users without a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, cfg, func(rt *Runtime) error {
				n, err := rt.Team.ClearInactive(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d inactive user(s).\n", n)
				return nil
			})
		},
	}

	deleteUser := &cobra.Command{
		Use:   "delete-user ID",
		Short: "Remove a member, their auth user and task assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, cfg, func(rt *Runtime) error {
				if err := rt.Team.Remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "User %s deleted.\n", args[0])
				return nil
			})
		},
	}

	admin.AddCommand(clearTasks, clearInactive, deleteUser)
	return admin
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

func withRuntime(cmd *cobra.Command, cfg *config.Config, fn func(rt *Runtime) error) error {
	rt, err := Bootstrap(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			rt.Logger.Warn(cmd.Context(), "close storage", "error", err)
		}
	}()
	return fn(rt)
}
