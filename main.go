package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ttpr0/go-netvoronoi/parser"
	"golang.org/x/exp/slog"
)

var config_file string

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "netvoronoi",
		Short:         "Network voronoi with k-dominance over road networks",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&config_file, "config", "./config.yaml", "path to the config file")
	root.AddCommand(
		&cobra.Command{
			Use:   "construct",
			Short: "Compute the scopes of all objects and write the result",
			Args:  cobra.NoArgs,
			RunE:  runConstruct,
		},
		&cobra.Command{
			Use:   "insert",
			Short: "Construct, then apply the object updates file",
			Args:  cobra.NoArgs,
			RunE:  runInsert,
		},
		&cobra.Command{
			Use:   "delete <object-id...>",
			Short: "Construct, then delete the given objects",
			Args:  cobra.MinimumNArgs(1),
			RunE:  runDelete,
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Print counts and bound of the network",
			Args:  cobra.NoArgs,
			RunE:  runStats,
		},
	)
	return root
}

func _LoadConfig() (Config, error) {
	config, err := ReadConfig(config_file)
	if err != nil {
		return config, err
	}
	SetupLogging(os.Stderr, config.LogLevel.Level())
	return config, nil
}

func runConstruct(cmd *cobra.Command, args []string) error {
	config, err := _LoadConfig()
	if err != nil {
		return err
	}
	manager, err := BuildManager(config)
	if err != nil {
		return err
	}
	return WriteResult(config, manager)
}

func runInsert(cmd *cobra.Command, args []string) error {
	config, err := _LoadConfig()
	if err != nil {
		return err
	}
	if config.Source.Updates == "" {
		return errors.New("no updates file configured")
	}
	manager, err := BuildManager(config)
	if err != nil {
		return err
	}
	updates, err := parser.NewReader(config.ReaderOptions()).ReadObjects(config.Source.Updates)
	if err != nil {
		return err
	}
	stats := manager.Apply(updates)
	fmt.Fprintf(cmd.OutOrStdout(), "applied %d updates, skipped %d\n", stats.Processed, stats.Skipped)
	return WriteResult(config, manager)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids := make([]int32, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid object id %q: %w", arg, err)
		}
		ids = append(ids, int32(id))
	}
	config, err := _LoadConfig()
	if err != nil {
		return err
	}
	manager, err := BuildManager(config)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := manager.Delete(id); err != nil {
			slog.Warn("failed to delete object", "object", id, "err", err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted object %d\n", id)
	}
	return WriteResult(config, manager)
}

func runStats(cmd *cobra.Command, args []string) error {
	config, err := _LoadConfig()
	if err != nil {
		return err
	}
	g, err := LoadGraph(config)
	if err != nil {
		return err
	}
	bound := g.Bound()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "nodes:   %d\n", g.NodeCount())
	fmt.Fprintf(out, "edges:   %d\n", g.EdgeCount())
	fmt.Fprintf(out, "objects: %d\n", g.ObjectCount())
	fmt.Fprintf(out, "bound:   [%f, %f] - [%f, %f]\n", bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat())
	return nil
}
