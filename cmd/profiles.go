package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/inkshape/internal/store"
)

var (
	profilesDataDir string
	olderThanDays   int
	forceClean      bool
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage tuned threshold profiles",
	Long: `Manage the threshold profiles produced by tuning runs, including
listing stored profiles and cleaning out stale ones.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored profiles",
	RunE:  runListProfiles,
}

var cleanProfilesCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete profiles older than a retention window",
	RunE:  runCleanProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(listProfilesCmd)
	profilesCmd.AddCommand(cleanProfilesCmd)

	profilesCmd.PersistentFlags().StringVar(&profilesDataDir, "data-dir", "./data", "Base directory for profile storage")

	cleanProfilesCmd.Flags().IntVar(&olderThanDays, "older-than", 30, "Delete profiles older than N days")
	cleanProfilesCmd.Flags().BoolVarP(&forceClean, "force", "f", false, "Skip confirmation prompt")
}

func runListProfiles(cmd *cobra.Command, args []string) error {
	fs, err := store.NewFSStore(profilesDataDir)
	if err != nil {
		return fmt.Errorf("failed to open profile store: %w", err)
	}

	infos, err := fs.ListProfiles()
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	if len(infos) == 0 {
		fmt.Println("No profiles found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMETRIC\tACCURACY\tCREATED")
	fmt.Fprintln(w, "----\t------\t--------\t-------")

	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%.1f%%\t%s\n",
			info.Name,
			info.Metric,
			info.Accuracy*100,
			info.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()

	fmt.Printf("\nTotal profiles: %d\n", len(infos))
	return nil
}

func runCleanProfiles(cmd *cobra.Command, args []string) error {
	if olderThanDays <= 0 {
		return fmt.Errorf("--older-than must be positive")
	}

	fs, err := store.NewFSStore(profilesDataDir)
	if err != nil {
		return fmt.Errorf("failed to open profile store: %w", err)
	}

	infos, err := fs.ListProfiles()
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	var stale []store.ProfileInfo
	for _, info := range infos {
		if info.CreatedAt.Before(cutoff) {
			stale = append(stale, info)
		}
	}

	if len(stale) == 0 {
		fmt.Println("No profiles to clean.")
		return nil
	}

	fmt.Printf("Profiles older than %d days:\n", olderThanDays)
	for _, info := range stale {
		fmt.Printf("  %s (%s)\n", info.Name, info.CreatedAt.Format("2006-01-02"))
	}

	if !forceClean {
		fmt.Print("Delete these profiles? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(strings.ToLower(answer)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	deleted := 0
	for _, info := range stale {
		if err := fs.DeleteProfile(info.Name); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", info.Name, err)
			continue
		}
		deleted++
	}

	fmt.Printf("Deleted %d profile(s).\n", deleted)
	return nil
}
