package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mrsyedhasan/congresstrading/internal/collect"
	"github.com/mrsyedhasan/congresstrading/internal/config"
	"github.com/mrsyedhasan/congresstrading/internal/database"
	"github.com/mrsyedhasan/congresstrading/internal/server"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "congresstrading",
	Short:   "Congressional stock trade tracker",
	Long:    "congresstrading collects congressional stock trade disclosures, normalizes them into a local database, and serves them over a JSON API.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// A local .env may carry the Congress API key.
		_ = godotenv.Load()

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cleanCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("congresstrading", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/congresstrading/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure sources and the Congress API key variable.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		cutoff := time.Now().UTC().AddDate(0, 0, -30).Format(time.RFC3339)
		stats, err := db.GetStats(cutoff)
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Printf("Database: %s\n\n", db.Path())
		fmt.Println("Trades:")
		fmt.Printf("  Total: %d\n", stats.TotalTrades)
		fmt.Printf("  Last 30 days: %d\n", stats.RecentTradesCount)
		fmt.Println("\nMembers:")
		fmt.Printf("  Total: %d\n", stats.TotalMembers)
		fmt.Println("\nCommittees:")
		fmt.Printf("  Total: %d\n", stats.TotalCommittees)

		sources, err := db.TradeSources()
		if err != nil {
			return fmt.Errorf("listing trade sources: %w", err)
		}
		if len(sources) > 0 {
			fmt.Println("\nTrades by source:")
			printSorted(sources)
		}
		return nil
	},
}

// --- collect command ---

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect trades and rosters from configured sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Println("Collecting congressional trading data...")

		collector, err := collect.NewCollector(cfg, db)
		if err != nil {
			return err
		}
		result := collector.Collect(cmd.Context())

		fmt.Println("\nCollection complete:")
		fmt.Printf("  Records found: %d\n", result.Found)
		fmt.Printf("  Trades stored: %d\n", result.Stored)
		fmt.Printf("  Rejected: %d\n", result.Rejected)
		fmt.Printf("  Failed: %d\n", result.Failed)
		fmt.Printf("  Members created: %d\n", result.MembersCreated)
		fmt.Printf("  Members updated: %d\n", result.MembersUpdated)
		fmt.Printf("  Committees created: %d\n", result.CommitteesCreated)

		if len(result.Sources) > 0 {
			fmt.Println("\nTrades by source:")
			printSorted(result.Sources)
		}
		return nil
	},
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the JSON API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.New(cfg, db).Serve(ctx, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (default from config)")
}

// --- clean command ---

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove suspect trade rows",
}

var cleanSourceCmd = &cobra.Command{
	Use:   "source [label]",
	Short: "Delete all trades from a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.DeleteTradesBySource(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d trade(s) from source %q\n", n, args[0])
		return nil
	},
}

var cleanFutureCmd = &cobra.Command{
	Use:   "future",
	Short: "Delete trades dated in the future",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		now := time.Now().UTC().Format(time.RFC3339)
		n, err := db.DeleteFutureTrades(now)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d future-dated trade(s)\n", n)
		return nil
	},
}

var cleanDescriptionCmd = &cobra.Command{
	Use:   "description [pattern...]",
	Short: "Delete trades whose description contains any pattern",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.DeleteTradesByDescription(args)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d trade(s) matching %s\n", n, strings.Join(args, ", "))
		return nil
	},
}

func init() {
	cleanCmd.AddCommand(cleanSourceCmd)
	cleanCmd.AddCommand(cleanFutureCmd)
	cleanCmd.AddCommand(cleanDescriptionCmd)
}

// printSorted prints a count map sorted by count descending.
func printSorted(counts map[string]int) {
	type kv struct {
		key string
		val int
	}
	var sorted []kv
	for k, v := range counts {
		sorted = append(sorted, kv{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].val > sorted[j].val })
	for _, s := range sorted {
		fmt.Printf("  %s: %d\n", s.key, s.val)
	}
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "congresstrading.db")
	return database.Open(dbPath)
}
