// Command dedup is the offline identity correction batch. It scans the
// identity stores for rows sharing a natural key, keeps the most recent row
// of each group and deletes the rest. Without -commit it only reports what a
// committed run would delete.
//
// Run it during a maintenance window: it assumes no concurrent writers.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"skillbridge/config"
	"skillbridge/internal/database"
	"skillbridge/internal/identity"
	"skillbridge/internal/remote"
	"skillbridge/internal/storage/postgres"

	"go.uber.org/zap"
)

func main() {
	var (
		commit  = flag.Bool("commit", false, "apply deletions (default is a dry run)")
		tables  = flag.String("tables", "accounts,residents,remote-residents", "comma-separated stores to scan")
		cross   = flag.Bool("cross", true, "cross-reference local and remote resident emails")
		timeout = flag.Duration("timeout", 10*time.Minute, "overall run timeout")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	dbPool, err := database.NewConnectionPool(cfg.DB, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	remoteClient := remote.NewClient(cfg.Remote, logger)

	accountRepo := postgres.NewAccountRepo(dbPool, logger)
	residentRepo := postgres.NewResidentRepo(dbPool, logger)

	localAccounts := &identity.LocalAccounts{Repo: accountRepo}
	localResidents := &identity.LocalResidents{Repo: residentRepo}
	remoteResidents := &identity.RemoteResidents{Table: remoteClient.Residents()}

	stores := map[string]identity.DupStore{
		"accounts":         localAccounts,
		"residents":        localResidents,
		"remote-residents": remoteResidents,
	}

	// Once a store is clean the unique constraint can finally go on; printed
	// after a committed run so the operator can apply it in the same window.
	remediation := map[string]string{
		"accounts":  "CREATE UNIQUE INDEX IF NOT EXISTS accounts_username_key ON accounts (username);",
		"residents": "CREATE UNIQUE INDEX IF NOT EXISTS residents_email_key ON residents (email);",
	}

	deduper := identity.NewDeduper(logger)
	failed := false
	var resolved []string

	for _, name := range strings.Split(*tables, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		store, ok := stores[name]
		if !ok {
			logger.Fatal("unknown store", zap.String("store", name))
		}

		// Report pass first so the log shows the full picture even when a
		// later delete fails.
		groups, err := deduper.FindDuplicates(ctx, store)
		if err != nil {
			logger.Error("scan failed", zap.String("store", store.Name()), zap.Error(err))
			failed = true
			continue
		}
		fmt.Printf("%s: %d duplicate group(s)\n", store.Name(), len(groups))
		for _, group := range groups {
			ids := make([]int64, 0, len(group.Records))
			for _, rec := range group.Records {
				ids = append(ids, rec.ID)
			}
			fmt.Printf("  %-40s ids=%v\n", group.Key, ids)
		}
		if len(groups) == 0 {
			continue
		}

		outcomes, err := deduper.ResolveDuplicates(ctx, store, *commit)
		if err != nil {
			logger.Error("resolve failed", zap.String("store", store.Name()), zap.Error(err))
			failed = true
			continue
		}
		verb := "would delete"
		if *commit {
			verb = "deleted"
		}
		cleanly := len(outcomes) > 0
		for _, outcome := range outcomes {
			fmt.Printf("  %-40s keep=%d %s=%v", outcome.Key, outcome.Kept.ID, verb, outcome.Deleted)
			if len(outcome.Failed) > 0 {
				fmt.Printf(" FAILED=%v", outcome.Failed)
				failed = true
				cleanly = false
			}
			fmt.Println()
		}
		if *commit && cleanly {
			resolved = append(resolved, name)
		}
	}

	if len(resolved) > 0 {
		fmt.Println("remediation SQL (apply once the stores stay clean):")
		for _, name := range resolved {
			if stmt, ok := remediation[name]; ok {
				fmt.Printf("  %s\n", stmt)
			}
		}
	}

	if *cross {
		report, err := deduper.CrossReference(ctx, localResidents, remoteResidents)
		if err != nil {
			logger.Error("cross-reference failed", zap.Error(err))
			failed = true
		} else {
			fmt.Printf("cross-reference (local vs remote residents): common=%d local-only=%d remote-only=%d\n",
				report.Common, report.AOnly, report.BOnly)
			if len(report.AOnlySample) > 0 {
				fmt.Printf("  local-only sample:  %v\n", report.AOnlySample)
			}
			if len(report.BOnlySample) > 0 {
				fmt.Printf("  remote-only sample: %v\n", report.BOnlySample)
			}
		}
	}

	if !*commit {
		fmt.Println("dry run: re-run with -commit to apply deletions")
	}
	if failed {
		os.Exit(1)
	}
}
