package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/lushenghe96vt/budgetcore/internal/analytics"
	"github.com/lushenghe96vt/budgetcore/internal/config"
	"github.com/lushenghe96vt/budgetcore/internal/rules"
	"github.com/lushenghe96vt/budgetcore/internal/service"
	"github.com/lushenghe96vt/budgetcore/internal/store"
	"github.com/lushenghe96vt/budgetcore/internal/subscription"
)

func main() {
	var (
		csvPath   = flag.String("import", "", "CSV statement to import")
		rulesPath = flag.String("rules", "", "category rules file (overrides config)")
		statement = flag.String("statement", "", "statement label for imported rows")
		overwrite = flag.Bool("overwrite", false, "re-categorize rows that already have a category")
		monthFlag = flag.String("month", "", "report month as YYYY-MM (default: all time)")
	)
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := store.RunMigrations(cfg.Database.Path, cfg.Database.MigrationsPath); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := store.NewTransactionRepo(db)

	ruleFile := cfg.Rules.Path
	if *rulesPath != "" {
		ruleFile = *rulesPath
	}
	catRules, err := loadRules(ruleFile)
	if err != nil {
		log.Fatalf("rules: %v", err)
	}

	if *csvPath != "" {
		ingester := &service.IngestService{
			SourceName:      cfg.Ingest.SourceName,
			UploadID:        uuid.NewString(),
			StatementMonth:  *statement,
			DefaultCurrency: cfg.Ingest.DefaultCurrency,
		}
		f, err := os.Open(*csvPath)
		if err != nil {
			log.Fatalf("import: %v", err)
		}
		res, err := ingester.ImportCSV(f)
		f.Close()
		if err != nil {
			log.Fatalf("import: %v", err)
		}
		for _, rowErr := range res.Errors {
			log.Printf("warn: %v", rowErr)
		}
		if err := repo.InsertBatch(ctx, res.Transactions); err != nil {
			log.Fatalf("save import: %v", err)
		}
		fmt.Printf("imported %d rows (%d skipped)\n", res.Imported, res.Skipped)
	}

	txns, err := repo.List(ctx)
	if err != nil {
		log.Fatalf("load transactions: %v", err)
	}

	rules.AutoCategorize(txns, catRules, *overwrite)
	subscription.DetectAndAnnotate(txns)

	if err := repo.SyncDerived(ctx, txns); err != nil {
		log.Fatalf("sync: %v", err)
	}

	filter := analytics.Filter{}
	if *monthFlag != "" {
		f, err := monthFilter(*monthFlag)
		if err != nil {
			log.Fatalf("month: %v", err)
		}
		filter = f
	}

	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		log.Printf("warn: using local timezone due to load failure: %v", err)
		loc = time.Local
	}

	if err := printReport(os.Stdout, cfg, txns, filter, loc); err != nil {
		log.Fatalf("report: %v", err)
	}
}

// loadRules falls back to an empty ruleset when no rule file exists, so
// a fresh install still imports and reports.
func loadRules(path string) (*rules.CategoryRules, error) {
	cr, err := rules.LoadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rules.Empty(), nil
		}
		return nil, err
	}
	return cr, nil
}

func monthFilter(value string) (analytics.Filter, error) {
	f, ok := analytics.ParseMonthFilter(value)
	if !ok {
		return analytics.Filter{}, fmt.Errorf("bad month %q, want YYYY-MM", value)
	}
	return f, nil
}
