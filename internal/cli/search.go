// internal/cli/search.go
package docsearch

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mwiater/docsearch/internal/appconfig"
	"github.com/mwiater/docsearch/internal/logging"
	"github.com/mwiater/docsearch/internal/rag"
	"github.com/spf13/cobra"
)

var exportPath string

// searchCmd ranks the corpus chunks against a query.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Rank document chunks by word overlap with a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// A blank query is valid and ranks nothing.
		query := strings.TrimSpace(strings.Join(args, " "))

		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("config is nil")
		}
		return runSearch(cmd.OutOrStdout(), *cfg, query, exportPath)
	},
}

func runSearch(out io.Writer, cfg appconfig.Config, query, export string) error {
	corpus, err := rag.BuildCorpus(cfg)
	if err != nil {
		return err
	}

	queryID := uuid.NewString()
	results := corpus.Search(query, cfg.TopK)
	logging.LogQuery(queryID, query, results)

	if export = strings.TrimSpace(export); export != "" {
		if !filepath.IsAbs(export) {
			export = filepath.Join(corpus.StorageDir, export)
		}
		if err := rag.ExportResults(export, queryID, query, results); err != nil {
			return err
		}
		logging.LogEvent("[SEARCH] Exported %d results to %s", len(results), export)
	}

	if cfg.JSONMode {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintln(out, rag.FormatResults(results, cfg.PreviewChars))
	return nil
}

func init() {
	searchCmd.Flags().StringVar(&exportPath, "export", "", "write results as JSON to this file (relative paths land in the storage directory)")
	rootCmd.AddCommand(searchCmd)
}
