// internal/cli/ingest.go
package docsearch

import (
	"fmt"
	"io"

	"github.com/k0kubun/pp"
	"github.com/mwiater/docsearch/internal/appconfig"
	"github.com/mwiater/docsearch/internal/rag"
	"github.com/spf13/cobra"
)

// ingestCmd loads and chunks the data directory and reports what it found.
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load and chunk the documents in the data directory",
	Long:  `Create the data and storage directories if needed, load every file with a configured extension below the data directory, split them into overlapping chunks and print a summary.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("config is nil")
		}
		return runIngest(cmd.OutOrStdout(), *cfg)
	},
}

func runIngest(out io.Writer, cfg appconfig.Config) error {
	corpus, err := rag.BuildCorpus(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, rag.FormatSummary(corpus, cfg.PreviewChars))
	if cfg.Debug && len(corpus.Chunks) > 0 {
		fmt.Fprintln(out)
		pp.Fprintln(out, corpus.Chunks[0])
	}
	return nil
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
