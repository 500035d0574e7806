// internal/cli/chat.go
package docsearch

import (
	"fmt"

	"github.com/mwiater/docsearch/internal/rag"
	"github.com/mwiater/docsearch/internal/tui"
	"github.com/spf13/cobra"
)

// chatCmd opens the interactive query loop over the loaded corpus.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Query the documents interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("config is nil")
		}
		corpus, err := rag.BuildCorpus(*cfg)
		if err != nil {
			return err
		}
		return tui.Run(*cfg, corpus, len(corpus.Chunks))
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
