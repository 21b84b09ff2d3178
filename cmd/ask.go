package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/initializ/websearch/agent"
	"github.com/initializ/websearch/client"
	"github.com/initializ/websearch/search"
)

var (
	askJSON      bool
	askServer    string
	askProxyBase string
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a single question",
	Long: "Ask searches the web for a question and prints an answer. With --server the " +
		"question is sent to a running websearch front end instead.",
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the raw result list as JSON")
	askCmd.Flags().StringVar(&askServer, "server", "", "page URL of a running websearch front end")
	askCmd.Flags().StringVar(&askProxyBase, "proxy-base", "", "proxy base path the front end is mounted under")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, os.Stderr)
	out := cmd.OutOrStdout()
	ctx := commandContext(cmd)

	var results []search.Result
	if askServer != "" {
		c, err := client.New(client.PageContext{PageURL: askServer, ProxyBasePath: askProxyBase}, nil)
		if err != nil {
			return fmt.Errorf("creating client: %w", err)
		}
		results, err = c.Search(ctx, question)
		if err != nil {
			return err
		}
	} else {
		searcher, err := newSearcher(cfg, logger)
		if err != nil {
			return err
		}
		if !askJSON {
			fmt.Fprintln(out, agent.New(searcher, logger).Process(ctx, question))
			return nil
		}
		results = searcher.Search(ctx, question)
	}

	if askJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"results": results})
	}
	fmt.Fprintln(out, agent.Summarize(question, results))
	return nil
}
