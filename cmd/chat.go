package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/initializ/websearch/agent"
	"github.com/initializ/websearch/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the search agent",
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	// Log lines would tear the TUI, so they go nowhere unless asked for.
	logOut := io.Writer(os.Stderr)
	if interactive && !cfg.Log.Verbose {
		logOut = io.Discard
	}
	logger := newLogger(cfg, logOut)

	searcher, err := newSearcher(cfg, logger)
	if err != nil {
		return err
	}
	a := agent.New(searcher, logger)

	ctx := commandContext(cmd)

	if !interactive {
		return chatLoop(ctx, a, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	styles := tui.NewStyleSet(tui.DetectTheme(themeOverride))
	_, err = tea.NewProgram(tui.NewChatModel(ctx, a, styles, appVersion)).Run()
	return err
}

// chatLoop reads one question per line from in until EOF or an exit word.
func chatLoop(ctx context.Context, a tui.Answerer, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Web Search Agent initialized!")
	fmt.Fprintln(out, "Ask me any question and I'll search the web to find you accurate, up-to-date information.")
	fmt.Fprintln(out, "Type 'quit' or 'exit' to stop.")
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\nGoodbye!")
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())
		if agent.IsExit(question) {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}
		if question == "" {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fmt.Fprintln(out, "Searching...")
		fmt.Fprintf(out, "\nAgent: %s\n\n", a.Process(ctx, question))
	}
}
