package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aipalm/aipalm/internal/chat"
	"github.com/aipalm/aipalm/internal/i18n"
	"github.com/aipalm/aipalm/internal/llm"
	"github.com/aipalm/aipalm/internal/ui/components"
)

// replyWidth wraps printed replies.
const replyWidth = 80

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Talk with the AI guide",
	Long: `Ask the AI guide a question.

With a question argument the answer is printed and the command exits.
Without one, questions are read from stdin until EOF or an empty line.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().String("lang", "", "Language of the replies (default from config)")
}

func runChat(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	lang, _ := cmd.Flags().GetString("lang")
	if lang == "" {
		lang = e.cfg.Language
	}
	if !i18n.IsSupported(lang) {
		return fmt.Errorf("language %q is not supported", lang)
	}

	providers, err := e.providers(cmd.Context())
	if err != nil {
		return err
	}
	svc := chat.NewService(providers.Text, chat.DefaultConfig(), e.logger)
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	md := components.NewMarkdown(components.AutoStyle)

	if len(args) > 0 {
		question := strings.Join(args, " ")
		reply, err := svc.Complete(ctx, []llm.Message{{Role: llm.RoleUser, Content: question}}, lang)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, md.Render(reply, replyWidth))
		return nil
	}

	tr := i18n.New(lang)
	fmt.Fprintln(out, "☾", tr.T("chat.welcome"))
	fmt.Fprintln(out)

	var history []llm.Message
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "❯ ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			break
		}
		history = append(history, llm.Message{Role: llm.RoleUser, Content: question})
		reply := svc.Reply(ctx, history, lang)
		history = append(history, llm.Message{Role: llm.RoleAssistant, Content: reply})
		fmt.Fprintf(out, "\n%s\n\n", md.Render("☾ "+reply, replyWidth))
	}
	fmt.Fprintln(out)
	return scanner.Err()
}
