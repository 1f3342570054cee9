package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/news-chat-app/internal/client/api"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/chat"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/view"
)

// NewChatCommand creates the chat command group
func NewChatCommand(rootOpts *RootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Public chat",
	}
	cmd.PersistentFlags().StringVarP(&name, "name", "n", chat.DefaultUserName, "display name")

	cmd.AddCommand(&cobra.Command{
		Use:          "list",
		Short:        "Print the chat history",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChatList(rootOpts, name, cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Follow the chat and send lines read from stdin",
		Long: `Follow the chat, printing new messages as they arrive.

Every line read from stdin is sent as a message. A line of the form
"/delete <id>" deletes one of your own messages. The command ends on
EOF or interrupt.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChatWatch(rootOpts, name, cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:          "send <text>...",
		Short:        "Send a message",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChatSend(rootOpts, name, strings.Join(args, " "), cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:          "delete <id>",
		Short:        "Delete one of your messages",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runChatDelete(rootOpts, name, id, cmd)
		},
	})

	return cmd
}

func runChatList(opts *RootOptions, name string, cmd *cobra.Command) error {
	s, err := openShell(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	s.Chat.SetUserName(name)
	if err := s.Navigate(cmd.Context(), view.Chat); err != nil {
		return err
	}
	if s.Chat.State() == view.StateFailure {
		return fmt.Errorf("failed to load messages")
	}

	messages := s.Chat.Messages()
	return newPrinter(opts, cmd.OutOrStdout()).print(messages, func(w io.Writer) {
		for _, m := range messages {
			writeMessage(w, m, s.Chat.IsOwn(m))
		}
	})
}

func runChatSend(opts *RootOptions, name, text string, cmd *cobra.Command) error {
	s, err := openShell(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	s.Chat.SetUserName(name)
	if err := s.Navigate(cmd.Context(), view.Chat); err != nil {
		return err
	}

	s.Chat.SetInput(text)
	if err := s.Chat.Send(cmd.Context()); err != nil {
		return err
	}

	messages := s.Chat.Messages()
	if len(messages) == 0 {
		return nil
	}
	last := messages[len(messages)-1]
	return newPrinter(opts, cmd.OutOrStdout()).print(last, func(w io.Writer) {
		writeMessage(w, last, s.Chat.IsOwn(last))
	})
}

func runChatDelete(opts *RootOptions, name string, id uint, cmd *cobra.Command) error {
	s, err := openShell(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	s.Chat.SetUserName(name)
	if err := s.Navigate(cmd.Context(), view.Chat); err != nil {
		return err
	}

	if err := holdAndDelete(cmd.Context(), s.Chat, id); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "deleted message %d\n", id)
	return nil
}

// holdAndDelete performs the press-and-hold gesture on id and deletes it
// once the delete control is shown
func holdAndDelete(ctx context.Context, v *chat.View, id uint) error {
	if !v.Press(id) {
		return fmt.Errorf("message %d is not yours or does not exist", id)
	}
	defer v.Release()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.NewTimer(5 * time.Second)
	defer deadline.Stop()

	for {
		if active, ok := v.ActiveID(); ok && active == id {
			return v.Delete(ctx, id)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("message %d was not selected", id)
		case <-ticker.C:
		}
	}
}

func runChatWatch(opts *RootOptions, name string, cmd *cobra.Command) error {
	s, err := openShell(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	var (
		mu       sync.Mutex
		lastSeen uint
	)
	s.Chat.SetUserName(name)
	s.Chat.OnChange(func(messages []api.Message) {
		mu.Lock()
		defer mu.Unlock()
		for _, m := range messages {
			if m.ID > lastSeen {
				writeMessage(out, m, s.Chat.IsOwn(m))
				lastSeen = m.ID
			}
		}
	})

	if err := s.Navigate(ctx, view.Chat); err != nil {
		return err
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			handleChatLine(ctx, s.Chat, line, cmd.ErrOrStderr())
		}
	}
}

// handleChatLine sends a line or runs a /delete command. Request failures
// are reported through notifications; only local errors are printed.
func handleChatLine(ctx context.Context, v *chat.View, line string, errW io.Writer) {
	if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "/delete "); ok {
		id, err := parseID(rest)
		if err == nil {
			err = holdAndDelete(ctx, v, id)
		}
		if err != nil && !isRequestError(err) {
			fmt.Fprintln(errW, err)
		}
		return
	}

	v.SetInput(line)
	if err := v.Send(ctx); errors.Is(err, chat.ErrSendInFlight) {
		fmt.Fprintln(errW, err)
	}
}

func isRequestError(err error) bool {
	var se *api.StatusError
	return errors.As(err, &se) || errors.Is(err, context.Canceled)
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}
