package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/news-chat-app/internal/client/view"
)

// NewsCreateOptions holds flags for news create
type NewsCreateOptions struct {
	Title   string
	Content string
	Image   string
}

// NewNewsCommand creates the news command group
func NewNewsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "News feed",
	}

	cmd.AddCommand(&cobra.Command{
		Use:          "list",
		Short:        "List news, newest first",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNewsList(rootOpts, cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:          "show <id>",
		Short:        "Show a single post",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runNewsShow(rootOpts, id, cmd)
		},
	})

	createOpts := &NewsCreateOptions{}
	create := &cobra.Command{
		Use:          "create",
		Short:        "Publish a post",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNewsCreate(rootOpts, createOpts, cmd)
		},
	}
	create.Flags().StringVarP(&createOpts.Title, "title", "t", "", "post title")
	create.Flags().StringVarP(&createOpts.Content, "content", "m", "", "post text")
	create.Flags().StringVarP(&createOpts.Image, "image", "i", "", "image file (max 200 KB)")
	cmd.AddCommand(create)

	return cmd
}

func runNewsList(opts *RootOptions, cmd *cobra.Command) error {
	s, err := openShell(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Navigate(cmd.Context(), view.News); err != nil {
		return err
	}

	posts := s.News.Posts()
	return newPrinter(opts, cmd.OutOrStdout()).print(posts, func(w io.Writer) {
		if len(posts) == 0 {
			fmt.Fprintln(w, "Пока нет новостей")
			return
		}
		for _, p := range posts {
			writeNewsLine(w, p)
		}
	})
}

func runNewsShow(opts *RootOptions, id uint, cmd *cobra.Command) error {
	s, err := openShell(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Navigate(cmd.Context(), view.News); err != nil {
		return err
	}
	if err := s.News.Select(id); err != nil {
		return fmt.Errorf("news %d: %w", id, err)
	}

	post, _ := s.News.Selected()
	return newPrinter(opts, cmd.OutOrStdout()).print(post, func(w io.Writer) {
		writeNewsPost(w, post)
	})
}

func runNewsCreate(opts *RootOptions, createOpts *NewsCreateOptions, cmd *cobra.Command) error {
	s, err := openShell(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Navigate(cmd.Context(), view.News); err != nil {
		return err
	}

	s.News.OpenCreate()
	s.News.SetTitle(createOpts.Title)
	s.News.SetContent(createOpts.Content)
	if createOpts.Image != "" {
		if err := s.News.AttachImage(createOpts.Image); err != nil {
			return err
		}
	}

	if err := s.News.Create(cmd.Context()); err != nil {
		return err
	}

	posts := s.News.Posts()
	if len(posts) == 0 {
		return nil
	}
	return newPrinter(opts, cmd.OutOrStdout()).print(posts[0], func(w io.Writer) {
		writeNewsLine(w, posts[0])
	})
}
