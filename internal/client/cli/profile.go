package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/news-chat-app/internal/client/view"
)

// ProfileSaveOptions holds flags for profile save
type ProfileSaveOptions struct {
	Nickname string
	Bio      string
	Avatar   string
}

// ErrNoProfile is returned by profile show before the first save
var ErrNoProfile = errors.New("profile not created yet, run 'profile save'")

// NewProfileCommand creates the profile command group
func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Your profile",
	}

	cmd.AddCommand(&cobra.Command{
		Use:          "show",
		Short:        "Show your profile",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileShow(rootOpts, cmd)
		},
	})

	saveOpts := &ProfileSaveOptions{}
	save := &cobra.Command{
		Use:   "save",
		Short: "Create or update your profile",
		Long: `Create or update your profile.

Flags that are not given keep their current value.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileSave(rootOpts, saveOpts, cmd)
		},
	}
	save.Flags().StringVar(&saveOpts.Nickname, "nickname", "", "nickname")
	save.Flags().StringVar(&saveOpts.Bio, "bio", "", "about you")
	save.Flags().StringVar(&saveOpts.Avatar, "avatar", "", "avatar image file (max 200 KB)")
	cmd.AddCommand(save)

	return cmd
}

func runProfileShow(opts *RootOptions, cmd *cobra.Command) error {
	s, err := openShell(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Navigate(cmd.Context(), view.Profile); err != nil {
		return err
	}

	p, ok := s.Profile.Profile()
	if !ok {
		if s.Profile.State() == view.StateFailure {
			return fmt.Errorf("failed to load profile")
		}
		return ErrNoProfile
	}

	return newPrinter(opts, cmd.OutOrStdout()).print(p, func(w io.Writer) {
		writeProfile(w, p)
	})
}

func runProfileSave(opts *RootOptions, saveOpts *ProfileSaveOptions, cmd *cobra.Command) error {
	s, err := openShell(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Navigate(cmd.Context(), view.Profile); err != nil {
		return err
	}

	s.Profile.Edit()
	flags := cmd.Flags()
	if flags.Changed("nickname") {
		s.Profile.SetNickname(saveOpts.Nickname)
	}
	if flags.Changed("bio") {
		s.Profile.SetBio(saveOpts.Bio)
	}
	if saveOpts.Avatar != "" {
		if err := s.Profile.AttachAvatar(saveOpts.Avatar); err != nil {
			return err
		}
	}

	if err := s.Profile.Save(cmd.Context()); err != nil {
		return err
	}

	p, _ := s.SavedProfile()
	return newPrinter(opts, cmd.OutOrStdout()).print(p, func(w io.Writer) {
		writeProfile(w, p)
	})
}
