package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/revbook/revbook-client/internal/api"
	"github.com/revbook/revbook-client/internal/config"
)

// UserCommand fetches another user's public profile by id.
type UserCommand struct {
	ID uint
}

func NewUserCommand() *UserCommand {
	return &UserCommand{}
}

func (cmd *UserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("user", flag.ExitOnError)

	fs.UintVar(&cmd.ID, "id", 0, "User id to look up")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s user -id <id>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Look up a user's public profile.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.ID == 0 {
		return fmt.Errorf("-id is required")
	}
	return nil
}

func (cmd *UserCommand) Run() error {
	env, err := NewEnv(config.NewConfig())
	if err != nil {
		return err
	}
	defer env.Close()

	env.Sessions.FetchUserByID(context.Background(), cmd.ID)
	if err := sessionError(env); err != nil {
		return err
	}

	user := env.Sessions.State().ViewedUser
	fmt.Printf("👤 %s (id %d)\n", user.FullName(), user.ID)
	fmt.Printf("   Avatar: %s\n", user.AvatarURL)
	fmt.Printf("   Joined: %s\n", user.CreatedAt.Format("2006-01-02"))
	return nil
}

// UpdateUserCommand updates the signed-in user's profile fields.
type UpdateUserCommand struct {
	FirstName string
	LastName  string
	Email     string
	AvatarURL string
}

func NewUpdateUserCommand() *UpdateUserCommand {
	return &UpdateUserCommand{}
}

func (cmd *UpdateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("update-user", flag.ExitOnError)

	fs.StringVar(&cmd.FirstName, "first", "", "New first name")
	fs.StringVar(&cmd.LastName, "last", "", "New last name")
	fs.StringVar(&cmd.Email, "email", "", "New email address")
	fs.StringVar(&cmd.AvatarURL, "avatar", "", "New avatar URL")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s update-user [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Update profile fields. Omitted fields keep their values.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *UpdateUserCommand) Run() error {
	env, err := NewEnv(config.NewConfig())
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := context.Background()
	env.Sessions.LoadSession(ctx)
	state := env.Sessions.State()
	if !state.IsAuthenticated {
		return fmt.Errorf("you must be signed in to update your profile")
	}

	env.Sessions.UpdateUser(ctx, api.UserUpdate{
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
		Email:     cmd.Email,
		AvatarURL: cmd.AvatarURL,
	}, state.User.ID)
	if err := sessionError(env); err != nil {
		return err
	}

	user := env.Sessions.State().User
	fmt.Printf("✅ Profile updated: %s <%s>\n", user.FullName(), user.Email)
	return nil
}

// UploadAvatarCommand uploads a picture and saves its URL on the
// profile.
type UploadAvatarCommand struct {
	FilePath string
}

func NewUploadAvatarCommand() *UploadAvatarCommand {
	return &UploadAvatarCommand{}
}

func (cmd *UploadAvatarCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("upload-avatar", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the image file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s upload-avatar -file <path>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Upload a profile picture and set it as your avatar.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.FilePath == "" {
		return fmt.Errorf("-file is required")
	}
	return nil
}

func (cmd *UploadAvatarCommand) Run() error {
	env, err := NewEnv(config.NewConfig())
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := context.Background()
	env.Sessions.LoadSession(ctx)
	state := env.Sessions.State()
	if !state.IsAuthenticated {
		return fmt.Errorf("you must be signed in to upload an avatar")
	}

	file, err := os.Open(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	env.Sessions.UploadAvatar(ctx, filepath.Base(cmd.FilePath), file)
	if err := sessionError(env); err != nil {
		return err
	}

	url := env.Sessions.State().AvatarURL
	fmt.Printf("🖼️  Uploaded: %s\n", url)

	env.Sessions.UpdateUser(ctx, api.UserUpdate{AvatarURL: url}, state.User.ID)
	if err := sessionError(env); err != nil {
		return err
	}

	fmt.Println("✅ Avatar saved to your profile.")
	return nil
}
