package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/revbook/revbook-client/internal/api"
	"github.com/revbook/revbook-client/internal/config"
)

// RegisterCommand creates an account and signs in.
type RegisterCommand struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func NewRegisterCommand() *RegisterCommand {
	return &RegisterCommand{}
}

func (cmd *RegisterCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)

	fs.StringVar(&cmd.FirstName, "first", "", "First name")
	fs.StringVar(&cmd.LastName, "last", "", "Last name")
	fs.StringVar(&cmd.Email, "email", "", "Email address")
	fs.StringVar(&cmd.Password, "password", "", "Password (at least 8 characters)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s register [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a RevBook account and sign in.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *RegisterCommand) Run() error {
	env, err := NewEnv(config.NewConfig())
	if err != nil {
		return err
	}
	defer env.Close()

	env.Sessions.Register(context.Background(), api.SignupParams{
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
		Email:     cmd.Email,
		Password:  cmd.Password,
	})
	if err := sessionError(env); err != nil {
		return err
	}

	state := env.Sessions.State()
	fmt.Printf("✅ Welcome, %s! You are signed in.\n", state.User.FullName())
	return nil
}

// LoginCommand authenticates and persists the session.
type LoginCommand struct {
	Email    string
	Password string
}

func NewLoginCommand() *LoginCommand {
	return &LoginCommand{}
}

func (cmd *LoginCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Email address")
	fs.StringVar(&cmd.Password, "password", "", "Password")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s login [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Sign in to RevBook. The session persists until you log out.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *LoginCommand) Run() error {
	env, err := NewEnv(config.NewConfig())
	if err != nil {
		return err
	}
	defer env.Close()

	env.Sessions.Login(context.Background(), cmd.Email, cmd.Password)
	if err := sessionError(env); err != nil {
		return err
	}

	state := env.Sessions.State()
	fmt.Printf("✅ Signed in as %s <%s>\n", state.User.FullName(), state.User.Email)
	return nil
}

// LogoutCommand erases the persisted session.
type LogoutCommand struct{}

func NewLogoutCommand() *LogoutCommand {
	return &LogoutCommand{}
}

func (cmd *LogoutCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s logout\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Sign out locally. No request is sent to the server.\n")
	}

	return fs.Parse(args)
}

func (cmd *LogoutCommand) Run() error {
	env, err := NewEnv(config.NewConfig())
	if err != nil {
		return err
	}
	defer env.Close()

	env.Sessions.Logout()
	fmt.Println("✅ Signed out.")
	return nil
}

// WhoamiCommand restores and prints the current session.
type WhoamiCommand struct{}

func NewWhoamiCommand() *WhoamiCommand {
	return &WhoamiCommand{}
}

func (cmd *WhoamiCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s whoami\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Validate the saved session and print the signed-in profile.\n")
	}

	return fs.Parse(args)
}

func (cmd *WhoamiCommand) Run() error {
	env, err := NewEnv(config.NewConfig())
	if err != nil {
		return err
	}
	defer env.Close()

	env.Sessions.LoadSession(context.Background())

	state := env.Sessions.State()
	if !state.IsAuthenticated {
		if state.Error != "" {
			return fmt.Errorf("%s", state.Error)
		}
		fmt.Println("Not signed in.")
		return nil
	}

	user := state.User
	fmt.Printf("👤 %s <%s> (id %d)\n", user.FullName(), user.Email, user.ID)
	fmt.Printf("   Avatar: %s\n", user.AvatarURL)
	return nil
}
