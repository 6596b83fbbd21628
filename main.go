package main

import (
	"fmt"
	"os"

	"github.com/revbook/revbook-client/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

// runnable is the common shape of every CLI command.
type runnable interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	commands := map[string]runnable{
		"register":      cli.NewRegisterCommand(),
		"login":         cli.NewLoginCommand(),
		"logout":        cli.NewLogoutCommand(),
		"whoami":        cli.NewWhoamiCommand(),
		"user":          cli.NewUserCommand(),
		"update-user":   cli.NewUpdateUserCommand(),
		"upload-avatar": cli.NewUploadAvatarCommand(),
		"books":         cli.NewBooksCommand(),
		"book":          cli.NewBookCommand(),
		"add-book":      cli.NewAddBookCommand(),
		"update-book":   cli.NewUpdateBookCommand(),
	}

	switch command {
	case "-h", "--help", "help":
		printUsage()

	case "version":
		fmt.Printf("revbook %s (%s)\n", Version, Commit)

	default:
		cmd, ok := commands[command]
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
			printUsage()
			os.Exit(1)
		}
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  register       Create an account and sign in\n")
	fmt.Fprintf(os.Stderr, "  login          Sign in with email and password\n")
	fmt.Fprintf(os.Stderr, "  logout         Sign out locally\n")
	fmt.Fprintf(os.Stderr, "  whoami         Validate the saved session and show the profile\n")
	fmt.Fprintf(os.Stderr, "  user           Look up a user's public profile by id\n")
	fmt.Fprintf(os.Stderr, "  update-user    Update profile fields\n")
	fmt.Fprintf(os.Stderr, "  upload-avatar  Upload a profile picture\n")
	fmt.Fprintf(os.Stderr, "  books          List the book catalog\n")
	fmt.Fprintf(os.Stderr, "  book           Show one book with its reviews\n")
	fmt.Fprintf(os.Stderr, "  add-book       Add a book to the catalog\n")
	fmt.Fprintf(os.Stderr, "  update-book    Update a book you own\n")
	fmt.Fprintf(os.Stderr, "  version        Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
