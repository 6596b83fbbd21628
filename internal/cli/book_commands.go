package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/revbook/revbook-client/internal/api"
	"github.com/revbook/revbook-client/internal/config"
	"github.com/revbook/revbook-client/internal/entities"
)

// BooksCommand lists a page of the catalog.
type BooksCommand struct {
	Page  int
	Limit int
}

func NewBooksCommand() *BooksCommand {
	return &BooksCommand{}
}

func (cmd *BooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("books", flag.ExitOnError)

	fs.IntVar(&cmd.Page, "page", 1, "Page number (1-based)")
	fs.IntVar(&cmd.Limit, "limit", 10, "Books per page")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s books [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List the book catalog, newest first.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *BooksCommand) Run() error {
	env, err := NewEnv(config.NewConfig())
	if err != nil {
		return err
	}
	defer env.Close()

	env.Catalog.FetchBooks(context.Background(), cmd.Page, cmd.Limit)
	if err := catalogError(env); err != nil {
		return err
	}

	books := env.Catalog.State().Books
	if len(books) == 0 {
		fmt.Println("No books on this page.")
		return nil
	}

	fmt.Printf("📚 %d book(s) on page %d:\n", len(books), cmd.Page)
	for _, book := range books {
		printBookLine(book)
	}
	return nil
}

// BookCommand shows one book with its reviews.
type BookCommand struct {
	ID uint
}

func NewBookCommand() *BookCommand {
	return &BookCommand{}
}

func (cmd *BookCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)

	fs.UintVar(&cmd.ID, "id", 0, "Book id to look up")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s book -id <id>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Show one book with its reviews.\n\n")
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

func (cmd *BookCommand) Run() error {
	env, err := NewEnv(config.NewConfig())
	if err != nil {
		return err
	}
	defer env.Close()

	env.Catalog.FetchBook(context.Background(), cmd.ID)
	if err := catalogError(env); err != nil {
		return err
	}

	book := env.Catalog.State().SelectedBook
	fmt.Printf("📖 %s by %s (id %d)\n", book.Title, book.Author, book.ID)
	if book.Category != "" {
		fmt.Printf("   Category: %s\n", book.Category)
	}
	if book.Summary != "" {
		fmt.Printf("   %s\n", book.Summary)
	}
	if len(book.Reviews) == 0 {
		fmt.Println("   No reviews yet.")
		return nil
	}
	fmt.Printf("   %d review(s):\n", len(book.Reviews))
	for _, review := range book.Reviews {
		fmt.Printf("   - %s (user %d)\n", review.Notes, review.AuthorUserID)
	}
	return nil
}

// AddBookCommand creates a catalog entry.
type AddBookCommand struct {
	Title    string
	Author   string
	Category string
	Summary  string
	ImageURL string
}

func NewAddBookCommand() *AddBookCommand {
	return &AddBookCommand{}
}

func (cmd *AddBookCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add-book", flag.ExitOnError)

	fs.StringVar(&cmd.Title, "title", "", "Book title")
	fs.StringVar(&cmd.Author, "author", "", "Book author")
	fs.StringVar(&cmd.Category, "category", "", "Category")
	fs.StringVar(&cmd.Summary, "summary", "", "Short summary")
	fs.StringVar(&cmd.ImageURL, "image", "", "Cover image URL")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add-book [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Add a book to the catalog. Requires a signed-in session.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *AddBookCommand) Run() error {
	env, err := NewEnv(config.NewConfig())
	if err != nil {
		return err
	}
	defer env.Close()

	env.Catalog.CreateBook(context.Background(), api.BookParams{
		Title:    cmd.Title,
		Author:   cmd.Author,
		Category: cmd.Category,
		Summary:  cmd.Summary,
		ImageURL: cmd.ImageURL,
	})
	if err := catalogError(env); err != nil {
		return err
	}

	book := env.Catalog.State().Books[0]
	fmt.Printf("✅ Added \"%s\" by %s (id %d)\n", book.Title, book.Author, book.ID)
	return nil
}

// UpdateBookCommand updates fields of an existing entry.
type UpdateBookCommand struct {
	ID       uint
	Title    string
	Author   string
	Category string
	Summary  string
	ImageURL string
}

func NewUpdateBookCommand() *UpdateBookCommand {
	return &UpdateBookCommand{}
}

func (cmd *UpdateBookCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("update-book", flag.ExitOnError)

	fs.UintVar(&cmd.ID, "id", 0, "Book id to update")
	fs.StringVar(&cmd.Title, "title", "", "New title")
	fs.StringVar(&cmd.Author, "author", "", "New author")
	fs.StringVar(&cmd.Category, "category", "", "New category")
	fs.StringVar(&cmd.Summary, "summary", "", "New summary")
	fs.StringVar(&cmd.ImageURL, "image", "", "New cover image URL")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s update-book -id <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Update a book you own. Omitted fields keep their values.\n\n")
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

func (cmd *UpdateBookCommand) Run() error {
	env, err := NewEnv(config.NewConfig())
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := context.Background()
	env.Catalog.FetchBook(ctx, cmd.ID)
	if err := catalogError(env); err != nil {
		return err
	}

	env.Catalog.UpdateBook(ctx, api.BookParams{
		Title:    cmd.Title,
		Author:   cmd.Author,
		Category: cmd.Category,
		Summary:  cmd.Summary,
		ImageURL: cmd.ImageURL,
	}, cmd.ID)
	if err := catalogError(env); err != nil {
		return err
	}

	book := env.Catalog.State().SelectedBook
	fmt.Printf("✅ Updated \"%s\" by %s\n", book.Title, book.Author)
	return nil
}

func printBookLine(book entities.Book) {
	fmt.Printf("  %3d. %s by %s", book.ID, book.Title, book.Author)
	if book.Category != "" {
		fmt.Printf(" [%s]", book.Category)
	}
	fmt.Println()
}
