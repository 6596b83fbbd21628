package catalog

import "github.com/revbook/revbook-client/internal/entities"

// reduce is the pure transition function for the catalog. Each branch
// returns a fresh snapshot; the books slice is copied before any
// element is replaced so earlier snapshots stay valid.
func reduce(state State, ev Event) State {
	switch ev.Kind {
	case EventBooksLoading:
		state.BooksLoad = Loading
		return state

	case EventBooksFetched:
		state.Books = ev.Books
		state.BooksLoad = Loaded
		state.Error = ""
		return state

	case EventBookCreated:
		// Prepend: newest entries always surface at index 0.
		next := make([]entities.Book, 0, len(state.Books)+1)
		next = append(next, *ev.Book)
		next = append(next, state.Books...)
		state.Books = next
		state.BooksLoad = Loaded
		state.Error = ""
		return state

	case EventBookFetched:
		state.SelectedBook = ev.Book
		state.Error = ""
		return state

	case EventBookUpdated:
		if state.Books != nil {
			next := make([]entities.Book, len(state.Books))
			copy(next, state.Books)
			for i := range next {
				if next[i].ID == ev.Book.ID {
					next[i] = *ev.Book
				}
			}
			state.Books = next
		}
		if state.SelectedBook != nil && state.SelectedBook.ID == ev.Book.ID {
			state.SelectedBook = ev.Book
		}
		state.Error = ""
		return state

	case EventBookCleared:
		state.SelectedBook = nil
		return state

	case EventBooksCleared:
		state.Books = nil
		state.BooksLoad = NotLoaded
		state.SelectedBook = nil
		state.Error = ""
		return state

	case EventFailed:
		state.Error = ev.Message
		if state.BooksLoad == Loading {
			// A failed fetch leaves the collection untouched.
			if state.Books == nil {
				state.BooksLoad = NotLoaded
			} else {
				state.BooksLoad = Loaded
			}
		}
		return state

	case EventErrorCleared:
		state.Error = ""
		return state

	default:
		return state
	}
}
