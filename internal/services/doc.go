// Package services implements the application logic of the reading list on top of the storage port.
//
// # Library Service
//
// [LibraryService] is the single entry point used by the CLI, the interactive shell and the list browser.
// It validates input against a [Policy] and then delegates to a [repositories.BookStore] and a [repositories.VideoStore],
// which may be the same backend.
//
// # Required Fields
//
// A [Policy] lists, per entry kind, the fields that must be non-empty. The title is always required.
// The default policy requires a title and author for books and only a title for videos:
//
//	[policy]
//	book_required = ["title", "author"]
//	video_required = ["title"]
//
// # Error Handling
//
// Every operation returns an error instead of a success flag; nil means the operation succeeded.
//   - [shared.ErrMissingField] : a required field was empty (also matches [shared.ErrInvalidInput])
//   - [shared.ErrDuplicateTitle] : the backend rejected a second entry with the same title
//   - [shared.ErrNotFound] : no entry with the given id
//   - [shared.ErrStoreClosed] : the store was closed
//   - [shared.ErrStorage] : any other backend fault
package services
