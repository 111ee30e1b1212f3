// Package models defines the entries kept on a reading/watching list.
//
// There are two kinds of entry:
//   - [Book] : title, author, ISBN and a free-form comment
//   - [Video] : title, URL, duration and a free-form comment
//
// Both implement the sealed [Entry] interface, so code that handles "any entry"
// switches on the concrete type instead of relying on inheritance:
//
//	switch e := entry.(type) {
//	case models.Book:
//	case models.Video:
//	}
//
// Ids are assigned by the storage backend and are unique per [Kind] only; use [Ref] to name an entry across kinds.
// [Course] carries no storage and exists for validation-only operations.
package models
