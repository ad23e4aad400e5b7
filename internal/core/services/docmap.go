package services

import (
	"time"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driven"
)

// Field mapping between domain types and document-store maps. The store
// speaks JSON-like maps; depending on the adapter a timestamp comes back
// as time.Time (memory) or an RFC 3339 string (sqlite), so decoding
// accepts both.

func stringField(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func intField(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func timeField(data map[string]any, key string) time.Time {
	switch v := data[key].(type) {
	case time.Time:
		return v
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func savedBookFromDoc(doc driven.Document) domain.SavedBook {
	return domain.SavedBook{
		BookID:   doc.ID,
		Title:    stringField(doc.Data, "title"),
		Author:   stringField(doc.Data, "author"),
		ImageURL: stringField(doc.Data, "image"),
		AddedAt:  timeField(doc.Data, "addedAt"),
	}
}

func savedBookToDoc(book domain.BookRecord) map[string]any {
	return map[string]any{
		"title":   book.Title,
		"author":  book.AuthorLine(),
		"image":   book.ThumbnailURL,
		"addedAt": driven.ServerTimestamp,
	}
}

func reviewFromDoc(doc driven.Document) domain.Review {
	return domain.Review{
		UserID:    doc.ID,
		Rating:    intField(doc.Data, "rating"),
		Comment:   stringField(doc.Data, "comment"),
		Timestamp: timeField(doc.Data, "timestamp"),
	}
}

func reviewToDoc(userID string, rating int, comment string) map[string]any {
	return map[string]any{
		"userId":    userID,
		"rating":    rating,
		"comment":   comment,
		"timestamp": driven.ServerTimestamp,
	}
}

func profileFromDoc(data map[string]any) domain.UserProfile {
	return domain.UserProfile{
		FirstName: stringField(data, "firstName"),
		LastName:  stringField(data, "lastName"),
		Age:       stringField(data, "age"),
		PhotoURL:  stringField(data, "photoURL"),
	}
}

func profileToDoc(p domain.UserProfile) map[string]any {
	return map[string]any{
		"firstName": p.FirstName,
		"lastName":  p.LastName,
		"age":       p.Age,
		"photoURL":  p.PhotoURL,
	}
}
