package services

import "path"

// Collection layout of the remote document store. The paths mirror the
// production database:
//
//	users/{userID}                      profile documents
//	books_user/{userID}/mybooks/{bookID} saved-book markers
//	books/{bookID}/reviews/{userID}      reviews, keyed by reviewer
func userPath(userID string) string {
	return path.Join("users", userID)
}

func savedBooksPath(userID string) string {
	return path.Join("books_user", userID, "mybooks")
}

func savedBookPath(userID, bookID string) string {
	return path.Join(savedBooksPath(userID), bookID)
}

func reviewsPath(bookID string) string {
	return path.Join("books", bookID, "reviews")
}

func reviewPath(bookID, userID string) string {
	return path.Join(reviewsPath(bookID), userID)
}
