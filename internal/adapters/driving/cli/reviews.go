package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
)

var (
	reviewRating  int
	reviewComment string
	reviewAll     bool
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews [book-id]",
	Short: "Show a book's reviews",
	Long: `Shows a book's reviews, newest first, with reviewer names resolved.
The first few reviews are shown by default; pass --all for the full
feed.`,
	Args: cobra.ExactArgs(1),
	RunE: runReviews,
}

var reviewsAddCmd = &cobra.Command{
	Use:   "add [book-id]",
	Short: "Write or replace your review of a book",
	Long: `Writes your review of a book. You have one review per book:
submitting again replaces the previous one.`,
	Args: cobra.ExactArgs(1),
	RunE: runReviewsAdd,
}

func init() {
	reviewsCmd.Flags().BoolVar(&reviewAll, "all", false, "show every review")
	reviewsAddCmd.Flags().IntVar(&reviewRating, "rating", 0, "star rating, 1 to 5")
	reviewsAddCmd.Flags().StringVar(&reviewComment, "comment", "", "review text")
	reviewsCmd.AddCommand(reviewsAddCmd)
	rootCmd.AddCommand(reviewsCmd)
}

func runReviews(cmd *cobra.Command, args []string) error {
	if services.Reviews == nil {
		return errors.New("review service not configured")
	}

	// Reviews are public; a signed-out reader just has no own review.
	userID := ""
	if services.Auth != nil {
		userID, _ = services.Auth.CurrentUserID()
	}

	feeds, sub, err := services.Reviews.SubscribeReviews(cmd.Context(), args[0], userID)
	if err != nil {
		return fmt.Errorf("subscribing to reviews: %w", err)
	}
	defer sub.Cancel()

	var feed domain.ReviewFeed
	select {
	case feed = <-feeds:
	case <-time.After(30 * time.Second):
		return errors.New("timed out loading reviews")
	}

	if len(feed.Reviews) == 0 {
		cmd.Println("No reviews yet.")
		return nil
	}

	visible := feed.Reviews
	if !reviewAll {
		window := domain.NewReviewWindow()
		visible = feed.Reviews[:window.Clamp(len(feed.Reviews))]
	}

	for _, review := range visible {
		rating := review.Rating
		if rating < 0 {
			rating = 0
		}
		if rating > 5 {
			rating = 5
		}
		stars := strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
		cmd.Printf("%s  %s\n", stars, review.DisplayName)
		cmd.Printf("    %s\n", review.Comment)
		if !review.Timestamp.IsZero() {
			cmd.Printf("    %s\n", review.Timestamp.Format("2 Jan 2006"))
		}
	}

	if hidden := len(feed.Reviews) - len(visible); hidden > 0 {
		cmd.Printf("\n%d more, pass --all to see everything.\n", hidden)
	}
	if feed.OwnReview != nil {
		cmd.Println("\nYou have reviewed this book.")
	}
	return nil
}

func runReviewsAdd(cmd *cobra.Command, args []string) error {
	if services.Reviews == nil {
		return errors.New("review service not configured")
	}

	userID, err := currentUser()
	if err != nil {
		return err
	}

	err = services.Reviews.SubmitReview(cmd.Context(), args[0], userID, reviewRating, reviewComment)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return errors.New("a review needs --rating between 1 and 5 and a non-empty --comment")
		}
		return fmt.Errorf("submitting review: %w", err)
	}

	cmd.Println("Review submitted.")
	return nil
}
