package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
)

var (
	profileFirstName string
	profileLastName  string
	profileAge       string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your reading profile",
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update your profile",
	Long: `Updates your profile. All three fields are required; flags left
out keep their current value.`,
	RunE: runProfileSet,
}

var profilePhotoCmd = &cobra.Command{
	Use:   "photo [path]",
	Short: "Upload a profile picture",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfilePhoto,
}

func init() {
	profileSetCmd.Flags().StringVar(&profileFirstName, "first-name", "", "first name")
	profileSetCmd.Flags().StringVar(&profileLastName, "last-name", "", "last name")
	profileSetCmd.Flags().StringVar(&profileAge, "age", "", "age")
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profilePhotoCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	if services.Profile == nil {
		return errors.New("profile service not configured")
	}

	userID, err := currentUser()
	if err != nil {
		return err
	}

	profile, err := services.Profile.Load(cmd.Context(), userID)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	if profile == (domain.UserProfile{}) {
		cmd.Println("No profile yet. Set one with 'shelfwise profile set'.")
		return nil
	}

	cmd.Printf("Name:  %s\n", profile.DisplayName())
	cmd.Printf("Age:   %s\n", profile.Age)
	if profile.PhotoURL != "" {
		cmd.Printf("Photo: %s\n", profile.PhotoURL)
	}
	return nil
}

func runProfileSet(cmd *cobra.Command, _ []string) error {
	if services.Profile == nil {
		return errors.New("profile service not configured")
	}

	userID, err := currentUser()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	profile, err := services.Profile.Load(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	if profileFirstName != "" {
		profile.FirstName = profileFirstName
	}
	if profileLastName != "" {
		profile.LastName = profileLastName
	}
	if profileAge != "" {
		profile.Age = profileAge
	}

	if err := services.Profile.Save(ctx, userID, profile); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			for field, msg := range profile.Validate() {
				cmd.Printf("  %s: %s\n", field, msg)
			}
			return errors.New("profile incomplete")
		}
		return fmt.Errorf("saving profile: %w", err)
	}

	cmd.Println("Profile saved.")
	return nil
}

func runProfilePhoto(cmd *cobra.Command, args []string) error {
	if services.Profile == nil {
		return errors.New("profile service not configured")
	}

	userID, err := currentUser()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	url, err := services.Profile.UploadPhoto(cmd.Context(), userID, data)
	if err != nil {
		return fmt.Errorf("uploading photo: %w", err)
	}

	cmd.Printf("Photo uploaded: %s\n", url)
	return nil
}
