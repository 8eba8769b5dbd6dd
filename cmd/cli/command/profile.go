package command

// profile.go shows and updates the signed-in user's profile.

import (
	"fmt"

	"github.com/spf13/cobra"

	"animehub/internal/api/dto"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := api.Profile(cmd.Context())
		if err != nil {
			return fmt.Errorf("could not load profile: %w", err)
		}

		fmt.Printf("Username:  %s\n", profile.Username)
		fmt.Printf("Full name: %s\n", profile.FullName)
		fmt.Printf("Bio:       %s\n", profile.Bio)
		fmt.Printf("Avatar:    %s\n", profile.AvatarURL)
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.UpdateProfileRequest
		if cmd.Flags().Changed("username") {
			v, _ := cmd.Flags().GetString("username")
			req.Username = &v
		}
		if cmd.Flags().Changed("full-name") {
			v, _ := cmd.Flags().GetString("full-name")
			req.FullName = &v
		}
		if cmd.Flags().Changed("bio") {
			v, _ := cmd.Flags().GetString("bio")
			req.Bio = &v
		}
		if cmd.Flags().Changed("avatar") {
			v, _ := cmd.Flags().GetString("avatar")
			req.AvatarURL = &v
		}

		profile, err := api.UpdateProfile(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("could not update profile: %w", err)
		}

		fmt.Printf("✓ Profile updated for %s\n", profile.Username)
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)

	profileUpdateCmd.Flags().String("username", "", "Display username")
	profileUpdateCmd.Flags().String("full-name", "", "Full name")
	profileUpdateCmd.Flags().String("bio", "", "Short bio")
	profileUpdateCmd.Flags().String("avatar", "", "Avatar image URL")

	rootCmd.AddCommand(profileCmd)
}
