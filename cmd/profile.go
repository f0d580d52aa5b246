package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kdiomande/bankview/model"
)

func profileCommands(app *appInstance) *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "show and update the user profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.session.FetchProfile(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s>\n", user.FullName(), user.Email)
			if user.PhoneNumber != "" {
				fmt.Printf("  phone: %s\n", user.PhoneNumber)
			}
			return nil
		},
	}

	var firstName, lastName, phone string
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			current := app.session.User()
			if current == nil {
				return fmt.Errorf("not logged in")
			}

			update := model.User{
				ID:          current.ID,
				Email:       current.Email,
				FirstName:   current.FirstName,
				LastName:    current.LastName,
				PhoneNumber: current.PhoneNumber,
			}
			if firstName != "" {
				update.FirstName = firstName
			}
			if lastName != "" {
				update.LastName = lastName
			}
			if phone != "" {
				update.PhoneNumber = phone
			}

			updated, err := app.session.UpdateProfile(cmd.Context(), update)
			if err != nil {
				return err
			}
			fmt.Printf("profile updated: %s\n", updated.FullName())
			return nil
		},
	}
	updateCmd.Flags().StringVar(&firstName, "first-name", "", "new first name")
	updateCmd.Flags().StringVar(&lastName, "last-name", "", "new last name")
	updateCmd.Flags().StringVar(&phone, "phone", "", "new phone number")

	var currentPassword, newPassword string
	passwdCmd := &cobra.Command{
		Use:   "passwd",
		Short: "change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.session.ChangePassword(cmd.Context(), currentPassword, newPassword); err != nil {
				return err
			}
			fmt.Println("password changed")
			return nil
		},
	}
	passwdCmd.Flags().StringVar(&currentPassword, "current", "", "current password")
	passwdCmd.Flags().StringVar(&newPassword, "new", "", "new password")
	_ = passwdCmd.MarkFlagRequired("current")
	_ = passwdCmd.MarkFlagRequired("new")

	profileCmd.AddCommand(updateCmd, passwdCmd)
	return profileCmd
}
