// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/news-engine/internal/enrich"
	"github.com/pdiddy/news-engine/internal/userstore"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts, preferences, and activity",
	Long: `User manages the local account store. Accounts hold default fetch
preferences (country, category, language, summary style) and activity
counters. Use the global --user flag on other commands to apply a stored
profile.`,
}

var userRegisterCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account with default preferences",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		store, err := userstore.NewStore(userStoreConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Register(args[0], email); err != nil {
			return err
		}
		fmt.Printf("Registered %s\n", args[0])
		return nil
	},
}

var userPrefsCmd = &cobra.Command{
	Use:   "prefs <username>",
	Short: "Show or update a user's default preferences",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := userstore.NewStore(userStoreConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		username := args[0]
		prefs, err := store.Preferences(username)
		if err != nil {
			return err
		}

		changed := false
		if cmd.Flags().Changed("country") {
			prefs.DefaultCountry, _ = cmd.Flags().GetString("country")
			changed = true
		}
		if cmd.Flags().Changed("category") {
			prefs.DefaultCategory, _ = cmd.Flags().GetString("category")
			changed = true
		}
		if cmd.Flags().Changed("language") {
			prefs.DefaultLanguage, _ = cmd.Flags().GetString("language")
			changed = true
		}
		if cmd.Flags().Changed("style") {
			styleName, _ := cmd.Flags().GetString("style")
			if _, err := enrich.ParseStyle(styleName); err != nil {
				return err
			}
			prefs.SummaryStyle = styleName
			changed = true
		}

		if changed {
			if err := store.UpdatePreferences(username, prefs); err != nil {
				return err
			}
		}

		fmt.Printf("Preferences for %s:\n", username)
		fmt.Printf("  country:   %s\n", prefs.DefaultCountry)
		fmt.Printf("  category:  %s\n", prefs.DefaultCategory)
		fmt.Printf("  language:  %s\n", prefs.DefaultLanguage)
		fmt.Printf("  style:     %s\n", prefs.SummaryStyle)
		return nil
	},
}

var userStatsCmd = &cobra.Command{
	Use:   "stats <username>",
	Short: "Show a user's activity counters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := userstore.NewStore(userStoreConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := store.Stats(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Member since:          %s\n", stats.MemberSince.Format("2006-01-02"))
		fmt.Printf("Summaries generated:   %d\n", stats.SummariesGenerated)
		fmt.Printf("Fact checks performed: %d\n", stats.FactChecksPerformed)
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete an account and everything stored about it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := userstore.NewStore(userStoreConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := userstore.NewStore(userStoreConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		names, err := store.Usernames()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No accounts registered.")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	userRegisterCmd.Flags().String("email", "", "contact email for the account")

	userPrefsCmd.Flags().String("country", "", "set the default country")
	userPrefsCmd.Flags().String("category", "", "set the default category")
	userPrefsCmd.Flags().String("language", "", "set the default language")
	userPrefsCmd.Flags().String("style", "", "set the default summary style")

	userCmd.AddCommand(userRegisterCmd, userPrefsCmd, userStatsCmd, userDeleteCmd, userListCmd)
	rootCmd.AddCommand(userCmd)
}
