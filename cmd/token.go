package cmd

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"focusboard/services"
)

var tokenUser string

// tokenCmd mints a dev bearer token so the API can be exercised
// without the real auth collaborator.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development access token for a user id",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: No .env file found or failed to load")
		}
		token, err := services.CreateAccessToken(tokenUser)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id to embed in the token")
	_ = tokenCmd.MarkFlagRequired("user")
}
