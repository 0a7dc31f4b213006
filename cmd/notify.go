package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"focusboard/connection"
	"focusboard/services"
)

var notifyOwner string

// notifyCmd is the periodic-job consumer of the notification deriver:
// it loads one owner's tasks and prints the derived alerts.
var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Print the derived due-date notifications for an owner",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: No .env file found or failed to load")
		}

		ctx := context.Background()
		store := connection.NewStore(ctx)
		tasks, err := store.TasksByOwner(ctx, notifyOwner)
		if err != nil {
			return err
		}

		items := services.BuildNotifications(tasks, time.Now())
		if len(items) == 0 {
			fmt.Println("no due-date notifications")
			return nil
		}
		for _, n := range items {
			fmt.Printf("%-8s  %s  %s (%s)\n", n.Type, n.Date.Format("2006-01-02"), n.Message, n.TargetTaskID)
		}
		return nil
	},
}

func init() {
	notifyCmd.Flags().StringVar(&notifyOwner, "owner", "", "owner id to derive notifications for")
	_ = notifyCmd.MarkFlagRequired("owner")
}
