package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"focusboard/connection"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		gin.SetMode(gin.ReleaseMode)
		connection.StartServer()
	},
}
