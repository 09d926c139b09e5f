package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"go-leadscout-automation/internal/store"
)

// Read-only API over the lead store, for dashboards that do not want to parse
// the CSV themselves.
func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	outputPath := os.Getenv("LEADS_OUTPUT_PATH")
	if outputPath == "" {
		outputPath = "linkedin_leads.csv"
	}

	leadStore := store.NewLeadStore(outputPath)

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		_, count := leadStore.Load()
		c.JSON(http.StatusOK, gin.H{
			"message": "LinkedIn Lead Scout API is running!",
			"status":  "healthy",
			"leads":   count,
		})
	})

	r.GET("/leads", func(c *gin.Context) {
		leads, err := leadStore.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(leads), "leads": leads})
	})

	log.Printf("Server listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
