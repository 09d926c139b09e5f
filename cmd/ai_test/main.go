package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go-leadscout-automation/internal/ai"
)

func main() {
	host := os.Getenv("OLLAMA_HOST")
	if host == "" {
		host = "http://localhost:11434"
	}
	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = "deepseek-r1:8b"
	}

	client := ai.NewOllamaClient(host, model)

	ctx := context.Background()
	if err := client.Ping(ctx); err != nil {
		log.Fatalf("Could not reach Ollama at %s: %v", host, err)
	}

	postText := `My inbox is a disaster and I'm drowning in scheduling back-and-forth.
Seriously considering hiring a virtual assistant to take admin work off my plate.
Anyone have recommendations?`

	fmt.Printf("Asking %s to qualify a sample post...\n", model)

	verdict, err := client.Classify(ctx, postText)
	if err != nil {
		log.Fatalf("Classify failed: %v", err)
	}

	fmt.Printf("\nis_lead: %v\nreason:  %s\n", verdict.IsLead, verdict.Reason)
}
