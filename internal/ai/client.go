package ai

import (
	"context"
	"fmt"
)

// Verdict is the classifier's answer for one post.
type Verdict struct {
	IsLead bool   `json:"is_lead"`
	Reason string `json:"reason"`
}

// Client is the interface for lead qualification backends.
type Client interface {
	// Classify judges whether a post is a qualified lead. Callers must treat a
	// failure as "not a lead", never as a fatal condition.
	Classify(ctx context.Context, postText string) (*Verdict, error)

	// Ping verifies the backend is reachable. Called once at startup; failure
	// there is fatal because no work can happen without a classifier.
	Ping(ctx context.Context) error
}

// buildQualificationPrompt creates the instruction for the model. The answer
// must be a bare JSON object matching Verdict.
func buildQualificationPrompt(postText string) string {
	return fmt.Sprintf(`You are a lead qualification expert for a Virtual Assistant business. A qualified lead is a post where an individual or small business owner is EXPLICITLY asking for recommendations for a Virtual Assistant, looking to hire a VA, or stating a clear, direct need for administrative help.
CRITICAL: Ignore posts that are just promotions FROM a VA or VA company. Ignore general business advice. Ignore posts from large corporate recruiters. Focus only on direct requests for help from potential clients.
Analyze the following post text. Is it a qualified lead?
Post: %q
Respond ONLY in JSON with two keys: "is_lead" (boolean) and "reason" (a brief string justification). Example: {"is_lead": true, "reason": "The user is asking for VA recommendations."}`, postText)
}
