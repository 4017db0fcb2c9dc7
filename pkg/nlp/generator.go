package nlp

import (
	"context"
	"fmt"
)

const answerPrompt = `You are an HR assistant that helps with querying a knowledge graph built from resumes.
Answer the following question based on the retrieved information.
If the information doesn't contain the answer, explicitly state what's missing and what information you were able to find.

Retrieved Information:
%s

Question: %s

Give a concise and helpful answer. If project information is requested but not found for a specific person,
explicitly mention that project details appear to be missing for that person in the knowledge graph.`

// Generator produces the final natural-language answer from retrieved context.
type Generator struct {
	client Client
}

// NewGenerator creates a generator backed by the given client.
func NewGenerator(client Client) *Generator {
	return &Generator{client: client}
}

// Answer generates an answer to the query grounded in the retrieved context.
func (g *Generator) Answer(ctx context.Context, query, retrieved string) (string, error) {
	resp, err := g.client.Chat(ctx, []Message{
		NewUserMessage(fmt.Sprintf(answerPrompt, retrieved, query)),
	})
	if err != nil {
		return "", fmt.Errorf("answer generation failed: %w", err)
	}
	return resp.Content, nil
}
