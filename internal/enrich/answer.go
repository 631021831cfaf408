// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const answerWithContextPrompt = `Based on the following context, answer the question. If the context doesn't contain enough information, provide a general answer but mention that more specific information isn't available in the context.

Context: %s

Question: %s`

// Answer responds to a free-form question, optionally grounded in article
// text. Failures are folded into the returned message; the caller always
// has something to show the user.
func (p *Pipeline) Answer(ctx context.Context, question, articleContext string) string {
	question = strings.TrimSpace(question)
	if question == "" {
		return "Please ask a question."
	}

	if !p.backend.Configured() {
		return "AI service unavailable. Please check your API configuration."
	}
	if !p.limiter.Allow() {
		wait := p.limiter.RetryAfter().Round(time.Second)
		return fmt.Sprintf("Rate limit reached. Please try again in %s.", wait)
	}

	var prompt string
	if articleContext != "" {
		prompt = fmt.Sprintf(answerWithContextPrompt, truncate(articleContext, contextBudget), question)
	} else {
		prompt = "Answer the following question clearly and concisely: " + question
	}

	reply, err := p.backend.Generate(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("I'm sorry, I encountered an error while processing your question: %v", err)
	}
	return reply
}
