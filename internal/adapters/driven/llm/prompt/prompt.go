// Package prompt builds the grounding prompt shared by all generation
// providers.
package prompt

import "fmt"

// template constrains the model to the supplied context. The wording is
// part of the answer-quality contract: answer only from the documents,
// in their language, cite document names, and admit when the context has
// no answer.
const template = `You are an assistant that answers questions about an organisation's private documents.

## Rules:
1. Answer ONLY from the reference documents below. Never guess or use outside knowledge.
2. Cite your sources by document name, using the form [document name].
3. Be direct, concise and complete.
4. If the documents do not contain the answer, say so explicitly.
5. Reply in the same language as the reference documents.

## Reference documents:
%s

## Question:
%s

## Answer (grounded in the documents, with source citations):`

// Build renders the full prompt for a question and its assembled context.
func Build(question, contextText string) string {
	return fmt.Sprintf(template, contextText, question)
}
