package rag

import (
	"strings"

	"studybuddy-be/pkg/llm"
)

// InsufficientMaterialAnswer is returned verbatim when no chunk clears
// the relevance floor. The caller never invents citations around it.
const InsufficientMaterialAnswer = "No relevant materials found. Please upload study materials first."

const tutorSystemPrompt = "You are a helpful study tutor. Answer questions based on the provided context. Always cite your sources using [Source N] notation."

// BuildMessages produces the chat messages for a grounded answer.
func BuildMessages(grounded *GroundedContext, query string) []llm.Message {
	var user strings.Builder
	user.WriteString("Context:\n")
	user.WriteString(grounded.Context)
	user.WriteString("\n\nQuestion: ")
	user.WriteString(query)
	user.WriteString("\n\nProvide a clear answer with citations.")

	return []llm.Message{
		{Role: "system", Content: tutorSystemPrompt},
		{Role: "user", Content: user.String()},
	}
}
