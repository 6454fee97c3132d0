package dto

import "studybuddy-be/pkg/rag"

type AskRequest struct {
	Question string `json:"question" validate:"required"`
	TopK     int    `json:"top_k"`
}

type AskResponse struct {
	Answer     string         `json:"answer"`
	Citations  []rag.Citation `json:"citations"`
	UsedChunks int            `json:"used_chunks"`
}
