package dto

import "time"

// CreateMaterialRequest represents the body of a material upload
// @Description Request body for registering a study material
type CreateMaterialRequest struct {
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	FileType    string `json:"fileType"`
	Content     string `json:"content,omitempty"`
	FileURL     string `json:"fileUrl,omitempty"`
	Subject     string `json:"subject,omitempty"`
}

type MaterialResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	FileType    string    `json:"fileType"`
	Content     string    `json:"content,omitempty"`
	FileURL     string    `json:"fileUrl,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateSummaryRequest is optional; the owner defaults to the material's.
type CreateSummaryRequest struct {
	UserID string `json:"userId,omitempty"`
}

type SummaryResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	MaterialID string    `json:"materialId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	PDFURL     string    `json:"pdfUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
