package dto

import "github.com/x986x/CW6/internal/models"

type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type MailingDetailResponse struct {
	Mailing  *models.Mailing  `json:"mailing"`
	Messages []models.Message `json:"messages"`
}

type HomeStatsResponse struct {
	MailingsCount       int64             `json:"mailings_count"`
	ActiveMailingsCount int64             `json:"active_mailings_count"`
	ActiveClientsCount  int64             `json:"active_clients_count"`
	RandomBlogPosts     []models.BlogPost `json:"random_blog_posts"`
}
