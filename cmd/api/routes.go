package main

import (
	"studyhub/internal/handler"
	"studyhub/internal/middleware"
	"studyhub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type routeHandlers struct {
	user     *handler.UserHandler
	material *handler.MaterialHandler
	summary  *handler.SummaryHandler
	quiz     *handler.QuizHandler
	attempt  *handler.AttemptHandler
	health   *handler.HealthHandler
}

func registerRoutes(api fiber.Router, h routeHandlers, v *validation.Validator) {
	id := middleware.ValidateIDParams(v, "id")
	owner := middleware.ValidateUserIDParam(v, "userId")

	api.Get("/health", h.health.Health)

	// Users
	api.Post("/users", h.user.CreateUser)
	api.Get("/users/:id", middleware.ValidateUserIDParam(v, "id"), h.user.GetUser)
	api.Get("/users/:userId/materials", owner, h.material.GetUserMaterials)
	api.Get("/users/:userId/summaries", owner, h.summary.GetUserSummaries)
	api.Get("/users/:userId/quizzes", owner, h.quiz.GetUserQuizzes)
	api.Get("/users/:userId/attempts", owner, h.attempt.GetUserAttempts)

	// Materials and summaries
	api.Post("/materials", h.material.CreateMaterial)
	api.Get("/materials/:id", id, h.material.GetMaterial)
	api.Post("/materials/:id/summaries", id, h.summary.CreateSummary)
	api.Get("/materials/:id/summaries", id, h.summary.GetMaterialSummaries)
	api.Get("/summaries/:id", id, h.summary.GetSummary)

	// Quizzes
	api.Post("/materials/:id/quizzes", id, h.quiz.CreateQuiz)
	api.Get("/materials/:id/quizzes", id, h.quiz.GetMaterialQuizzes)
	api.Get("/quizzes/:id", id, h.quiz.GetQuiz)
	api.Get("/quizzes/:id/questions", id, h.quiz.GetQuizQuestions)

	// Attempts
	api.Post("/quizzes/:id/attempts", id, h.attempt.StartAttempt)
	api.Get("/attempts/:id", id, h.attempt.GetAttempt)
	api.Post("/attempts/:id/submit", id, h.attempt.SubmitAttempt)
	api.Get("/attempts/:id/results", id, h.attempt.GetResults)
}
