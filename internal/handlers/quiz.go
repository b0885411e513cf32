package handlers

import (
	"log"
	"net/http"
	"time"

	"quizapp/internal/quiz"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ShowQuiz(c *gin.Context) {
	questions, err := h.store.ListQuestions(c.Request.Context())
	if err != nil {
		log.Printf("failed to list questions: %v", err)
		render(c, http.StatusInternalServerError, "quiz.html", gin.H{"Title": "Quiz", "error": genericError})
		return
	}

	render(c, http.StatusOK, "quiz.html", gin.H{
		"Title":     "Quiz",
		"questions": questions,
	})
}

// SubmitQuiz scores the form against the questions as they are now; the
// set is read once so the score and the total always agree.
func (h *Handler) SubmitQuiz(c *gin.Context) {
	questions, err := h.store.ListQuestions(c.Request.Context())
	if err != nil {
		log.Printf("failed to list questions: %v", err)
		render(c, http.StatusInternalServerError, "quiz.html", gin.H{"Title": "Quiz", "error": genericError})
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		render(c, http.StatusBadRequest, "quiz.html", gin.H{
			"Title":     "Quiz",
			"error":     "Invalid form data",
			"questions": questions,
		})
		return
	}

	res := quiz.Score(questions, quiz.AnswersFromForm(questions, c.Request.PostForm))
	render(c, http.StatusOK, "result.html", gin.H{
		"Title": "Result",
		"score": res.Correct,
		"total": res.Total,
		"now":   time.Now(),
	})
}
