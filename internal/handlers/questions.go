package handlers

import (
	"log"
	"net/http"
	"strings"

	"quizapp/internal/forms"
	"quizapp/internal/flash"
	"quizapp/internal/models"

	"github.com/gin-gonic/gin"
)

type questionForm struct {
	Question string `form:"question"`
	A        string `form:"a"`
	B        string `form:"b"`
	C        string `form:"c"`
	D        string `form:"d"`
	Correct  string `form:"correct"`
}

func (f *questionForm) toQuestion() (*models.Question, error) {
	for _, s := range []*string{&f.Question, &f.A, &f.B, &f.C, &f.D, &f.Correct} {
		*s = strings.TrimSpace(*s)
		if *s == "" {
			return nil, forms.Invalid("Please fill in all fields")
		}
	}

	correct, ok := models.ParseOptionLabel(f.Correct)
	if !ok {
		return nil, forms.Invalid("Correct answer must be A, B, C or D")
	}
	f.Correct = correct

	return &models.Question{
		Prompt:  f.Question,
		OptionA: f.A,
		OptionB: f.B,
		OptionC: f.C,
		OptionD: f.D,
		Correct: correct,
	}, nil
}

func renderUpload(c *gin.Context, status int, msg string, form questionForm) {
	render(c, status, "upload.html", gin.H{
		"Title":  "Upload",
		"error":  msg,
		"form":   form,
		"labels": models.OptionLabels,
	})
}

func (h *Handler) ShowUpload(c *gin.Context) {
	renderUpload(c, http.StatusOK, "", questionForm{Correct: "A"})
}

func (h *Handler) Upload(c *gin.Context) {
	var form questionForm
	if err := c.ShouldBind(&form); err != nil {
		renderUpload(c, http.StatusBadRequest, "Invalid form data", form)
		return
	}

	q, err := form.toQuestion()
	if err != nil {
		renderUpload(c, http.StatusBadRequest, err.Error(), form)
		return
	}

	if _, err := h.store.InsertQuestion(c.Request.Context(), q); err != nil {
		log.Printf("failed to insert question: %v", err)
		renderUpload(c, http.StatusInternalServerError, genericError, form)
		return
	}

	flash.Add(c, flash.Success, "Question uploaded successfully!")
	c.Redirect(http.StatusFound, "/upload")
}
