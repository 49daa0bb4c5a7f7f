// Package mockapi implements a gin mock of the remote model API. It is used
// by cmd/mockserver and by the integration tests, and speaks the same wire
// protocol as the real service: JSON bodies, bearer auth, response metadata
// headers and event-stream framing for streaming calls.
package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sleepstars/modelkit/models"
)

// MockOrganization is echoed in the Openai-Organization response header.
const MockOrganization = "org-mock"

// NewRouter builds the mock API. When apiKey is non-empty every request must
// carry the matching bearer token.
func NewRouter(apiKey string) *gin.Engine {
	r := gin.Default()

	if apiKey != "" {
		r.Use(func(c *gin.Context) {
			if c.GetHeader("Authorization") != "Bearer "+apiKey {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				c.Abort()
				return
			}
			c.Next()
		})
	}

	v1 := r.Group("/v1")
	v1.POST("/completions", completions)
	v1.POST("/chat/completions", chatCompletions)
	v1.POST("/search", search)
	v1.POST("/answers", answers)
	v1.POST("/classifications", classifications)
	return r
}

func setMetadata(c *gin.Context) {
	c.Header("Openai-Organization", MockOrganization)
	c.Header("X-Request-Id", uuid.NewString())
	c.Header("Openai-Processing-Ms", "42")
}

func completions(c *gin.Context) {
	var req models.CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setMetadata(c)
	id := "cmpl-" + uuid.NewString()
	created := time.Now().Unix()

	if req.Stream {
		streamCompletion(c, &req, id, created)
		return
	}

	n := 1
	if req.N != nil {
		n = *req.N
	}
	choices := make([]models.CompletionChoice, n)
	for i := range choices {
		choices[i] = models.CompletionChoice{
			Text:         fmt.Sprintf("mock completion %d for %q", i, req.Prompt),
			Index:        i,
			FinishReason: "stop",
		}
	}

	c.JSON(http.StatusOK, &models.Completion{
		ID:      id,
		Object:  "text_completion",
		Created: created,
		Model:   req.Model,
		Choices: choices,
		Usage:   &models.Usage{PromptTokens: 4, CompletionTokens: 8, TotalTokens: 12},
	})
}

// streamCompletion emits each fragment as one "data: " line followed by a
// blank separator line, then the [DONE] sentinel.
func streamCompletion(c *gin.Context, req *models.CompletionRequest, id string, created int64) {
	c.Header("Content-Type", "text/event-stream")
	flusher, _ := c.Writer.(http.Flusher)

	for _, text := range []string{"mock", " streamed", " completion"} {
		chunk := &models.Completion{
			ID:      id,
			Object:  "text_completion",
			Created: created,
			Model:   req.Model,
			Choices: []models.CompletionChoice{{Text: text, Index: 0}},
		}
		data, _ := json.Marshal(chunk)
		fmt.Fprintf(c.Writer, "data: %s\n\n", data)
		if flusher != nil {
			flusher.Flush()
		}
	}
	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	if flusher != nil {
		flusher.Flush()
	}
}

func chatCompletions(c *gin.Context) {
	var req models.ChatCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setMetadata(c)
	id := "chatcmpl-" + uuid.NewString()
	created := time.Now().Unix()

	if req.Stream {
		streamChatCompletion(c, &req, id, created)
		return
	}

	var lastUser string
	for _, m := range req.Messages {
		if m.Role == "user" {
			lastUser = m.Content
		}
	}
	c.JSON(http.StatusOK, &models.ChatCompletion{
		ID:      id,
		Object:  "chat.completion",
		Created: created,
		Model:   req.Model,
		Choices: []models.ChatChoice{
			{
				Index:        0,
				Message:      models.ChatMessage{Role: "assistant", Content: fmt.Sprintf("mock reply to %q", lastUser)},
				FinishReason: "stop",
			},
		},
		Usage: &models.Usage{PromptTokens: 6, CompletionTokens: 5, TotalTokens: 11},
	})
}

func streamChatCompletion(c *gin.Context, req *models.ChatCompletionRequest, id string, created int64) {
	c.Header("Content-Type", "text/event-stream")
	flusher, _ := c.Writer.(http.Flusher)

	emit := func(choice models.ChatChunkChoice) {
		chunk := &models.ChatCompletionChunk{
			ID:      id,
			Object:  "chat.completion.chunk",
			Created: created,
			Model:   req.Model,
			Choices: []models.ChatChunkChoice{choice},
		}
		data, _ := json.Marshal(chunk)
		fmt.Fprintf(c.Writer, "data: %s\n\n", data)
		if flusher != nil {
			flusher.Flush()
		}
	}

	emit(models.ChatChunkChoice{Delta: models.ChatDelta{Role: "assistant"}})
	emit(models.ChatChunkChoice{Delta: models.ChatDelta{Content: "mock"}})
	emit(models.ChatChunkChoice{Delta: models.ChatDelta{Content: " reply"}})
	stop := "stop"
	emit(models.ChatChunkChoice{FinishReason: &stop})

	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	if flusher != nil {
		flusher.Flush()
	}
}

func search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setMetadata(c)
	data := make([]models.SearchResult, len(req.Documents))
	for i := range req.Documents {
		data[i] = models.SearchResult{
			Document: i,
			Object:   "search_result",
			Score:    100 - float64(i)*10,
		}
	}
	c.JSON(http.StatusOK, &models.SearchResponse{
		Object: "list",
		Data:   data,
		Model:  req.Model,
	})
}

func answers(c *gin.Context) {
	var req models.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setMetadata(c)
	c.JSON(http.StatusOK, &models.AnswerResponse{
		Object:      "answer",
		Answers:     []string{fmt.Sprintf("mock answer to %q", req.Question)},
		Model:       req.Model,
		SearchModel: req.SearchModel,
	})
}

func classifications(c *gin.Context) {
	var req models.ClassificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setMetadata(c)
	label := "Positive"
	if len(req.Labels) > 0 {
		label = req.Labels[0]
	}
	c.JSON(http.StatusOK, &models.ClassificationResponse{
		Object:      "classification",
		Label:       label,
		Model:       req.Model,
		SearchModel: req.SearchModel,
	})
}
