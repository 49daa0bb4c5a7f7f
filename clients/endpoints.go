package clients

import (
	"context"

	"github.com/sleepstars/modelkit/models"
)

const (
	searchPath          = "/search"
	answersPath         = "/answers"
	classificationsPath = "/classifications"
)

// Search ranks the request's documents against its query. The model field is
// forced to the configured model; chat-capable models are rejected before
// any network call.
func (c *Client) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	if err := c.requireBaseModel("search"); err != nil {
		return nil, err
	}
	resolved := *req
	resolved.Model = c.model
	var out models.SearchResponse
	meta, err := c.postJSON(ctx, searchPath, &resolved, &out)
	if err != nil {
		return nil, err
	}
	out.Metadata = meta
	return &out, nil
}

// Answer answers a question grounded in the request's documents.
func (c *Client) Answer(ctx context.Context, req *models.AnswerRequest) (*models.AnswerResponse, error) {
	if err := c.requireBaseModel("answer"); err != nil {
		return nil, err
	}
	resolved := *req
	resolved.Model = c.model
	var out models.AnswerResponse
	meta, err := c.postJSON(ctx, answersPath, &resolved, &out)
	if err != nil {
		return nil, err
	}
	out.Metadata = meta
	return &out, nil
}

// Classify labels the request's query from examples.
func (c *Client) Classify(ctx context.Context, req *models.ClassificationRequest) (*models.ClassificationResponse, error) {
	if err := c.requireBaseModel("classification"); err != nil {
		return nil, err
	}
	resolved := *req
	resolved.Model = c.model
	var out models.ClassificationResponse
	meta, err := c.postJSON(ctx, classificationsPath, &resolved, &out)
	if err != nil {
		return nil, err
	}
	out.Metadata = meta
	return &out, nil
}
