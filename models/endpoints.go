package models

// SearchRequest ranks a set of documents against a query.
type SearchRequest struct {
	Model     string   `json:"model,omitempty"`
	Documents []string `json:"documents"`
	Query     string   `json:"query"`
}

// SearchResult is the score assigned to one document.
type SearchResult struct {
	Document int     `json:"document"`
	Object   string  `json:"object"`
	Score    float64 `json:"score"`
}

// SearchResponse is the buffered search response.
type SearchResponse struct {
	Object string         `json:"object"`
	Data   []SearchResult `json:"data"`
	Model  string         `json:"model,omitempty"`

	Metadata ResponseMetadata `json:"-"`
}

// AnswerRequest answers a question grounded in a document set, guided by
// worked examples.
type AnswerRequest struct {
	Model           string     `json:"model,omitempty"`
	Question        string     `json:"question"`
	Documents       []string   `json:"documents,omitempty"`
	Examples        [][]string `json:"examples"`
	ExamplesContext string     `json:"examples_context"`
	SearchModel     string     `json:"search_model,omitempty"`
	MaxTokens       *int       `json:"max_tokens,omitempty"`
	Temperature     *float64   `json:"temperature,omitempty"`
	Stop            []string   `json:"stop,omitempty"`
}

// SelectedDocument identifies a document the answer was grounded in.
type SelectedDocument struct {
	Document int    `json:"document"`
	Text     string `json:"text"`
}

// AnswerResponse is the buffered answer response.
type AnswerResponse struct {
	Object            string             `json:"object"`
	Answers           []string           `json:"answers"`
	Model             string             `json:"model,omitempty"`
	SearchModel       string             `json:"search_model,omitempty"`
	Completion        string             `json:"completion,omitempty"`
	SelectedDocuments []SelectedDocument `json:"selected_documents,omitempty"`

	Metadata ResponseMetadata `json:"-"`
}

// ClassificationRequest labels a query using example pairs and an optional
// fixed label set.
type ClassificationRequest struct {
	Model       string     `json:"model,omitempty"`
	Query       string     `json:"query"`
	Examples    [][]string `json:"examples,omitempty"`
	Labels      []string   `json:"labels,omitempty"`
	SearchModel string     `json:"search_model,omitempty"`
	Temperature *float64   `json:"temperature,omitempty"`
}

// ClassificationExample is one example the classification was grounded in.
type ClassificationExample struct {
	Document int    `json:"document"`
	Label    string `json:"label"`
	Text     string `json:"text"`
}

// ClassificationResponse is the buffered classification response.
type ClassificationResponse struct {
	Object           string                  `json:"object"`
	Label            string                  `json:"label"`
	Model            string                  `json:"model,omitempty"`
	SearchModel      string                  `json:"search_model,omitempty"`
	Completion       string                  `json:"completion,omitempty"`
	SelectedExamples []ClassificationExample `json:"selected_examples,omitempty"`

	Metadata ResponseMetadata `json:"-"`
}
