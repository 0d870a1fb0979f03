// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for stackfind: the questions
// returned by a lookup, the page handed to the renderer, and the settings
// each stage reads.
package types

// DisplayLimit is the maximum number of questions kept on a ResultPage.
const DisplayLimit = 10

// Question is one Stack Overflow question returned by a search. It lives only
// for the duration of one render and is never persisted.
type Question struct {
	// Title is the question title as plain text (entities already decoded).
	Title string `json:"title" yaml:"title"`

	// Link is the canonical question URL.
	Link string `json:"link" yaml:"link"`

	// Score is the net vote count.
	Score int `json:"score" yaml:"score"`

	// AnswerCount is the number of posted answers.
	AnswerCount int `json:"answer_count" yaml:"answer_count"`

	// ViewCount is the number of page views.
	ViewCount int `json:"view_count" yaml:"view_count"`

	// Tags lists the question tags in source order.
	Tags []string `json:"tags" yaml:"tags"`

	// IsAnswered reports whether the question has an accepted or upvoted answer.
	IsAnswered bool `json:"is_answered" yaml:"is_answered"`
}

// ResultPage is the ordered, capped list of questions produced by one
// successful search, together with the query that produced it.
type ResultPage struct {
	Query string     `json:"query" yaml:"query"`
	Items []Question `json:"items" yaml:"items"`
}

// NewResultPage builds a page from items in their original order, keeping at
// most DisplayLimit of them.
func NewResultPage(query string, items []Question) ResultPage {
	if len(items) > DisplayLimit {
		items = items[:DisplayLimit]
	}
	return ResultPage{Query: query, Items: items}
}
