package aiclient

import "context"

//go:generate mockgen -source=generator.go -destination=generator_mock.go -package=aiclient

// Generator abstracts the text-generation collaborator so scheduling
// and extraction can be tested without the network.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateFromDocument(ctx context.Context, prompt, mimeType string, data []byte) (string, error)
}

var _ Generator = (*Client)(nil)
