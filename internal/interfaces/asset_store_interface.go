package interfaces

import (
	"context"
	"nodeBoard/internal/models"
)

// AssetStore uploads generated content and records it against the node that
// produced it. Each method returns the stored row with its public URL.
type AssetStore interface {
	StoreImage(ctx context.Context, owner models.AssetOwner, prompt string, data []byte, contentType string) (*models.Image, error)
	StoreSpeech(ctx context.Context, owner models.AssetOwner, text, voice string, data []byte, contentType string) (*models.Speech, error)
	StoreWebsite(ctx context.Context, owner models.AssetOwner, prompt string, html []byte) (*models.Website, error)
}
