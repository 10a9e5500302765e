package execution

import (
	"context"

	"nodeBoard/internal/enums"
	"nodeBoard/internal/interfaces"
	"nodeBoard/internal/models"
)

type ImageExecutor struct {
	generator interfaces.ImageGenerator
	assets    interfaces.AssetStore
}

func NewImageExecutor(generator interfaces.ImageGenerator, assets interfaces.AssetStore) *ImageExecutor {
	return &ImageExecutor{generator: generator, assets: assets}
}

func (ie *ImageExecutor) Name() string { return "image" }

func (ie *ImageExecutor) CreditType() string { return enums.CREDIT_TYPE_IMAGE }

func (ie *ImageExecutor) CanExecute(node *models.Node, inputs Inputs) bool {
	return node.Type == enums.NODE_TYPE_IMAGE && imagePrompt(node, inputs) != ""
}

func (ie *ImageExecutor) Execute(ctx context.Context, job *Job) error {
	prompt := imagePrompt(job.Node, job.Inputs)
	data, contentType, err := ie.generator.GenerateImage(ctx, prompt)
	if err != nil {
		return err
	}
	image, err := ie.assets.StoreImage(ctx, job.Owner(), prompt, data, contentType)
	if err != nil {
		return err
	}
	job.Node.Data.ImageURL = image.URL
	return nil
}

// imagePrompt uses the node's own text as the prompt when set, followed by
// whatever text and instructions are wired into it.
func imagePrompt(node *models.Node, inputs Inputs) string {
	return joinNonEmpty(node.Data.Text, inputs.Prompt())
}
