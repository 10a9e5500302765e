package execution

import (
	"context"
	"strings"

	"nodeBoard/internal/enums"
	"nodeBoard/internal/interfaces"
	"nodeBoard/internal/models"
)

const websiteSystemPrompt = "You build single page websites. Reply with one complete HTML document " +
	"with inline CSS and no external scripts. Use the provided image URLs where they fit. " +
	"Reply with the HTML only."

type WebsiteExecutor struct {
	generator interfaces.TextGenerator
	assets    interfaces.AssetStore
}

func NewWebsiteExecutor(generator interfaces.TextGenerator, assets interfaces.AssetStore) *WebsiteExecutor {
	return &WebsiteExecutor{generator: generator, assets: assets}
}

func (we *WebsiteExecutor) Name() string { return "website" }

func (we *WebsiteExecutor) CreditType() string { return enums.CREDIT_TYPE_WEBSITE }

func (we *WebsiteExecutor) CanExecute(node *models.Node, inputs Inputs) bool {
	return node.Type == enums.NODE_TYPE_WEBSITE && websitePrompt(node, inputs) != ""
}

func (we *WebsiteExecutor) Execute(ctx context.Context, job *Job) error {
	prompt := websitePrompt(job.Node, job.Inputs)

	request := prompt
	if len(job.Inputs.ImageURLs) > 0 {
		request += "\n\nImages:\n" + strings.Join(job.Inputs.ImageURLs, "\n")
	}
	html, err := we.generator.Complete(ctx, websiteSystemPrompt, request)
	if err != nil {
		return err
	}

	website, err := we.assets.StoreWebsite(ctx, job.Owner(), prompt, []byte(stripCodeFence(html)))
	if err != nil {
		return err
	}
	job.Node.Data.WebsiteURL = website.URL
	return nil
}

func websitePrompt(node *models.Node, inputs Inputs) string {
	return joinNonEmpty(node.Data.Text, inputs.Prompt())
}

// stripCodeFence removes a surrounding ```html fence that models often add.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	} else {
		return ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
