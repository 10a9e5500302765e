package execution

import (
	"context"
	"strings"

	"nodeBoard/internal/enums"
	"nodeBoard/internal/interfaces"
	"nodeBoard/internal/models"
)

const textSystemPrompt = "You rewrite text. Apply every instruction to the text you are given " +
	"and reply with the resulting text only, without commentary."

// TextExecutor rewrites a text node following the instruction nodes wired into it.
type TextExecutor struct {
	generator interfaces.TextGenerator
}

func NewTextExecutor(generator interfaces.TextGenerator) *TextExecutor {
	return &TextExecutor{generator: generator}
}

func (te *TextExecutor) Name() string { return "text" }

func (te *TextExecutor) CreditType() string { return enums.CREDIT_TYPE_TEXT }

func (te *TextExecutor) CanExecute(node *models.Node, inputs Inputs) bool {
	return node.Type == enums.NODE_TYPE_TEXT && len(inputs.Instructions) > 0
}

func (te *TextExecutor) Execute(ctx context.Context, job *Job) error {
	source := strings.TrimSpace(job.Node.Data.Text)
	if source == "" {
		source = joinNonEmpty(job.Inputs.Texts...)
	}

	var prompt strings.Builder
	prompt.WriteString("Instructions:\n")
	for _, instruction := range job.Inputs.Instructions {
		prompt.WriteString("- ")
		prompt.WriteString(instruction)
		prompt.WriteString("\n")
	}
	if source != "" {
		prompt.WriteString("\nText:\n")
		prompt.WriteString(source)
	}

	text, err := te.generator.Complete(ctx, textSystemPrompt, prompt.String())
	if err != nil {
		return err
	}
	job.Node.Data.Text = strings.TrimSpace(text)
	return nil
}
