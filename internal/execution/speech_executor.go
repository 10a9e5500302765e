package execution

import (
	"context"
	"strings"

	"nodeBoard/internal/enums"
	"nodeBoard/internal/interfaces"
	"nodeBoard/internal/models"
)

type SpeechExecutor struct {
	synthesizer  interfaces.SpeechSynthesizer
	assets       interfaces.AssetStore
	defaultVoice string
}

func NewSpeechExecutor(synthesizer interfaces.SpeechSynthesizer, assets interfaces.AssetStore, defaultVoice string) *SpeechExecutor {
	return &SpeechExecutor{synthesizer: synthesizer, assets: assets, defaultVoice: defaultVoice}
}

func (se *SpeechExecutor) Name() string { return "speech" }

func (se *SpeechExecutor) CreditType() string { return enums.CREDIT_TYPE_SPEECH }

func (se *SpeechExecutor) CanExecute(node *models.Node, inputs Inputs) bool {
	return node.Type == enums.NODE_TYPE_SPEECH && speechText(node, inputs) != ""
}

func (se *SpeechExecutor) Execute(ctx context.Context, job *Job) error {
	text := speechText(job.Node, job.Inputs)
	voice := strings.TrimSpace(job.Node.Data.Voice)
	if voice == "" {
		voice = se.defaultVoice
	}

	data, contentType, err := se.synthesizer.Synthesize(ctx, text, voice)
	if err != nil {
		return err
	}
	speech, err := se.assets.StoreSpeech(ctx, job.Owner(), text, voice, data, contentType)
	if err != nil {
		return err
	}
	job.Node.Data.AudioURL = speech.URL
	return nil
}

// speechText reads the node's own text, or the text inputs when it has none.
func speechText(node *models.Node, inputs Inputs) string {
	if text := strings.TrimSpace(node.Data.Text); text != "" {
		return text
	}
	return joinNonEmpty(inputs.Texts...)
}
