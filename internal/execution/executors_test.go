package execution

import (
	"context"
	"testing"

	"nodeBoard/internal/enums"
	"nodeBoard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutors_CanExecute(t *testing.T) {
	f := newEngineFixture()
	text := NewTextExecutor(f.text)
	image := NewImageExecutor(f.images, f.assets)
	speech := NewSpeechExecutor(f.speech, f.assets, "alloy")
	website := NewWebsiteExecutor(f.text, f.assets)

	withInstruction := Inputs{Instructions: []string{"do it"}}
	withText := Inputs{Texts: []string{"hello"}}

	tests := []struct {
		name     string
		executor Executor
		node     models.Node
		inputs   Inputs
		want     bool
	}{
		{"text needs instruction", text, node("n", enums.NODE_TYPE_TEXT, "x"), withText, false},
		{"text with instruction", text, node("n", enums.NODE_TYPE_TEXT, ""), withInstruction, true},
		{"text rejects image node", text, node("n", enums.NODE_TYPE_IMAGE, ""), withInstruction, false},
		{"image from own prompt", image, node("n", enums.NODE_TYPE_IMAGE, "a cat"), Inputs{}, true},
		{"image from inputs", image, node("n", enums.NODE_TYPE_IMAGE, ""), withText, true},
		{"image without prompt", image, node("n", enums.NODE_TYPE_IMAGE, "  "), Inputs{}, false},
		{"speech from text input", speech, node("n", enums.NODE_TYPE_SPEECH, ""), withText, true},
		{"speech ignores instructions", speech, node("n", enums.NODE_TYPE_SPEECH, ""), withInstruction, false},
		{"website from instruction", website, node("n", enums.NODE_TYPE_WEBSITE, ""), withInstruction, true},
		{"website without prompt", website, node("n", enums.NODE_TYPE_WEBSITE, ""), Inputs{ImageURLs: []string{"u"}}, false},
		{"comment never runs", image, node("n", enums.NODE_TYPE_COMMENT, "a cat"), withText, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.node
			assert.Equal(t, tt.want, tt.executor.CanExecute(&n, tt.inputs))
		})
	}
}

func TestSpeechExecutor_UsesNodeVoice(t *testing.T) {
	f := newEngineFixture()
	speech := NewSpeechExecutor(f.speech, f.assets, "alloy")
	n := node("s1", enums.NODE_TYPE_SPEECH, "hello")
	n.Data.Voice = "nova"

	require.NoError(t, speech.Execute(context.Background(), &Job{Node: &n}))
	assert.Equal(t, []string{"nova"}, f.speech.voices)
	assert.Equal(t, "http://assets/s1.mp3", n.Data.AudioURL)
}

func TestWebsiteExecutor_OffersImagesAndStripsFence(t *testing.T) {
	f := newEngineFixture()
	f.text.reply = func(system, prompt string) (string, error) {
		return "```html\n<html><body>hi</body></html>\n```", nil
	}
	website := NewWebsiteExecutor(f.text, f.assets)
	n := node("w1", enums.NODE_TYPE_WEBSITE, "a bakery landing page")

	err := website.Execute(context.Background(), &Job{
		Node:   &n,
		Inputs: Inputs{ImageURLs: []string{"http://assets/img1.png"}},
	})
	require.NoError(t, err)

	require.Len(t, f.text.prompts, 1)
	assert.Contains(t, f.text.prompts[0], "a bakery landing page")
	assert.Contains(t, f.text.prompts[0], "http://assets/img1.png")
	assert.Equal(t, []string{"<html><body>hi</body></html>"}, f.assets.html)
	assert.Equal(t, "http://assets/w1.html", n.Data.WebsiteURL)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "<p>x</p>", stripCodeFence("<p>x</p>"))
	assert.Equal(t, "<p>x</p>", stripCodeFence("```\n<p>x</p>\n```"))
	assert.Equal(t, "<p>x</p>", stripCodeFence("  ```html\n<p>x</p>```  "))
	assert.Equal(t, "", stripCodeFence("```"))
}

func TestInputs_CollectedByNodeType(t *testing.T) {
	g := newGraph(models.Nodes{
		node("t", enums.NODE_TYPE_TEXT, "words"),
		node("i", enums.NODE_TYPE_INSTRUCTION, "do"),
		node("c", enums.NODE_TYPE_COMMENT, "ignored"),
		{ID: "img", Type: enums.NODE_TYPE_IMAGE, Data: models.NodeData{ImageURL: "http://img"}},
		node("target", enums.NODE_TYPE_WEBSITE, ""),
	}, models.Edges{edge("t", "target"), edge("i", "target"), edge("c", "target"), edge("img", "target"), edge("ghost", "target")})

	in := g.inputs("target")
	assert.Equal(t, []string{"words"}, in.Texts)
	assert.Equal(t, []string{"do"}, in.Instructions)
	assert.Equal(t, []string{"http://img"}, in.ImageURLs)
	assert.Equal(t, "words\n\ndo", in.Prompt())
	assert.False(t, in.Empty())
	assert.True(t, Inputs{}.Empty())
}
