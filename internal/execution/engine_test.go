package execution

import (
	"context"
	"errors"
	"testing"

	"nodeBoard/internal/enums"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engineFixture struct {
	ledger    *fakeLedger
	publisher *fakePublisher
	text      *fakeTextGenerator
	images    *fakeImageGenerator
	speech    *fakeSynthesizer
	assets    *fakeAssetStore
}

func newEngineFixture() *engineFixture {
	return &engineFixture{
		ledger:    newFakeLedger(10),
		publisher: &fakePublisher{},
		text: &fakeTextGenerator{reply: func(system, prompt string) (string, error) {
			return "rewritten", nil
		}},
		images: &fakeImageGenerator{},
		speech: &fakeSynthesizer{},
		assets: &fakeAssetStore{},
	}
}

func (f *engineFixture) engine(opts ...Option) *Engine {
	executors := []Executor{
		NewTextExecutor(f.text),
		NewImageExecutor(f.images, f.assets),
		NewSpeechExecutor(f.speech, f.assets, "alloy"),
		NewWebsiteExecutor(f.text, f.assets),
	}
	opts = append([]Option{WithPublisher(f.publisher)}, opts...)
	return NewEngine(executors, f.ledger, opts...)
}

func node(id, nodeType, text string) models.Node {
	return models.Node{ID: id, Type: nodeType, Data: models.NodeData{Text: text}}
}

func edge(source, target string) models.Edge {
	return models.Edge{ID: source + "-" + target, Source: source, Target: target}
}

func nodeByID(t *testing.T, nodes models.Nodes, id string) models.Node {
	t.Helper()
	n, ok := nodes.Find(id)
	require.True(t, ok, "node %s missing", id)
	return *n
}

func TestEngine_DepthFirstInEdgeOrder(t *testing.T) {
	f := newEngineFixture()
	run := Run{
		ID:           "run-1",
		UserID:       1,
		WhiteboardID: 7,
		Nodes: models.Nodes{
			node("i1", enums.NODE_TYPE_INSTRUCTION, "make it formal"),
			node("t1", enums.NODE_TYPE_TEXT, "hey there"),
			node("s1", enums.NODE_TYPE_SPEECH, ""),
			node("img1", enums.NODE_TYPE_IMAGE, "a cat"),
		},
		Edges:       models.Edges{edge("i1", "t1"), edge("t1", "s1"), edge("i1", "img1")},
		StartNodeID: "i1",
	}

	result, err := f.engine().Run(context.Background(), run)
	require.NoError(t, err)

	assert.Equal(t, "run-1", result.RunID)
	assert.Equal(t, []string{"t1", "s1", "img1"}, result.Executed)
	assert.Equal(t, []string{"i1"}, result.Skipped)
	assert.Empty(t, result.Failed)

	assert.Equal(t, "rewritten", nodeByID(t, result.Nodes, "t1").Data.Text)
	// speech reads the text node after it was rewritten in this run
	assert.Equal(t, []string{"rewritten"}, f.speech.texts)
	assert.Equal(t, []string{"alloy"}, f.speech.voices)
	assert.Equal(t, "http://assets/s1.mp3", nodeByID(t, result.Nodes, "s1").Data.AudioURL)
	assert.Equal(t, []string{"a cat\n\nmake it formal"}, f.images.prompts)
	assert.Equal(t, "http://assets/img1.png", nodeByID(t, result.Nodes, "img1").Data.ImageURL)

	for _, id := range result.Executed {
		assert.Equal(t, enums.NODE_STATUS_DONE, nodeByID(t, result.Nodes, id).Data.Status)
	}
	assert.Equal(t, enums.NODE_STATUS_SKIPPED, nodeByID(t, result.Nodes, "i1").Data.Status)
	assert.Equal(t, []string{"t1", "s1", "img1"}, f.ledger.spent)
}

func TestEngine_DoesNotReexecuteUpstream(t *testing.T) {
	f := newEngineFixture()
	run := Run{
		Nodes: models.Nodes{
			node("i1", enums.NODE_TYPE_INSTRUCTION, "shorten"),
			node("t1", enums.NODE_TYPE_TEXT, "long text"),
			node("t2", enums.NODE_TYPE_TEXT, ""),
			node("i2", enums.NODE_TYPE_INSTRUCTION, "translate"),
		},
		Edges:       models.Edges{edge("i1", "t1"), edge("t1", "t2"), edge("i2", "t2")},
		StartNodeID: "t2",
	}

	result, err := f.engine().Run(context.Background(), run)
	require.NoError(t, err)

	assert.Equal(t, []string{"t2"}, result.Executed)
	assert.Equal(t, "long text", nodeByID(t, result.Nodes, "t1").Data.Text)
	require.Len(t, f.text.prompts, 1)
	assert.Contains(t, f.text.prompts[0], "- translate")
	assert.Contains(t, f.text.prompts[0], "long text")
	assert.NotEmpty(t, result.RunID)
}

func TestEngine_CyclesTerminate(t *testing.T) {
	f := newEngineFixture()
	run := Run{
		Nodes: models.Nodes{
			node("i1", enums.NODE_TYPE_INSTRUCTION, "expand"),
			node("t1", enums.NODE_TYPE_TEXT, "a"),
			node("t2", enums.NODE_TYPE_TEXT, "b"),
		},
		Edges:       models.Edges{edge("i1", "t1"), edge("t1", "t2"), edge("t2", "t1"), edge("i1", "t2")},
		StartNodeID: "i1",
	}

	result, err := f.engine().Run(context.Background(), run)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, result.Executed)
}

func TestEngine_FailedNodeStopsItsBranchOnly(t *testing.T) {
	f := newEngineFixture()
	f.text.reply = func(system, prompt string) (string, error) {
		return "", errors.New("provider down")
	}
	run := Run{
		UserID: 3,
		Nodes: models.Nodes{
			node("i1", enums.NODE_TYPE_INSTRUCTION, "rewrite"),
			node("t1", enums.NODE_TYPE_TEXT, "original"),
			node("s1", enums.NODE_TYPE_SPEECH, "say this"),
			node("img1", enums.NODE_TYPE_IMAGE, "a dog"),
		},
		Edges:       models.Edges{edge("i1", "t1"), edge("t1", "s1"), edge("i1", "img1")},
		StartNodeID: "i1",
	}

	result, err := f.engine().Run(context.Background(), run)
	require.NoError(t, err)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, NodeFailure{NodeID: "t1", Error: "provider down"}, result.Failed[0])
	assert.Equal(t, []string{"img1"}, result.Executed)
	assert.Empty(t, f.speech.texts)

	failed := nodeByID(t, result.Nodes, "t1")
	assert.Equal(t, enums.NODE_STATUS_FAILED, failed.Data.Status)
	assert.Equal(t, "provider down", failed.Data.Error)
	assert.Equal(t, "original", failed.Data.Text)

	assert.Equal(t, []string{"t1"}, f.ledger.refunded)
	assert.Equal(t, int64(10), f.ledger.balances[enums.CREDIT_TYPE_TEXT])
}

func TestEngine_InsufficientCredits(t *testing.T) {
	f := newEngineFixture()
	f.ledger.balances[enums.CREDIT_TYPE_IMAGE] = 0
	run := Run{
		Nodes:       models.Nodes{node("img1", enums.NODE_TYPE_IMAGE, "a tree")},
		StartNodeID: "img1",
	}

	result, err := f.engine().Run(context.Background(), run)
	require.NoError(t, err)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, errs.ErrInsufficientCredits.Error(), result.Failed[0].Error)
	assert.Empty(t, f.images.prompts)
	assert.Empty(t, f.ledger.refunded)
}

func TestEngine_ZeroCostSkipsLedger(t *testing.T) {
	f := newEngineFixture()
	f.ledger.balances[enums.CREDIT_TYPE_IMAGE] = 0
	run := Run{
		Nodes:       models.Nodes{node("img1", enums.NODE_TYPE_IMAGE, "a tree")},
		StartNodeID: "img1",
	}

	result, err := f.engine(WithCosts(map[string]int64{enums.CREDIT_TYPE_IMAGE: 0})).Run(context.Background(), run)
	require.NoError(t, err)
	assert.Equal(t, []string{"img1"}, result.Executed)
	assert.Empty(t, f.ledger.spent)
}

func TestEngine_MaxStepsQuota(t *testing.T) {
	f := newEngineFixture()
	run := Run{
		Nodes: models.Nodes{
			node("i1", enums.NODE_TYPE_INSTRUCTION, "go"),
			node("t1", enums.NODE_TYPE_TEXT, "one"),
			node("t2", enums.NODE_TYPE_TEXT, "two"),
		},
		Edges:       models.Edges{edge("i1", "t1"), edge("i1", "t2")},
		StartNodeID: "i1",
	}

	result, err := f.engine(WithMaxSteps(1)).Run(context.Background(), run)
	require.Error(t, err)
	assert.True(t, IsStepsExceededError(err))
	require.NotNil(t, result)
	assert.Equal(t, []string{"t1"}, result.Executed)
	assert.Equal(t, "two", nodeByID(t, result.Nodes, "t2").Data.Text)
}

func TestEngine_CanceledContextStopsWalk(t *testing.T) {
	f := newEngineFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := f.engine().Run(ctx, Run{
		Nodes:       models.Nodes{node("t1", enums.NODE_TYPE_TEXT, "x")},
		StartNodeID: "t1",
	})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Empty(t, result.Executed)
}

func TestEngine_UnknownStartNode(t *testing.T) {
	f := newEngineFixture()
	result, err := f.engine().Run(context.Background(), Run{
		Nodes:       models.Nodes{node("t1", enums.NODE_TYPE_TEXT, "x")},
		StartNodeID: "missing",
	})
	assert.ErrorIs(t, err, errs.ErrNodeNotFound)
	assert.Nil(t, result)
}

func TestEngine_InputNodesUntouched(t *testing.T) {
	f := newEngineFixture()
	nodes := models.Nodes{
		node("i1", enums.NODE_TYPE_INSTRUCTION, "shout"),
		node("t1", enums.NODE_TYPE_TEXT, "quiet"),
	}
	_, err := f.engine().Run(context.Background(), Run{
		Nodes:       nodes,
		Edges:       models.Edges{edge("i1", "t1")},
		StartNodeID: "i1",
	})
	require.NoError(t, err)
	assert.Equal(t, "quiet", nodes[1].Data.Text)
	assert.Empty(t, nodes[1].Data.Status)
}

func TestEngine_PublishesEvents(t *testing.T) {
	f := newEngineFixture()
	_, err := f.engine().Run(context.Background(), Run{
		WhiteboardID: 9,
		Nodes: models.Nodes{
			node("c1", enums.NODE_TYPE_COMMENT, "note"),
			node("img1", enums.NODE_TYPE_IMAGE, "a boat"),
		},
		Edges:       models.Edges{edge("c1", "img1")},
		StartNodeID: "c1",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		enums.SOCKET_EVENT_EXECUTION_STARTED,
		enums.SOCKET_EVENT_NODE_UPDATED, // c1 skipped
		enums.SOCKET_EVENT_NODE_UPDATED, // img1 running
		enums.SOCKET_EVENT_NODE_UPDATED, // img1 done
		enums.SOCKET_EVENT_EXECUTION_FINISHED,
	}, f.publisher.names())
	for _, e := range f.publisher.events {
		assert.Equal(t, uint(9), e.WhiteboardID)
	}
	last := f.publisher.events[len(f.publisher.events)-1].Payload.(*Result)
	assert.Equal(t, []string{"img1"}, last.Executed)
}
