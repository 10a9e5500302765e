package execution

import (
	"context"
	"fmt"
	"sync"

	"nodeBoard/internal/enums"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/models"
)

type fakeLedger struct {
	mu       sync.Mutex
	balances map[string]int64
	spent    []string
	refunded []string
}

func newFakeLedger(balance int64) *fakeLedger {
	balances := map[string]int64{}
	for _, creditType := range enums.CreditTypes {
		balances[creditType] = balance
	}
	return &fakeLedger{balances: balances}
}

func (l *fakeLedger) Spend(userID uint, creditType string, amount int64, ref models.CreditReference) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[creditType] < amount {
		return errs.ErrInsufficientCredits
	}
	l.balances[creditType] -= amount
	l.spent = append(l.spent, ref.NodeID)
	return nil
}

func (l *fakeLedger) Refund(userID uint, creditType string, amount int64, ref models.CreditReference) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[creditType] += amount
	l.refunded = append(l.refunded, ref.NodeID)
	return nil
}

type publishedEvent struct {
	WhiteboardID uint
	Event        string
	Payload      interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) PublishWhiteboardEvent(ctx context.Context, whiteboardID uint, event string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{WhiteboardID: whiteboardID, Event: event, Payload: payload})
	return nil
}

func (p *fakePublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var names []string
	for _, e := range p.events {
		names = append(names, e.Event)
	}
	return names
}

type fakeTextGenerator struct {
	prompts []string
	reply   func(system, prompt string) (string, error)
}

func (g *fakeTextGenerator) Complete(ctx context.Context, system, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.reply(system, prompt)
}

type fakeImageGenerator struct {
	prompts []string
	err     error
}

func (g *fakeImageGenerator) GenerateImage(ctx context.Context, prompt string) ([]byte, string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return nil, "", g.err
	}
	return []byte("png"), "image/png", nil
}

type fakeSynthesizer struct {
	texts  []string
	voices []string
}

func (s *fakeSynthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, string, error) {
	s.texts = append(s.texts, text)
	s.voices = append(s.voices, voice)
	return []byte("mp3"), "audio/mpeg", nil
}

type fakeAssetStore struct {
	stored []string
	html   []string
}

func (s *fakeAssetStore) StoreImage(ctx context.Context, owner models.AssetOwner, prompt string, data []byte, contentType string) (*models.Image, error) {
	s.stored = append(s.stored, "image:"+owner.NodeID)
	return &models.Image{URL: fmt.Sprintf("http://assets/%s.png", owner.NodeID)}, nil
}

func (s *fakeAssetStore) StoreSpeech(ctx context.Context, owner models.AssetOwner, text, voice string, data []byte, contentType string) (*models.Speech, error) {
	s.stored = append(s.stored, "speech:"+owner.NodeID)
	return &models.Speech{URL: fmt.Sprintf("http://assets/%s.mp3", owner.NodeID)}, nil
}

func (s *fakeAssetStore) StoreWebsite(ctx context.Context, owner models.AssetOwner, prompt string, html []byte) (*models.Website, error) {
	s.stored = append(s.stored, "website:"+owner.NodeID)
	s.html = append(s.html, string(html))
	return &models.Website{URL: fmt.Sprintf("http://assets/%s.html", owner.NodeID)}, nil
}
