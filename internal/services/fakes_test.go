package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"rihla/internal/models/db_models"
	"rihla/internal/repositories"
)

var errFakeDB = errors.New("fake db failure")

type fakeConversationRepo struct {
	mu            sync.Mutex
	clock         int64
	conversations map[uuid.UUID]*db_models.Conversation
	messages      []db_models.Message
	itineraries   map[uuid.UUID]*db_models.Itinerary

	failCreateMessage bool
	failUpsert        bool
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: map[uuid.UUID]*db_models.Conversation{},
		itineraries:   map[uuid.UUID]*db_models.Itinerary{},
	}
}

func (r *fakeConversationRepo) tick() int64 {
	r.clock++
	return r.clock
}

func (r *fakeConversationRepo) stamp(b *db_models.BaseModel) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := r.tick()
	b.CreatedAt = now
	b.UpdatedAt = now
}

func (r *fakeConversationRepo) CreateConversation(_ context.Context, c *db_models.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stamp(&c.BaseModel)
	stored := *c
	r.conversations[c.ID] = &stored
	return nil
}

func (r *fakeConversationRepo) FindConversation(_ context.Context, id uuid.UUID) (*db_models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (r *fakeConversationRepo) ListConversations(_ context.Context, ownerID string) ([]db_models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.Conversation
	for _, c := range r.conversations {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt > out[j].UpdatedAt })
	return out, nil
}

func (r *fakeConversationRepo) UpdateTitle(_ context.Context, id uuid.UUID, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.conversations[id]; ok {
		c.Title = title
		c.UpdatedAt = r.tick()
	}
	return nil
}

func (r *fakeConversationRepo) TouchConversation(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.conversations[id]; ok {
		c.UpdatedAt = r.tick()
	}
	return nil
}

func (r *fakeConversationRepo) DeleteConversation(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conversations, id)
	delete(r.itineraries, id)
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.ConversationID != id {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

func (r *fakeConversationRepo) CreateMessage(_ context.Context, m *db_models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreateMessage {
		return errFakeDB
	}
	r.stamp(&m.BaseModel)
	r.messages = append(r.messages, *m)
	return nil
}

func (r *fakeConversationRepo) FindMessage(_ context.Context, id uuid.UUID) (*db_models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.ID == id {
			out := m
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeConversationRepo) ListMessages(_ context.Context, conversationID uuid.UUID) ([]db_models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) UpsertItinerary(_ context.Context, it *db_models.Itinerary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpsert {
		return errFakeDB
	}
	r.stamp(&it.BaseModel)
	stored := *it
	r.itineraries[it.ConversationID] = &stored
	return nil
}

func (r *fakeConversationRepo) FindItinerary(_ context.Context, conversationID uuid.UUID) (*db_models.Itinerary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.itineraries[conversationID]
	if !ok {
		return nil, nil
	}
	out := *it
	return &out, nil
}

type fakeInteractionRepo struct {
	mu           sync.Mutex
	interactions []db_models.Interaction
	fail         bool
}

func (r *fakeInteractionRepo) CreateInteraction(_ context.Context, i *db_models.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errFakeDB
	}
	r.interactions = append(r.interactions, *i)
	return nil
}

func (r *fakeInteractionRepo) ofType(kind db_models.InteractionType) []db_models.Interaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.Interaction
	for _, i := range r.interactions {
		if i.Type == kind {
			out = append(out, i)
		}
	}
	return out
}

func (r *fakeInteractionRepo) owned(ownerID string, keep func(db_models.Interaction) bool) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, i := range r.interactions {
		if i.OwnerID == ownerID && keep(i) {
			n++
		}
	}
	return n
}

func (r *fakeInteractionRepo) CountByType(_ context.Context, ownerID string, kind db_models.InteractionType) (int64, error) {
	return r.owned(ownerID, func(i db_models.Interaction) bool { return i.Type == kind }), nil
}

func (r *fakeInteractionRepo) CountSuccessfulGenerations(_ context.Context, ownerID string) (int64, error) {
	return r.owned(ownerID, func(i db_models.Interaction) bool {
		return i.Type == db_models.InteractionItineraryGenerated && i.Success
	}), nil
}

func (r *fakeInteractionRepo) AverageResponseTime(_ context.Context, ownerID string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum, n int64
	for _, i := range r.interactions {
		if i.OwnerID == ownerID && i.Type == db_models.InteractionItineraryGenerated {
			sum += i.ResponseTimeMs
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func (r *fakeInteractionRepo) CountFeedback(_ context.Context, ownerID string, feedback string) (int64, error) {
	return r.owned(ownerID, func(i db_models.Interaction) bool {
		return i.Type == db_models.InteractionFeedbackGiven && i.Feedback == feedback
	}), nil
}

func (r *fakeInteractionRepo) TopDestinations(_ context.Context, ownerID string, limit int) ([]repositories.DestinationRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, i := range r.interactions {
		if i.OwnerID == ownerID && i.Type == db_models.InteractionItineraryGenerated && i.Destination != "" {
			counts[i.Destination]++
		}
	}
	rows := make([]repositories.DestinationRow, 0, len(counts))
	for d, c := range counts {
		rows = append(rows, repositories.DestinationRow{Destination: d, Count: c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Destination < rows[j].Destination
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

type fakeGenerator struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (g *fakeGenerator) Complete(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func (g *fakeGenerator) lastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.prompts) == 0 {
		return ""
	}
	return g.prompts[len(g.prompts)-1]
}
