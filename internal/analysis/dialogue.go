package analysis

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Antivibe-Inc/face-labs-sub000/internal/llm"
	"github.com/Antivibe-Inc/face-labs-sub000/pkg/types"
)

// sessionTTL bounds how long an abandoned conversation is kept in memory.
const sessionTTL = 30 * time.Minute

// dialogueSession is one in-flight follow-up conversation.
type dialogueSession struct {
	imageBase64 string
	assessment  *llm.Assessment
	transcript  []types.ConversationTurn
	lastActive  time.Time
}

// DialogueManager holds in-memory conversation sessions. Sessions never
// survive a restart; the permanent transcript lives on the record once the
// conversation is folded in.
type DialogueManager struct {
	provider llm.VisionProvider
	fallback *FallbackGenerator

	mu       sync.Mutex
	sessions map[string]*dialogueSession
	now      func() time.Time
}

// NewDialogueManager creates a manager; provider may be nil.
func NewDialogueManager(provider llm.VisionProvider, fallback *FallbackGenerator) *DialogueManager {
	return &DialogueManager{
		provider: provider,
		fallback: fallback,
		sessions: make(map[string]*dialogueSession),
		now:      time.Now,
	}
}

// SetClock overrides the time source, for tests.
func (m *DialogueManager) SetClock(now func() time.Time) {
	m.now = now
}

// Start opens a session seeded with the image and its assessment, returning
// the session ID.
func (m *DialogueManager) Start(imageBase64 string, assessment *llm.Assessment) string {
	id := uuid.New().String()
	m.mu.Lock()
	m.sessions[id] = &dialogueSession{
		imageBase64: imageBase64,
		assessment:  assessment,
		lastActive:  m.now(),
	}
	m.pruneLocked()
	m.mu.Unlock()
	return id
}

// Turn records the user's utterance and produces the next assistant turn.
// Unknown session IDs and provider failures both degrade to a canned turn so
// the conversation never dead-ends.
func (m *DialogueManager) Turn(ctx context.Context, sessionID, userText string) *llm.DialogueTurn {
	m.mu.Lock()
	session, ok := m.sessions[sessionID]
	if !ok {
		m.mu.Unlock()
		log.Printf("dialogue: unknown session %s", sessionID)
		return m.fallback.Turn()
	}
	session.transcript = append(session.transcript, types.ConversationTurn{Role: "user", Content: userText})
	session.lastActive = m.now()
	req := llm.DialogueRequest{
		ImageBase64: session.imageBase64,
		Assessment:  session.assessment,
		Transcript:  append([]types.ConversationTurn(nil), session.transcript...),
	}
	m.mu.Unlock()

	turn := m.providerTurn(ctx, req)

	m.mu.Lock()
	if session, ok := m.sessions[sessionID]; ok {
		session.transcript = append(session.transcript, types.ConversationTurn{
			Role:    "assistant",
			Content: turn.Observation + " " + turn.Question,
		})
	}
	m.mu.Unlock()
	return turn
}

// End closes a session and returns its summary and full transcript. The
// session is removed whether or not the provider summary succeeds.
func (m *DialogueManager) End(ctx context.Context, sessionID string) (*llm.DialogueSummary, []types.ConversationTurn) {
	m.mu.Lock()
	session, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	if !ok {
		log.Printf("dialogue: ending unknown session %s", sessionID)
		return m.fallback.Summary(nil), nil
	}

	req := llm.DialogueRequest{
		ImageBase64: session.imageBase64,
		Assessment:  session.assessment,
		Transcript:  session.transcript,
	}
	if m.provider != nil {
		if summary, err := m.provider.SummarizeDialogue(ctx, req); err == nil {
			return summary, session.transcript
		} else {
			log.Printf("dialogue: summary failed, using offline summary: %v", err)
		}
	}
	return m.fallback.Summary(session.assessment), session.transcript
}

func (m *DialogueManager) providerTurn(ctx context.Context, req llm.DialogueRequest) *llm.DialogueTurn {
	if m.provider == nil {
		return m.fallback.Turn()
	}
	turn, err := m.provider.DialogueTurn(ctx, req)
	if err != nil {
		log.Printf("dialogue: turn failed, using offline turn: %v", err)
		return m.fallback.Turn()
	}
	return turn
}

// pruneLocked drops sessions idle past the TTL. Caller holds the lock.
func (m *DialogueManager) pruneLocked() {
	cutoff := m.now().Add(-sessionTTL)
	for id, session := range m.sessions {
		if session.lastActive.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
