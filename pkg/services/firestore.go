package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"SereneAI/models"
	"SereneAI/pkg/config"
)

const (
	usersCollection     = "users"
	sessionsCollection  = "sessions"
	messagesCollection  = "messages"
	analyticsCollection = "analytics"
)

var ErrNotFound = errors.New("document not found")

// FirestoreService is the persistence layer. Every record is keyed by
// user id so reads and writes stay isolated per user.
type FirestoreService struct {
	client    *firestore.Client
	users     *firestore.CollectionRef
	sessions  *firestore.CollectionRef
	messages  *firestore.CollectionRef
	analytics *firestore.CollectionRef
}

func NewFirestoreService(ctx context.Context) (*FirestoreService, error) {
	var opts []option.ClientOption
	if config.GCPCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(config.GCPCredentials))
	}
	client, err := firestore.NewClient(ctx, config.GCPProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &FirestoreService{
		client:    client,
		users:     client.Collection(usersCollection),
		sessions:  client.Collection(sessionsCollection),
		messages:  client.Collection(messagesCollection),
		analytics: client.Collection(analyticsCollection),
	}, nil
}

func (s *FirestoreService) Close() error {
	return s.client.Close()
}

// --- users ---

func (s *FirestoreService) CreateUserProfile(ctx context.Context, user *models.UserProfile) error {
	if _, err := s.users.Doc(user.UserID).Set(ctx, user); err != nil {
		return fmt.Errorf("create user profile: %w", err)
	}
	log.Printf("[firestore] created user profile %s", user.UserID)
	return nil
}

func (s *FirestoreService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	doc, err := s.users.Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	var user models.UserProfile
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user profile: %w", err)
	}
	return &user, nil
}

func (s *FirestoreService) GetUserByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	it := s.users.Where("email", "==", email).Limit(1).Documents(ctx)
	defer it.Stop()
	doc, err := it.Next()
	if err == iterator.Done {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	var user models.UserProfile
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user profile: %w", err)
	}
	return &user, nil
}

func (s *FirestoreService) GetUserByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	it := s.users.Where("username", "==", username).Limit(1).Documents(ctx)
	defer it.Stop()
	doc, err := it.Next()
	if err == iterator.Done {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by username: %w", err)
	}
	var user models.UserProfile
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user profile: %w", err)
	}
	return &user, nil
}

// UpdateUserActivity bumps last_active and the session counter using
// server-side increments so concurrent sessions never lose counts.
func (s *FirestoreService) UpdateUserActivity(ctx context.Context, userID string) error {
	_, err := s.users.Doc(userID).Update(ctx, []firestore.Update{
		{Path: "last_active", Value: time.Now().UTC()},
		{Path: "total_sessions", Value: firestore.Increment(1)},
	})
	if err != nil {
		return fmt.Errorf("update user activity: %w", err)
	}
	return nil
}

func (s *FirestoreService) UpdateUserProfile(ctx context.Context, userID string, updates []firestore.Update) error {
	if len(updates) == 0 {
		return nil
	}
	if _, err := s.users.Doc(userID).Update(ctx, updates); err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	return nil
}

// --- sessions ---

func (s *FirestoreService) CreateSession(ctx context.Context, userID string) (*models.ChatSession, error) {
	session := &models.ChatSession{
		SessionID: uuid.NewString(),
		UserID:    userID,
		StartedAt: time.Now().UTC(),
		IsActive:  true,
	}
	if _, err := s.sessions.Doc(session.SessionID).Set(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	log.Printf("[firestore] created session %s for user %s", session.SessionID, userID)
	return session, nil
}

func (s *FirestoreService) GetSession(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	doc, err := s.sessions.Doc(sessionID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	var session models.ChatSession
	if err := doc.DataTo(&session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *FirestoreService) EndSession(ctx context.Context, sessionID string) error {
	_, err := s.sessions.Doc(sessionID).Update(ctx, []firestore.Update{
		{Path: "ended_at", Value: time.Now().UTC()},
		{Path: "is_active", Value: false},
	})
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	log.Printf("[firestore] ended session %s", sessionID)
	return nil
}

// DeleteSession removes a session and all of its messages.
func (s *FirestoreService) DeleteSession(ctx context.Context, sessionID string) error {
	it := s.messages.Where("session_id", "==", sessionID).Documents(ctx)
	defer it.Stop()
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("list session messages: %w", err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("delete message %s: %w", doc.Ref.ID, err)
		}
	}
	if _, err := s.sessions.Doc(sessionID).Delete(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	log.Printf("[firestore] deleted session %s", sessionID)
	return nil
}

func (s *FirestoreService) UserSessions(ctx context.Context, userID string, limit int) ([]models.ChatSession, error) {
	if limit <= 0 {
		limit = 10
	}
	it := s.sessions.
		Where("user_id", "==", userID).
		OrderBy("started_at", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer it.Stop()

	sessions := make([]models.ChatSession, 0, limit)
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		var session models.ChatSession
		if err := doc.DataTo(&session); err != nil {
			return nil, fmt.Errorf("decode session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// --- messages ---

// SaveMessage writes the message and bumps the per-session and per-user
// message counters.
func (s *FirestoreService) SaveMessage(ctx context.Context, msg *models.ChatMessage) error {
	if _, err := s.messages.Doc(msg.MessageID).Set(ctx, msg); err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	if _, err := s.sessions.Doc(msg.SessionID).Update(ctx, []firestore.Update{
		{Path: "message_count", Value: firestore.Increment(1)},
	}); err != nil {
		return fmt.Errorf("bump session count: %w", err)
	}
	if _, err := s.users.Doc(msg.UserID).Update(ctx, []firestore.Update{
		{Path: "total_messages", Value: firestore.Increment(1)},
	}); err != nil {
		return fmt.Errorf("bump user count: %w", err)
	}
	return nil
}

func (s *FirestoreService) SessionMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	it := s.messages.
		Where("session_id", "==", sessionID).
		OrderBy("timestamp", firestore.Asc).
		Documents(ctx)
	defer it.Stop()

	var messages []models.ChatMessage
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}
		var msg models.ChatMessage
		if err := doc.DataTo(&msg); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// --- analytics ---

// SaveMoodAnalytics merge-writes the daily roll-up; one doc per user per
// day keyed "<user_id>_<YYYY-MM-DD>".
func (s *FirestoreService) SaveMoodAnalytics(ctx context.Context, a *models.MoodAnalytics) error {
	docID := fmt.Sprintf("%s_%s", a.UserID, a.Date.UTC().Format("2006-01-02"))
	data := map[string]any{
		"user_id":           a.UserID,
		"date":              a.Date.UTC(),
		"mood_distribution": a.MoodDistribution,
		"average_sentiment": a.AverageSentiment,
		"total_messages":    a.TotalMessages,
		"session_count":     a.SessionCount,
	}
	if _, err := s.analytics.Doc(docID).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("save mood analytics: %w", err)
	}
	return nil
}

func (s *FirestoreService) MoodHistory(ctx context.Context, userID string, days int) ([]models.MoodAnalytics, error) {
	if days <= 0 {
		days = 30
	}
	start := time.Now().UTC().AddDate(0, 0, -days)
	it := s.analytics.
		Where("user_id", "==", userID).
		Where("date", ">=", start).
		OrderBy("date", firestore.Asc).
		Documents(ctx)
	defer it.Stop()

	var history []models.MoodAnalytics
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list mood history: %w", err)
		}
		var a models.MoodAnalytics
		if err := doc.DataTo(&a); err != nil {
			return nil, fmt.Errorf("decode mood analytics: %w", err)
		}
		history = append(history, a)
	}
	return history, nil
}
