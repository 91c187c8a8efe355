package services

import (
	"context"
	"math/rand"
	"strings"
	"time"
)

// Local fallback replies keep the conversation alive when Gemini is
// disabled or failing. The phrasing follows the companion guidelines:
// validate first, then invite the user to keep exploring.
var localOpeners = []string{
	"I hear you. That sounds like a lot to carry right now.",
	"Thank you for sharing that with me. It takes courage to put feelings into words.",
	"That sounds really meaningful. I'm glad you told me.",
	"I'm here with you. What you're feeling makes sense.",
}

var localFollowUps = []string{
	"What do you think is weighing on you most at the moment?",
	"How long have you been feeling this way?",
	"Is there one small thing that might bring you a little comfort today?",
	"Would you like to tell me more about what led up to this?",
}

// LocalReply produces a supportive response without calling the API.
func LocalReply(ctx context.Context, chat []ChatMessage) string {
	var last string
	if len(chat) > 0 {
		last = strings.TrimSpace(chat[len(chat)-1].Text)
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	opener := localOpeners[r.Intn(len(localOpeners))]
	follow := localFollowUps[r.Intn(len(localFollowUps))]
	if last == "" {
		return Greeting()
	}
	return opener + " " + follow
}

// StreamLocalReply feeds a local reply through onDelta in small chunks so
// streaming clients behave the same as with the live API.
func StreamLocalReply(ctx context.Context, chat []ChatMessage, onDelta func(string)) string {
	full := LocalReply(ctx, chat)
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	i := 0
	for i < len(full) {
		if ctx.Err() != nil {
			break
		}
		step := 12 + r.Intn(24)
		if i+step > len(full) {
			step = len(full) - i
		}
		part := full[i : i+step]
		if onDelta != nil {
			onDelta(part)
		}
		i += step
		sleepWithContext(ctx, 40*time.Millisecond)
	}
	return full
}

// Greeting is the canned conversation opener used when a session starts
// or every generation path failed.
func Greeting() string {
	return "Hello! I'm here to listen and support you. How are you feeling today?"
}

// FallbackReply is used when both Gemini and the local generator came up
// empty mid-conversation.
func FallbackReply() string {
	return "I'm having trouble responding right now. Could you try again in a moment?"
}
