package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"backend/models"
	"backend/utils"
)

const coachSystemPrompt = `You are a pediatric digestive health coach for parents of infants and toddlers.
You receive a baby profile, tracked digestion insights, and deterministic feeding recommendations.
You never diagnose, predict disease, or state medical certainty. You explain patterns and give wellness guidance from the provided data only.
Rules:
- Only mention foods that appear in the provided tryToday or avoidToday recommendations. Never invent foods.
- If the baby's allergies include an item related to a food, do not recommend that food.
- Always include a safety disclaimer and a red-flags list; if the data shows severe signals (no stool for days, watery stool on consecutive days), tell the parent to contact their pediatrician.
- Keep every string short and parent-friendly.
Respond ONLY with a JSON object, no markdown fences and no text outside the JSON, using exactly these keys:
{"summary": string, "why": [string], "tryToday": [string], "avoidToday": [string], "next24hPlan": [string], "redFlags": [string]}`

const chatSystemPrompt = `You are a friendly pediatric digestive health assistant for parents.
You never diagnose or state medical certainty; you explain patterns and give supportive, practical guidance.
Answer in plain conversational text, 3 to 6 sentences, no markdown and no JSON.
Use the baby profile and recent logs when they are relevant to the question.
If the data you need is missing, ask one short question before giving long advice.
If the parent describes severe symptoms, name the red flags and suggest contacting a pediatrician.`

const (
	defaultRecentLogWindow    = 7
	defaultConversationWindow = 10

	coachMaxTokens = 350
	chatMaxTokens  = 220
)

// CoachService assembles LLM context from tracked data and validates what
// comes back before it reaches the parent.
type CoachService struct {
	llm *FeatherlessService

	recentLogWindow    int
	conversationWindow int
}

func NewCoachService(llm *FeatherlessService) *CoachService {
	return &CoachService{
		llm:                llm,
		recentLogWindow:    defaultRecentLogWindow,
		conversationWindow: defaultConversationWindow,
	}
}

// SetContextWindows overrides how many recent logs and conversation turns
// survive truncation. Values below one keep the current setting.
func (s *CoachService) SetContextWindows(recentLogs, conversationTurns int) {
	if recentLogs > 0 {
		s.recentLogWindow = recentLogs
	}
	if conversationTurns > 0 {
		s.conversationWindow = conversationTurns
	}
}

// BuildCoachContext produces the message list for the structured coach call.
// Baby and recommendations are required; insights may be empty.
func (s *CoachService) BuildCoachContext(baby map[string]any, insights []any, recommendations map[string]any) ([]ChatMessage, error) {
	var missing []string
	if len(baby) == 0 {
		missing = append(missing, "baby")
	}
	if len(recommendations) == 0 {
		missing = append(missing, "recommendations")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", utils.ErrMissingInput, strings.Join(missing, ", "))
	}
	if insights == nil {
		insights = []any{}
	}

	babyJSON, _ := json.Marshal(baby)
	insightsJSON, _ := json.Marshal(insights)
	recsJSON, _ := json.Marshal(recommendations)

	user := fmt.Sprintf("BABY:\n%s\n\nINSIGHTS (from tracking):\n%s\n\nRECOMMENDATIONS (deterministic mapping):\n%s",
		babyJSON, insightsJSON, recsJSON)

	return []ChatMessage{
		{Role: "system", Content: coachSystemPrompt},
		{Role: "user", Content: user},
	}, nil
}

// BuildChatContext produces the message list for the free-form chat call.
// Only the latest logs and conversation turns are carried; everything the
// parent typed passes through verbatim.
func (s *CoachService) BuildChatContext(baby map[string]any, recentLogs []any, conversation []ChatMessage, userMessage string) ([]ChatMessage, error) {
	if strings.TrimSpace(userMessage) == "" {
		return nil, fmt.Errorf("%w: userMessage", utils.ErrMissingInput)
	}
	if baby == nil {
		baby = map[string]any{}
	}
	if recentLogs == nil {
		recentLogs = []any{}
	}
	if len(recentLogs) > s.recentLogWindow {
		recentLogs = recentLogs[len(recentLogs)-s.recentLogWindow:]
	}
	if len(conversation) > s.conversationWindow {
		conversation = conversation[len(conversation)-s.conversationWindow:]
	}

	babyJSON, _ := json.Marshal(baby)
	logsJSON, _ := json.Marshal(recentLogs)

	messages := make([]ChatMessage, 0, len(conversation)+3)
	messages = append(messages, ChatMessage{Role: "system", Content: chatSystemPrompt})
	messages = append(messages, ChatMessage{
		Role:    "system",
		Content: fmt.Sprintf("BABY:\n%s\n\nRECENT LOGS:\n%s", babyJSON, logsJSON),
	})
	messages = append(messages, conversation...)
	messages = append(messages, ChatMessage{Role: "user", Content: userMessage})
	return messages, nil
}

// Coach runs the structured advice call end to end.
func (s *CoachService) Coach(ctx context.Context, baby map[string]any, insights []any, recommendations map[string]any) (models.AIResponse, error) {
	messages, err := s.BuildCoachContext(baby, insights, recommendations)
	if err != nil {
		return models.AIResponse{}, err
	}
	raw, err := s.llm.ChatCompletion(ctx, messages, coachMaxTokens)
	if err != nil {
		return models.AIResponse{}, err
	}
	return s.ValidateCoachResponse(raw), nil
}

// Chat runs the conversational call. A model still waking up on the
// provider side is translated into a friendly retry message rather than
// an error.
func (s *CoachService) Chat(ctx context.Context, baby map[string]any, recentLogs []any, conversation []ChatMessage, userMessage string) (string, error) {
	messages, err := s.BuildChatContext(baby, recentLogs, conversation, userMessage)
	if err != nil {
		return "", err
	}
	reply, err := s.llm.ChatCompletion(ctx, messages, chatMaxTokens)
	if err != nil {
		if isModelWakingUp(err) {
			return "The assistant is waking up right now. Please try again in a minute or two.", nil
		}
		return "", err
	}
	return reply, nil
}

func isModelWakingUp(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "model_pending_deploy") || strings.Contains(msg, "not ready for inference")
}

// ValidateCoachResponse parses the model output as JSON. When parsing
// fails the raw text is preserved and flagged so the client can decide
// how to present it; the caller never sees an error for this.
func (s *CoachService) ValidateCoachResponse(raw string) models.AIResponse {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var structured map[string]any
	if err := json.Unmarshal([]byte(trimmed), &structured); err != nil {
		log.Printf("coach response was not valid JSON, returning raw text: %v", err)
		return models.AIResponse{Kind: models.ResponseRaw, Raw: raw, ParseError: true}
	}
	return models.AIResponse{Kind: models.ResponseStructured, Structured: structured}
}
