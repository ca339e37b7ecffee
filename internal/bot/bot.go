package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/example/tallum/internal/drill"
	"github.com/example/tallum/internal/scoring"
	"github.com/example/tallum/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Drill is the set of drill operations the bot exposes to chats
type Drill interface {
	NextWord(ctx context.Context, userID string) (models.Candidate, error)
	SubmitAnswer(ctx context.Context, answer drill.Answer) (models.AnswerResult, error)
	Sentence(ctx context.Context, wordID int64) (string, error)
	Stats(ctx context.Context, userID string) (models.Stats, error)
}

// Sender delivers outgoing messages; *tgbotapi.BotAPI satisfies it
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot drills words over Telegram, one pending word per chat
type Bot struct {
	api    *tgbotapi.BotAPI
	sender Sender
	drill  Drill
	config *BotConfig

	mu      sync.Mutex
	pending map[int64]int64 // chat id -> word id
}

// New connects to the Telegram API with the given token
func New(token string, d Drill, config *BotConfig) (*Bot, error) {
	if token == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %w", err)
	}
	log.Printf("Authorized on account %s", api.Self.UserName)

	b := NewWithSender(api, d, config)
	b.api = api
	return b, nil
}

// NewWithSender builds a bot around any sender, without polling
func NewWithSender(sender Sender, d Drill, config *BotConfig) *Bot {
	if config == nil {
		config = DefaultConfig()
	}
	return &Bot{
		sender:  sender,
		drill:   d,
		config:  config,
		pending: make(map[int64]int64),
	}
}

// Start polls for updates until ctx is cancelled
func (b *Bot) Start(ctx context.Context) error {
	if b.api == nil {
		return errors.New("bot has no Telegram connection")
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.config.UpdateTimeout
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			log.Println("Bot stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			if err := b.HandleMessage(ctx, update.Message); err != nil {
				log.Printf("Error handling message from chat %d: %v", update.Message.Chat.ID, err)
			}
		}
	}
}

// HandleMessage answers a single incoming message
func (b *Bot) HandleMessage(ctx context.Context, message *tgbotapi.Message) error {
	if message == nil || message.From == nil || message.Chat == nil {
		return fmt.Errorf("invalid message: required fields are missing")
	}

	chatID := message.Chat.ID
	scope := b.scope(message.From.ID)

	if message.IsCommand() {
		switch message.Command() {
		case "start", "help":
			return b.reply(chatID, helpText)
		case "next", "skip":
			return b.askNext(ctx, chatID, scope)
		case "sentence":
			return b.sendSentence(ctx, chatID)
		case "stats":
			return b.sendStats(ctx, chatID, scope)
		default:
			return b.reply(chatID, "Unknown command. Send /help for the list of commands.")
		}
	}

	wordID, ok := b.pendingWord(chatID)
	if !ok {
		return b.reply(chatID, "Send /next to get a word.")
	}
	return b.checkAnswer(ctx, chatID, scope, wordID, message.Text)
}

const helpText = "Translate the words I send you.\n\n" +
	"/next - get a word\n" +
	"/skip - skip the current word\n" +
	"/sentence - show an example sentence\n" +
	"/stats - show your scores\n" +
	"/help - show this message"

func (b *Bot) scope(userID int64) string {
	return b.config.ScopePrefix + strconv.FormatInt(userID, 10)
}

func (b *Bot) askNext(ctx context.Context, chatID int64, scope string) error {
	c, err := b.drill.NextWord(ctx, scope)
	if errors.Is(err, scoring.ErrNotFound) {
		return b.reply(chatID, "No words available yet.")
	}
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.pending[chatID] = c.Word.ID
	b.mu.Unlock()

	return b.reply(chatID, fmt.Sprintf("Translate: %s", c.Word.Word))
}

func (b *Bot) checkAnswer(ctx context.Context, chatID int64, scope string, wordID int64, text string) error {
	res, err := b.drill.SubmitAnswer(ctx, drill.Answer{WordID: wordID, Text: text, UserID: scope})
	if errors.Is(err, scoring.ErrNotFound) {
		b.clearPending(chatID)
		return b.reply(chatID, "That word is gone. Send /next for another one.")
	}
	if err != nil {
		return err
	}

	var verdict string
	if res.Correct {
		verdict = "✅ Correct!"
	} else {
		verdict = fmt.Sprintf("❌ Wrong. The answer is: %s", res.CorrectAnswer)
	}
	if err := b.reply(chatID, fmt.Sprintf("%s (score %+d)", verdict, res.NetScore)); err != nil {
		return err
	}
	return b.askNext(ctx, chatID, scope)
}

func (b *Bot) sendSentence(ctx context.Context, chatID int64) error {
	wordID, ok := b.pendingWord(chatID)
	if !ok {
		return b.reply(chatID, "Send /next to get a word first.")
	}
	sentence, err := b.drill.Sentence(ctx, wordID)
	if errors.Is(err, scoring.ErrNotFound) {
		b.clearPending(chatID)
		return b.reply(chatID, "That word is gone. Send /next for another one.")
	}
	if err != nil {
		return err
	}
	if strings.TrimSpace(sentence) == "" {
		return b.reply(chatID, "No example sentence for this word.")
	}
	return b.reply(chatID, sentence)
}

func (b *Bot) sendStats(ctx context.Context, chatID int64, scope string) error {
	stats, err := b.drill.Stats(ctx, scope)
	if err != nil {
		return err
	}
	text := fmt.Sprintf("📊 Words: %d\nAverage positive score: %.2f\nAverage negative score: %.2f",
		stats.TotalWords, stats.AveragePositiveScore, stats.AverageNegativeScore)
	return b.reply(chatID, text)
}

func (b *Bot) pendingWord(chatID int64) (int64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.pending[chatID]
	return id, ok
}

func (b *Bot) clearPending(chatID int64) {
	b.mu.Lock()
	delete(b.pending, chatID)
	b.mu.Unlock()
}

func (b *Bot) reply(chatID int64, text string) error {
	if _, err := b.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
