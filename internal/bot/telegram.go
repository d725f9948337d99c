package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"setu-signal-bot/internal/domain"
	"setu-signal-bot/internal/logger"
	"setu-signal-bot/internal/report"
	"setu-signal-bot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Telegram refuses bot downloads above 20MB.
const maxDownloadBytes = 20 << 20

type Analyzer interface {
	Analyze(ctx context.Context, source string, r io.Reader) (*domain.Analysis, error)
}

type ImageCache interface {
	Get(ctx context.Context, fileID string) ([]byte, bool, error)
	Set(ctx context.Context, fileID string, data []byte) error
}

// botAPI is the part of *tele.Bot the handlers call directly.
type botAPI interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Delete(msg tele.Editable) error
	File(file *tele.File) (io.ReadCloser, error)
}

type registrar interface {
	Handle(endpoint interface{}, h tele.HandlerFunc, m ...tele.MiddlewareFunc)
}

type Config struct {
	Token       string
	PollTimeout time.Duration
}

// StartTelegramBot starts long polling in the background and returns the bot so
// the caller can Stop it. A missing token skips startup and returns nil.
func StartTelegramBot(cfg Config, analyzer Analyzer, cache ImageCache, log *zap.Logger) (*tele.Bot, error) {
	log = logger.OrNop(log)
	if strings.TrimSpace(cfg.Token) == "" {
		log.Warn("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil, nil
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 10 * time.Second
	}

	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Chat() != nil {
				fields = append(fields, zap.Int64("chat_id", c.Chat().ID))
			}
			log.Error("telegram handler error", fields...)
		},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	h := NewHandlers(b, analyzer, cache, log)
	h.Register(b)
	if err := b.SetCommands(Commands); err != nil {
		log.Warn("failed to publish bot commands", zap.Error(err))
	}

	log.Info("Telegram bot started", zap.String("username", b.Me.Username))
	go b.Start()
	return b, nil
}

var Commands = []tele.Command{
	{Text: "start", Description: "Show the welcome message"},
	{Text: "help", Description: "Display help information"},
	{Text: "analyze", Description: "Instructions for analysis"},
}

type Handlers struct {
	api      botAPI
	analyzer Analyzer
	cache    ImageCache
	log      *zap.Logger

	menu        *tele.ReplyMarkup
	btnTutorial tele.Btn
	btnSettings tele.Btn
}

func NewHandlers(api botAPI, analyzer Analyzer, cache ImageCache, log *zap.Logger) *Handlers {
	menu := &tele.ReplyMarkup{}
	h := &Handlers{
		api:         api,
		analyzer:    analyzer,
		cache:       cache,
		log:         logger.OrNop(log),
		menu:        menu,
		btnTutorial: menu.Data("📖 Tutorial", "tutorial"),
		btnSettings: menu.Data("⚙️ Settings", "settings"),
	}
	menu.Inline(menu.Row(h.btnTutorial, h.btnSettings))
	return h
}

func (h *Handlers) Register(r registrar) {
	r.Handle("/start", h.onStart)
	r.Handle("/help", h.onHelp)
	r.Handle("/analyze", h.onAnalyze)
	r.Handle(&h.btnTutorial, h.onTutorial)
	r.Handle(&h.btnSettings, h.onSettings)
	r.Handle(tele.OnPhoto, h.onPhoto)
	r.Handle(tele.OnDocument, h.onDocument)
	r.Handle(tele.OnText, h.onText)
}

func (h *Handlers) onStart(c tele.Context) error {
	return c.Send(report.WelcomeText, h.menu, tele.ModeMarkdown)
}

func (h *Handlers) onHelp(c tele.Context) error {
	return c.Send(report.HelpText, tele.ModeMarkdown)
}

func (h *Handlers) onAnalyze(c tele.Context) error {
	return c.Send(report.AnalyzeInstructions, tele.ModeMarkdown)
}

func (h *Handlers) onTutorial(c tele.Context) error {
	h.answerCallback(c)
	return c.Send(report.TutorialText, tele.ModeMarkdown)
}

func (h *Handlers) onSettings(c tele.Context) error {
	h.answerCallback(c)
	return c.Send(report.SettingsText, tele.ModeMarkdown)
}

// answerCallback clears the button spinner. Failure only affects the client
// UI, so the reply is still sent.
func (h *Handlers) answerCallback(c tele.Context) {
	if err := c.Respond(); err != nil {
		h.log.Warn("failed to answer callback", zap.Int64("chat_id", chatIDOf(c)), zap.Error(err))
	}
}

func (h *Handlers) onText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	if text == "" || strings.HasPrefix(text, "/") {
		return nil
	}
	return c.Send(textReply(text), tele.ModeMarkdown)
}

// textReply prompts for a screenshot. Mentions of predictions or signals get
// the signal-specific prompt.
func textReply(text string) string {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "predict") || strings.Contains(lower, "signal") {
		return report.SignalPromptText
	}
	return report.GenericHintText
}

func (h *Handlers) onPhoto(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Photo == nil {
		return c.Send(report.ErrorText, tele.ModeMarkdown)
	}
	return h.analyzeFile(c, &msg.Photo.File)
}

// onDocument accepts screenshots sent as uncompressed image files.
func (h *Handlers) onDocument(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Document == nil {
		return nil
	}
	if !strings.HasPrefix(strings.ToLower(msg.Document.MIME), "image/") {
		return c.Send(report.GenericHintText, tele.ModeMarkdown)
	}
	return h.analyzeFile(c, &msg.Document.File)
}

func (h *Handlers) analyzeFile(c tele.Context, file *tele.File) error {
	ctx := context.Background()
	chatID := chatIDOf(c)

	data, err := h.download(ctx, file)
	if err != nil {
		h.log.Error("error downloading screenshot", zap.Int64("chat_id", chatID), zap.Error(err))
		return c.Send(report.ErrorText, tele.ModeMarkdown)
	}

	placeholder, err := h.api.Send(c.Recipient(), report.ProcessingText)
	if err != nil {
		h.log.Warn("failed to send processing placeholder", zap.Int64("chat_id", chatID), zap.Error(err))
		placeholder = nil
	}

	result, err := h.analyzer.Analyze(ctx, service.SourceTelegram, bytes.NewReader(data))

	if placeholder != nil {
		if delErr := h.api.Delete(placeholder); delErr != nil {
			h.log.Warn("failed to delete processing placeholder", zap.Int64("chat_id", chatID), zap.Error(delErr))
		}
	}

	if err != nil {
		h.log.Error("error processing screenshot", zap.Int64("chat_id", chatID), zap.Error(err))
		return c.Send(report.ErrorText, tele.ModeMarkdown)
	}
	if err := c.Send(result.Report, tele.ModeMarkdown); err != nil {
		h.log.Error("error sending analysis report", zap.Int64("chat_id", chatID), zap.Error(err))
		return c.Send(report.ErrorText, tele.ModeMarkdown)
	}
	return nil
}

func (h *Handlers) download(ctx context.Context, file *tele.File) ([]byte, error) {
	if file == nil || file.FileID == "" {
		return nil, errors.New("message has no file")
	}

	if h.cache != nil {
		data, ok, err := h.cache.Get(ctx, file.UniqueID)
		if err != nil {
			h.log.Warn("screenshot cache lookup failed", zap.String("file_unique_id", file.UniqueID), zap.Error(err))
		} else if ok {
			return data, nil
		}
	}

	rc, err := h.api.File(file)
	if err != nil {
		return nil, fmt.Errorf("fetch file %s: %w", file.FileID, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", file.FileID, err)
	}
	if len(data) > maxDownloadBytes {
		return nil, fmt.Errorf("file %s exceeds %d bytes", file.FileID, maxDownloadBytes)
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, file.UniqueID, data); err != nil {
			h.log.Warn("screenshot cache store failed", zap.String("file_unique_id", file.UniqueID), zap.Error(err))
		}
	}
	return data, nil
}

func chatIDOf(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	return 0
}
