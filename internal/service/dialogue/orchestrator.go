package dialogue

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/neo-arclight/roundtable/internal/analysis/intent"
	"github.com/neo-arclight/roundtable/internal/config"
	"github.com/neo-arclight/roundtable/internal/model/chat"
	"github.com/neo-arclight/roundtable/internal/model/persona"
	"github.com/neo-arclight/roundtable/internal/model/relation"
	chatservice "github.com/neo-arclight/roundtable/internal/service/chat"
	"github.com/neo-arclight/roundtable/internal/service/generation"
)

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrTurnInProgress = errors.New("a turn is already in progress")
)

// Generator 为单个居民取回一条完整回复。
type Generator interface {
	Generate(ctx context.Context, personaID, userMessage string, history []chat.HistoryEntry, profile generation.Context) (string, error)
}

// Snapshot 是编排器与展示层之间的全部契约：对话记录、当前活跃居民、
// 回合进行标记以及最新的倾向与好感度。
type Snapshot struct {
	Messages      []chat.Message      `json:"messages"`
	ActivePersona string              `json:"activePersona,omitempty"`
	InProgress    bool                `json:"inProgress"`
	Tendency      relation.Tendency   `json:"tendency"`
	Relationships []relation.Standing `json:"relationships"`
}

// Orchestrator 驱动一轮完整的群聊回应：对用户消息打分、推进关系账本、
// 按固定顺序依次邀请三位居民回应，并在任一居民失败时落入固定替补台词。
//
// 同一时刻只允许一个回合推进。回合进行中提交的消息被直接丢弃而不是
// 排队，这是沿用的产品行为，忙闲标记即是唯一的并发控制。
type Orchestrator struct {
	personas   persona.Store
	transcript *chatservice.Service
	generator  Generator
	cfg        config.DialogueConfig

	// baseCtx 界定回合的生命周期，进程关停时取消进行中的回合。
	baseCtx context.Context

	mu            sync.Mutex
	busy          bool
	active        string
	tendency      relation.Tendency
	relationships relation.Map

	notify func(Snapshot)
}

// New creates the orchestrator with seeded relationship state.
func New(ctx context.Context, personas persona.Store, transcript *chatservice.Service, generator Generator, cfg config.DialogueConfig) *Orchestrator {
	return &Orchestrator{
		personas:      personas,
		transcript:    transcript,
		generator:     generator,
		cfg:           cfg,
		baseCtx:       ctx,
		relationships: relation.Seed(),
	}
}

// SetNotifier 注册状态变化回调，必须在开始处理请求前调用。
func (o *Orchestrator) SetNotifier(fn func(Snapshot)) {
	o.notify = fn
}

// welcomeLine 是开场旁白，随后是三位居民的开场台词。
const welcomeLine = "欢迎来到2035年的新弧光城。三位AI居民想与你探讨一个深刻的问题..."

// SeedOpening 写入开场剧本。仅在对话记录为空时生效。
func (o *Orchestrator) SeedOpening(ctx context.Context) error {
	if o.transcript.Len(ctx) > 0 {
		return nil
	}

	if _, err := o.transcript.Append(ctx, chat.Message{Role: chat.RoleAssistant, Content: welcomeLine}); err != nil {
		return err
	}

	for _, id := range []string{persona.IDNova, persona.IDAlex, persona.IDRachel} {
		p, ok := o.personas.FindByID(id)
		if !ok || p.OpeningLine == "" {
			continue
		}
		if _, err := o.transcript.Append(ctx, chat.Message{
			Role:      chat.RoleAssistant,
			PersonaID: id,
			Content:   p.OpeningLine,
		}); err != nil {
			return err
		}
	}
	return nil
}

// Submit 接收一条用户消息并开启新回合。空消息与回合进行中的重复提交
// 都会被拒绝。打分、账本更新与用户消息落账同步完成，居民回应序列在
// 后台推进，通过快照与通知回调对外可见。
func (o *Orchestrator) Submit(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyMessage
	}

	score := intent.Score(trimmed)

	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return ErrTurnInProgress
	}
	o.busy = true
	o.tendency, o.relationships = relation.Apply(o.tendency, o.relationships, score)
	profile := generation.Context{
		UserTendency:  o.tendency,
		Relationships: o.relationships.Clone(),
	}
	o.mu.Unlock()

	// 历史窗口截取自用户消息落账之前，当前消息单独随请求携带。
	history := chat.History(o.transcript.Messages(ctx), o.cfg.HistoryWindow)

	if _, err := o.transcript.Append(ctx, chat.Message{Role: chat.RoleUser, Content: trimmed}); err != nil {
		o.mu.Lock()
		o.busy = false
		o.mu.Unlock()
		return err
	}
	o.publish()

	go o.runTurn(o.baseCtx, trimmed, history, profile)
	return nil
}

// Snapshot 返回展示层所需的当前状态。
func (o *Orchestrator) Snapshot(ctx context.Context) Snapshot {
	messages := o.transcript.Messages(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()
	return Snapshot{
		Messages:      messages,
		ActivePersona: o.active,
		InProgress:    o.busy,
		Tendency:      o.tendency,
		Relationships: o.relationships.Standings(),
	}
}

func (o *Orchestrator) runTurn(ctx context.Context, userMessage string, history []chat.HistoryEntry, profile generation.Context) {
	defer o.finishTurn()

	for i, id := range persona.Order() {
		o.setActive(id)

		if !sleepCtx(ctx, o.cfg.ThinkingBase+time.Duration(i)*o.cfg.ThinkingStep) {
			return
		}

		text := o.invokePersona(ctx, id, userMessage, history, profile)
		if _, err := o.transcript.Append(ctx, chat.Message{
			Role:      chat.RoleAssistant,
			PersonaID: id,
			Content:   text,
		}); err != nil {
			log.Printf("[dialogue] failed to append reply for persona=%s: %v", id, err)
		}
		o.publish()

		if !sleepCtx(ctx, o.cfg.ResponsePause) {
			return
		}
	}
}

// invokePersona 等待生成调用完整结束。失败或得到空白文本时换用该居民
// 的固定替补台词，回合从不因单个居民失败而中断或留白。
func (o *Orchestrator) invokePersona(ctx context.Context, id, userMessage string, history []chat.HistoryEntry, profile generation.Context) string {
	callCtx := ctx
	if o.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.cfg.RequestTimeout)
		defer cancel()
	}

	text, err := o.generator.Generate(callCtx, id, userMessage, history, profile)
	if err != nil {
		log.Printf("[dialogue] generation failed for persona=%s: %v", id, err)
		return o.fallbackLine(id)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return o.fallbackLine(id)
	}
	return text
}

// fallbackLine 对任意居民ID都给出确定的替补台词。
func (o *Orchestrator) fallbackLine(id string) string {
	if p, ok := o.personas.FindByID(id); ok && p.FallbackLine != "" {
		return p.FallbackLine
	}
	return "（沉默了片刻，似乎在整理思绪。）"
}

func (o *Orchestrator) setActive(id string) {
	o.mu.Lock()
	o.active = id
	o.mu.Unlock()
	o.publish()
}

func (o *Orchestrator) finishTurn() {
	o.mu.Lock()
	o.active = ""
	o.busy = false
	o.mu.Unlock()
	o.publish()
}

func (o *Orchestrator) publish() {
	if o.notify == nil {
		return
	}
	o.notify(o.Snapshot(context.Background()))
}

// sleepCtx 等待给定时长，上下文取消时提前返回false。
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// QuickTopics 返回输入区展示的快捷话题。
func QuickTopics() []string {
	return []string{
		"我对AI技术很感兴趣",
		"我更重视人与人的真实连接",
		"我在思考存在的意义",
	}
}
