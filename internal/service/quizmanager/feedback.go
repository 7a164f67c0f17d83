package quizmanager

import (
	"math/rand"
	"sync"
	"time"
)

// Encouragements - фразы для правильного ответа
var Encouragements = []string{
	"🎉 Excellent work!",
	"🚀 You're on fire!",
	"💪 Keep it up!",
	"⭐ Brilliant!",
	"🧠 Big brain move!",
	"✨ Fantastic!",
	"🐍 Pythonic!",
	"🎯 Spot on!",
}

// HintsOnWrong - фразы для неправильного ответа
var HintsOnWrong = []string{
	"💡 Not quite — try thinking about it differently!",
	"🔍 Close! Review the concept and try again.",
	"📚 Good attempt! Here's a hint to help you.",
	"🤔 Almost there! Let's look at this another way.",
}

// RandomSource - источник случайных чисел. *rand.Rand удовлетворяет интерфейсу.
type RandomSource interface {
	Intn(n int) int
}

// FeedbackPicker выбирает фразы из фиксированных пулов.
// Влияет только на текст, никогда на очки.
type FeedbackPicker struct {
	mu  sync.Mutex // *rand.Rand не потокобезопасен
	rnd RandomSource
}

// NewFeedbackPicker создает выборщик фраз; nil означает источник, засеянный текущим временем
func NewFeedbackPicker(rnd RandomSource) *FeedbackPicker {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &FeedbackPicker{rnd: rnd}
}

// NewSeededFeedbackPicker создает детерминированный выборщик
func NewSeededFeedbackPicker(seed int64) *FeedbackPicker {
	return NewFeedbackPicker(rand.New(rand.NewSource(seed)))
}

// Encouragement возвращает случайную фразу поддержки
func (p *FeedbackPicker) Encouragement() string {
	return p.pick(Encouragements)
}

// WrongHint возвращает случайную фразу для неверного ответа
func (p *FeedbackPicker) WrongHint() string {
	return p.pick(HintsOnWrong)
}

func (p *FeedbackPicker) pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return pool[p.rnd.Intn(len(pool))]
}
