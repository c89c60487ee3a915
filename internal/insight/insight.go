package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cofrinho-app/cofrinho/internal/amount"
	"github.com/cofrinho-app/cofrinho/internal/model"
)

// Static messages used when no generated tip is available.
const (
	MsgNoTransactions = "Comece a registrar para receber dicas personalizadas!"
	MsgEmptyResponse  = "Mantenha o foco nos seus objetivos financeiros!"
	MsgFailure        = "Economizar é o primeiro passo para a liberdade!"
)

// MaxRecent is how many transactions are summarized in the prompt.
const MaxRecent = 10

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type errGenerator struct{ err error }

func (g errGenerator) Generate(context.Context, string) (string, error) { return "", g.err }

// Unavailable returns a Generator that always fails with err.
func Unavailable(err error) Generator {
	return errGenerator{err: err}
}

// Service turns a ledger summary into a short motivational tip.
type Service struct {
	gen    Generator
	logger zerolog.Logger
}

// NewService creates an insight Service. gen may be nil, in which case every
// call returns a static message.
func NewService(gen Generator, logger zerolog.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

type promptTxn struct {
	Desc string                `json:"desc"`
	Val  string                `json:"val"`
	Type model.TransactionType `json:"type"`
}

// BuildPrompt renders the request for up to MaxRecent transactions, which
// must already be ordered newest first.
func BuildPrompt(recent []model.Transaction, balance decimal.Decimal) (string, error) {
	if len(recent) > MaxRecent {
		recent = recent[:MaxRecent]
	}
	summary := make([]promptTxn, len(recent))
	for i, t := range recent {
		summary[i] = promptTxn{Desc: t.Description, Val: amount.FormatBRL(t.Amount), Type: t.Type}
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("encoding transactions: %w", err)
	}

	var b strings.Builder
	b.WriteString("Analise estas transações financeiras e dê uma dica curta (máximo 15 palavras) e motivadora em português:\n")
	fmt.Fprintf(&b, "Saldo atual: %s.\n", amount.FormatBRL(balance))
	fmt.Fprintf(&b, "Transações recentes: %s", data)
	return b.String(), nil
}

// Tip returns a generated tip, or a static message when there is nothing to
// summarize, the generator is missing or fails, or it returns blank text.
// It never returns an error.
func (s *Service) Tip(ctx context.Context, recent []model.Transaction, balance decimal.Decimal) string {
	if len(recent) == 0 {
		return MsgNoTransactions
	}
	if s.gen == nil {
		return MsgEmptyResponse
	}

	prompt, err := BuildPrompt(recent, balance)
	if err != nil {
		s.logger.Warn().Err(err).Msg("building insight prompt")
		return MsgFailure
	}

	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Msg("generating insight")
		return MsgFailure
	}
	if text = strings.TrimSpace(text); text == "" {
		return MsgEmptyResponse
	}
	return text
}
