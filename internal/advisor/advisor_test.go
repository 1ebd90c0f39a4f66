package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/log"
	"github.com/fiplan/goal-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeTipPrompt(t *testing.T) {
	snap := domain.Snapshot{
		JobIncome:             5000,
		MonthlyDividendIncome: 210.8333,
		RentalIncome:          1350,
		OtherIncome:           300,
		SavingsIncome:         50,
	}
	b := BreakdownFor(snap)
	assert.Equal(t, 350.0, b.Other)

	prompt := IncomeTipPrompt(b)
	assert.True(t, strings.HasPrefix(prompt,
		"Income breakdown: Job $5000/mo, Stocks $211/mo, Rental $1350/mo, Other $350/mo (72% from largest source). "))
	assert.Contains(t, prompt, "STRICT RULES: Max 15 words.")
	assert.Contains(t, prompt, `"Consider **investing $500/mo** in dividend aristocrats for 4% yield."`)
	assert.NotContains(t, prompt, "%!")
}

func TestIncomeBreakdown_NoIncome(t *testing.T) {
	b := IncomeBreakdown{}
	assert.Zero(t, b.Concentration())
	assert.Contains(t, IncomeTipPrompt(b), "(0% from largest source)")
}

func TestExpenseTipPrompt(t *testing.T) {
	expenses := []domain.ExpenseItem{
		{Name: "Rent", MonthlyAmount: 1500},
		{Name: "Coffee", MonthlyAmount: 12.5},
		{Name: "Car", MonthlyAmount: 487.5},
	}
	prompt, ok := ExpenseTipPrompt(expenses)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(prompt, "Expenses: Rent: $1500, Coffee: $12.5, Car: $487.5 (Rent is 75% of total). "))
	assert.Contains(t, prompt, `"Consider **negotiating rent down 10%** to save $300/mo."`)
	assert.NotContains(t, prompt, "%!")

	_, ok = ExpenseTipPrompt(nil)
	assert.False(t, ok)
	_, ok = ExpenseTipPrompt([]domain.ExpenseItem{{Name: "Free", MonthlyAmount: 0}})
	assert.False(t, ok)
}

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{})
}

func TestAdvisorTips(t *testing.T) {
	var got string
	ok := ProviderFunc(func(ctx context.Context, message string) (string, error) {
		got = message
		return "  Consider **selling the car** to save $400/mo. \n", nil
	})
	empty := ProviderFunc(func(ctx context.Context, message string) (string, error) { return "", nil })
	emptyErr := ProviderFunc(func(ctx context.Context, message string) (string, error) { return "", ErrEmptyReply })
	failing := ProviderFunc(func(ctx context.Context, message string) (string, error) { return "", errors.New("down") })

	expenses := []domain.ExpenseItem{{Name: "Car", MonthlyAmount: 400}}
	ctx := context.Background()

	a := New(ok, quietLogger())
	assert.Equal(t, "Consider **selling the car** to save $400/mo.", a.ExpenseTip(ctx, expenses))
	assert.True(t, strings.HasPrefix(got, "Expenses: Car: $400 (Car is 100% of total)."))

	assert.Equal(t, NoExpensesTip, a.ExpenseTip(ctx, nil))
	assert.Equal(t, NoTipAvailable, New(empty, quietLogger()).IncomeTip(ctx, domain.Snapshot{JobIncome: 1}))
	assert.Equal(t, NoTipAvailable, New(emptyErr, quietLogger()).ExpenseTip(ctx, expenses))
	assert.Equal(t, TipUnavailable, New(failing, quietLogger()).IncomeTip(ctx, domain.Snapshot{}))
	assert.Equal(t, TipUnavailable, New(nil, quietLogger()).IncomeTip(ctx, domain.Snapshot{}))

	_, err := New(nil, quietLogger()).Chat(ctx, "hi")
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestAPIClient_Reply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Message == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(ChatResponse{Reply: "echo: " + req.Message})
	}))
	defer srv.Close()

	c := NewAPIClient(srv.URL+"/api", srv.Client())
	reply, err := c.Reply(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "echo: hello", reply)

	_, err = c.Reply(context.Background(), "fail")
	assert.ErrorContains(t, err, "chat API returned 500")
}

func TestAnthropicProvider_Reply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-3-haiku-20240307", body["model"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-haiku-20240307",` +
			`"content":[{"type":"text","text":"Try **automating $200/mo** into SCHD."}],` +
			`"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":9}}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider("test-key", "", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	reply, err := p.Reply(context.Background(), "tip please")
	require.NoError(t, err)
	assert.Equal(t, "Try **automating $200/mo** into SCHD.", reply)
}

func TestGeminiProvider_Reply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-2.5-flash:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"You could **refinance** to save 1%."}]}}]}`))
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(context.Background(), "test-key", "", srv.URL+"/", srv.Client())
	require.NoError(t, err)
	reply, err := p.Reply(context.Background(), "tip please")
	require.NoError(t, err)
	assert.Equal(t, "You could **refinance** to save 1%.", reply)
}

func TestGeminiProvider_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(context.Background(), "test-key", "", srv.URL+"/", srv.Client())
	require.NoError(t, err)
	_, err = p.Reply(context.Background(), "tip please")
	assert.ErrorIs(t, err, ErrEmptyReply)
}
