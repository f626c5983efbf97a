package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Rorical/RoriFunc/internal/structured"
	"github.com/Rorical/RoriFunc/internal/tools"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherPrompt = "You are a helpful assistant."

type recordingTool struct {
	tools.WeatherTool
	calls int
}

func (r *recordingTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	r.calls++
	return r.WeatherTool.Execute(ctx, args)
}

func weatherService(t *testing.T, model *fakeModel, opts Options) (*Service, *recordingTool) {
	t.Helper()
	tool := &recordingTool{}
	reg, err := tools.NewRegistry(tool)
	require.NoError(t, err)
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}
	return NewService(model.client(), reg, opts), tool
}

func TestTurnStreamsToolCallAndAnswer(t *testing.T) {
	model := newFakeModel(t,
		streamed(
			toolChunk(0, "call_abc", "get_current_weather", `{"loca`),
			toolChunk(0, "", "", `tion":"To`),
			toolChunk(0, "", "", `kyo"}`),
			finishChunk(openai.FinishReasonToolCalls),
		),
		streamed(
			textChunk("It's 10°F "),
			textChunk("in Tokyo."),
			finishChunk(openai.FinishReasonStop),
		),
	)
	svc, tool := weatherService(t, model, Options{Stream: true})

	var deltas []string
	var results []string
	conv := NewConversation(weatherPrompt)
	res, err := svc.Turn(context.Background(), conv, "What's the weather in Tokyo?", Hooks{
		OnText:       func(d string) { deltas = append(deltas, d) },
		OnToolResult: func(_ openai.ToolCall, out string) { results = append(results, out) },
	})
	require.NoError(t, err)

	assert.Equal(t, TurnToolCalls, res.Kind)
	assert.Equal(t, 1, res.ToolRounds)
	assert.Equal(t, "It's 10°F in Tokyo.", res.Text)
	assert.Equal(t, []string{"It's 10°F ", "in Tokyo."}, deltas)
	assert.Equal(t, 1, tool.calls)

	const weather = `{"location": "Tokyo", "temperature": "10", "unit": "fahrenheit"}`
	assert.Equal(t, []string{weather}, results)

	msgs := conv.Messages()
	require.Len(t, msgs, 5)
	assert.Equal(t, openai.ChatMessageRoleUser, msgs[1].Role)
	require.Len(t, msgs[2].ToolCalls, 1)
	assert.Equal(t, "call_abc", msgs[2].ToolCalls[0].ID)
	assert.Equal(t, `{"location":"Tokyo"}`, msgs[2].ToolCalls[0].Function.Arguments)
	assert.Equal(t, openai.ChatMessageRoleTool, msgs[3].Role)
	assert.Equal(t, "call_abc", msgs[3].ToolCallID)
	assert.Equal(t, weather, msgs[3].Content)
	assert.Equal(t, openai.ChatMessageRoleAssistant, msgs[4].Role)
	assert.Equal(t, "It's 10°F in Tokyo.", msgs[4].Content)

	sent := model.sent()
	require.Len(t, sent, 2)
	assert.True(t, sent[0].Stream)
	require.Len(t, sent[0].Tools, 1)
	assert.Equal(t, "get_current_weather", sent[0].Tools[0].Function.Name)
	assert.Equal(t, "auto", sent[0].ToolChoice)

	assert.Empty(t, sent[1].Tools, "follow-up request must not offer tools")
	assert.Nil(t, sent[1].ToolChoice)
	require.Len(t, sent[1].Messages, 4)
	assert.Equal(t, openai.ChatMessageRoleTool, sent[1].Messages[3].Role)
	assert.Equal(t, weather, sent[1].Messages[3].Content)
}

func TestTurnParallelCallsRunInOrder(t *testing.T) {
	model := newFakeModel(t,
		streamed(
			toolChunk(0, "call_1", "get_current_weather", `{"location":"San Francisco"}`),
			toolChunk(1, "call_2", "get_current_weather", `{"location":"Tokyo"}`),
			toolChunk(2, "call_3", "get_current_weather", `{"location":"Paris", "unit":"celsius"}`),
		),
		streamed(textChunk("Done.")),
	)
	svc, tool := weatherService(t, model, Options{Stream: true})

	var order []string
	conv := NewConversation(weatherPrompt)
	res, err := svc.Turn(context.Background(), conv, "What's the weather like in San Francisco, Tokyo, and Paris?", Hooks{
		OnToolCall: func(c openai.ToolCall) { order = append(order, c.ID) },
	})
	require.NoError(t, err)
	assert.Equal(t, 3, tool.calls)
	assert.Equal(t, []string{"call_1", "call_2", "call_3"}, order)
	require.Len(t, res.Calls, 3)

	msgs := conv.Messages()
	require.Len(t, msgs, 7)
	assert.Equal(t, `{"location": "Paris", "temperature": "22", "unit": "celsius"}`, msgs[5].Content)
	assert.Equal(t, "call_3", msgs[5].ToolCallID)
}

func TestTurnTextOnly(t *testing.T) {
	model := newFakeModel(t, streamed(textChunk("Hello"), textChunk(" there")))
	svc, tool := weatherService(t, model, Options{Stream: true})

	conv := NewConversation(weatherPrompt)
	res, err := svc.Turn(context.Background(), conv, "hi", Hooks{})
	require.NoError(t, err)
	assert.Equal(t, TurnText, res.Kind)
	assert.Equal(t, "Hello there", res.Text)
	assert.Zero(t, tool.calls)
	assert.Len(t, model.sent(), 1)
	assert.Equal(t, 3, conv.Len())
}

func TestTurnEmptyReplyAppendsNothing(t *testing.T) {
	model := newFakeModel(t, streamed(finishChunk(openai.FinishReasonStop)))
	svc, _ := weatherService(t, model, Options{Stream: true})

	conv := NewConversation(weatherPrompt)
	res, err := svc.Turn(context.Background(), conv, "hi", Hooks{})
	require.NoError(t, err)
	assert.Equal(t, TurnEmpty, res.Kind)
	assert.Equal(t, "empty", res.Kind.String())
	assert.Equal(t, 2, conv.Len())
}

func TestTurnUnknownFunction(t *testing.T) {
	model := newFakeModel(t, streamed(
		toolChunk(0, "call_1", "get_current_weather", `{"location":"Paris"}`),
		toolChunk(1, "call_2", "get_stock_price", `{"symbol":"ACME"}`),
	))
	svc, tool := weatherService(t, model, Options{Stream: true})

	conv := NewConversation(weatherPrompt)
	_, err := svc.Turn(context.Background(), conv, "hi", Hooks{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFunction)
	assert.True(t, IsTurnFailure(err))
	assert.Equal(t, "Function get_stock_price does not exist", err.Error())

	assert.Zero(t, tool.calls, "no tool runs when any call is unknown")
	assert.Len(t, model.sent(), 1)
	assert.Equal(t, 2, conv.Len(), "log keeps only the system and user messages")
}

func TestTurnMalformedArguments(t *testing.T) {
	for name, args := range map[string]string{
		"truncated":  `{"location": "Tokyo"`,
		"empty":      ``,
		"not object": `["Tokyo"]`,
		"null":       `null`,
	} {
		t.Run(name, func(t *testing.T) {
			model := newFakeModel(t, streamed(toolChunk(0, "call_1", "get_current_weather", args)))
			svc, tool := weatherService(t, model, Options{Stream: true})

			conv := NewConversation(weatherPrompt)
			_, err := svc.Turn(context.Background(), conv, "hi", Hooks{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedArguments)
			assert.True(t, strings.HasPrefix(err.Error(), "Malformed arguments for function get_current_weather"))
			assert.Zero(t, tool.calls)
			assert.Equal(t, 2, conv.Len())
		})
	}
}

func TestTurnInvalidArguments(t *testing.T) {
	cases := map[string]string{
		"extra":   `{"location":"Tokyo","country":"JP"}`,
		"missing": `{"unit":"celsius"}`,
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			model := newFakeModel(t, streamed(toolChunk(0, "call_1", "get_current_weather", args)))
			svc, tool := weatherService(t, model, Options{Stream: true})

			_, err := svc.Turn(context.Background(), NewConversation(weatherPrompt), "hi", Hooks{})
			assert.ErrorIs(t, err, ErrInvalidArguments)
			assert.Zero(t, tool.calls)
		})
	}
}

func TestTurnPassesOutOfSchemaValuesToTool(t *testing.T) {
	cases := []struct {
		name   string
		call   openai.ToolCall
		result string
	}{
		{
			name:   "unknown index",
			call:   functionCall("call_1", "get_stock_market_data", `{"index":"DAX"}`),
			result: "Invalid index. Please choose from 'S&P 500', 'NASDAQ Composite', 'Dow Jones Industrial Average', 'Financial Times Stock Exchange 100 Index'.",
		},
		{
			name:   "unknown operator",
			call:   functionCall("call_1", "calculator", `{"num1":7,"num2":2,"operator":"%"}`),
			result: "Invalid operator",
		},
		{
			name:   "unit outside enum",
			call:   functionCall("call_1", "get_current_weather", `{"location":"Tokyo","unit":"Celsius"}`),
			result: `{"location": "Tokyo", "temperature": "10", "unit": "Celsius"}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg, err := tools.NewRegistry(&tools.WeatherTool{}, &tools.StockMarketTool{}, &tools.CalculatorTool{})
			require.NoError(t, err)
			model := newFakeModel(t,
				answered(callMessage(tc.call), openai.FinishReasonToolCalls),
				answered(textMessage("Sorry, I cannot help with that."), openai.FinishReasonStop),
			)
			svc := NewService(model.client(), reg, Options{Model: "gpt-4o-mini"})

			conv := NewConversation("")
			res, err := svc.Turn(context.Background(), conv, "hi", Hooks{})
			require.NoError(t, err)
			assert.Equal(t, TurnToolCalls, res.Kind)

			sent := model.sent()
			require.Len(t, sent, 2)
			last := sent[1].Messages[len(sent[1].Messages)-1]
			assert.Equal(t, openai.ChatMessageRoleTool, last.Role)
			assert.Equal(t, "call_1", last.ToolCallID)
			assert.Equal(t, tc.result, last.Content)
		})
	}
}

func TestTurnFillsMissingCallID(t *testing.T) {
	model := newFakeModel(t,
		streamed(toolChunk(0, "", "get_current_weather", `{"location":"Paris"}`)),
		streamed(textChunk("22 degrees")),
	)
	svc, _ := weatherService(t, model, Options{Stream: true})

	conv := NewConversation(weatherPrompt)
	_, err := svc.Turn(context.Background(), conv, "hi", Hooks{})
	require.NoError(t, err)

	msgs := conv.Messages()
	id := msgs[2].ToolCalls[0].ID
	assert.True(t, strings.HasPrefix(id, "call_"))
	assert.Equal(t, id, msgs[3].ToolCallID)
}

func TestTurnNonStreaming(t *testing.T) {
	counter := &tools.QuestionCounter{}
	reg, err := tools.CounterTools(counter)
	require.NoError(t, err)

	model := newFakeModel(t,
		answered(callMessage(functionCall("call_1", "increment_question_counter", `{}`)), openai.FinishReasonToolCalls),
		answered(textMessage("You are super awesome! That is question one."), openai.FinishReasonStop),
	)
	svc := NewService(model.client(), reg, Options{
		Model:       "gpt-4o-mini",
		Temperature: 1,
		TopP:        0.95,
		MaxTokens:   400,
	})

	var deltas []string
	conv := NewConversation("Count questions.")
	res, err := svc.Turn(context.Background(), conv, "What is Go?", Hooks{OnText: func(d string) { deltas = append(deltas, d) }})
	require.NoError(t, err)
	assert.Equal(t, 1, counter.Count())
	assert.Equal(t, "You are super awesome! That is question one.", res.Text)
	assert.Equal(t, []string{res.Text}, deltas)
	assert.Equal(t, openai.FinishReasonStop, res.FinishReason)

	sent := model.sent()
	require.Len(t, sent, 2)
	assert.False(t, sent[0].Stream)
	assert.Equal(t, float32(1), sent[0].Temperature)
	assert.Equal(t, float32(0.95), sent[0].TopP)
	assert.Equal(t, 400, sent[0].MaxTokens)
	assert.Equal(t, "1", conv.Messages()[3].Content)
}

func TestTurnDropsCallsAfterRoundLimit(t *testing.T) {
	model := newFakeModel(t,
		answered(callMessage(functionCall("call_1", "get_current_weather", `{"location":"Tokyo"}`)), openai.FinishReasonToolCalls),
		answered(openai.ChatCompletionMessage{
			Role:      openai.ChatMessageRoleAssistant,
			Content:   "Tokyo is cold.",
			ToolCalls: []openai.ToolCall{functionCall("call_2", "get_current_weather", `{"location":"Paris"}`)},
		}, openai.FinishReasonToolCalls),
	)
	svc, tool := weatherService(t, model, Options{})

	conv := NewConversation(weatherPrompt)
	res, err := svc.Turn(context.Background(), conv, "hi", Hooks{})
	require.NoError(t, err)
	assert.Equal(t, 1, tool.calls)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, "call_2", res.Dropped[0].ID)
	assert.Equal(t, "Tokyo is cold.", res.Text)

	last, ok := conv.Last()
	require.True(t, ok)
	assert.Empty(t, last.ToolCalls)
	assert.Equal(t, "Tokyo is cold.", last.Content)
}

func TestTurnChainsRoundsUpToLimit(t *testing.T) {
	now := func() time.Time { return time.Date(2023, 7, 14, 12, 0, 0, 0, time.UTC) }
	reg, err := tools.SequentialTools(now)
	require.NoError(t, err)

	model := newFakeModel(t,
		answered(callMessage(functionCall("call_1", "get_stock_market_data", `{"index":"S&P 500"}`)), openai.FinishReasonToolCalls),
		answered(callMessage(functionCall("call_2", "calculator", `{"num1":4510.04,"num2":4472.16,"operator":"-"}`)), openai.FinishReasonToolCalls),
		answered(textMessage("It rose by about 37.88 points."), openai.FinishReasonStop),
	)
	svc := NewService(model.client(), reg, Options{Model: "gpt-4o-mini", MaxToolRounds: 3})

	conv := NewConversation("Use the tools step by step.")
	res, err := svc.Turn(context.Background(), conv, "How much did S&P 500 change between July 12 and July 13? Use the calculator.", Hooks{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.ToolRounds)
	require.Len(t, res.Calls, 2)
	assert.Equal(t, "calculator", res.Calls[1].Function.Name)

	sent := model.sent()
	require.Len(t, sent, 3)
	for _, req := range sent {
		assert.Len(t, req.Tools, 3, "tools stay offered below the limit")
	}
	assert.Equal(t, 7, conv.Len())
}

func TestTurnStopsOfferingToolsAtLimit(t *testing.T) {
	model := newFakeModel(t,
		answered(callMessage(functionCall("call_1", "get_current_weather", `{"location":"Tokyo"}`)), openai.FinishReasonToolCalls),
		answered(callMessage(functionCall("call_2", "get_current_weather", `{"location":"Paris"}`)), openai.FinishReasonToolCalls),
		answered(textMessage("Tokyo 10, Paris 22."), openai.FinishReasonStop),
	)
	svc, tool := weatherService(t, model, Options{MaxToolRounds: 2})

	res, err := svc.Turn(context.Background(), NewConversation(weatherPrompt), "hi", Hooks{})
	require.NoError(t, err)
	assert.Equal(t, 2, tool.calls)
	assert.Equal(t, 2, res.ToolRounds)

	sent := model.sent()
	require.Len(t, sent, 3)
	assert.NotEmpty(t, sent[1].Tools)
	assert.Empty(t, sent[2].Tools)
}

func TestTurnRemoteErrorPropagates(t *testing.T) {
	model := newFakeModel(t, scripted{status: 500})
	svc, _ := weatherService(t, model, Options{Stream: true})

	conv := NewConversation(weatherPrompt)
	_, err := svc.Turn(context.Background(), conv, "hi", Hooks{})
	require.Error(t, err)
	assert.False(t, IsTurnFailure(err))

	var apiErr *openai.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 500, apiErr.HTTPStatusCode)
	assert.Equal(t, 2, conv.Len())
}

func TestTurnToolErrorPropagates(t *testing.T) {
	reg, err := tools.NewRegistry(&tools.CalculatorTool{})
	require.NoError(t, err)
	model := newFakeModel(t,
		answered(callMessage(functionCall("call_1", "calculator", `{"num1":1,"num2":0,"operator":"/"}`)), openai.FinishReasonToolCalls),
	)
	svc := NewService(model.client(), reg, Options{Model: "gpt-4o-mini"})

	conv := NewConversation("")
	_, err = svc.Turn(context.Background(), conv, "1/0?", Hooks{})
	assert.ErrorIs(t, err, tools.ErrDivisionByZero)
	assert.False(t, IsTurnFailure(err))
	assert.Equal(t, 1, conv.Len())
}

func TestTurnWithoutClient(t *testing.T) {
	svc := NewService(nil, nil, Options{})
	_, err := svc.Turn(context.Background(), NewConversation(""), "hi", Hooks{})
	assert.ErrorIs(t, err, ErrNoClient)
}

func TestParse(t *testing.T) {
	format, err := structured.NewFormat[structured.CoffeeMenu]("CoffeeMenu", "Parsed coffee menu")
	require.NoError(t, err)

	t.Run("decodes", func(t *testing.T) {
		model := newFakeModel(t, answered(textMessage(`{"items":[{"category":"Cold Brews","item":"Cold Brew","description":"Smooth","price":"$4.99"}]}`), openai.FinishReasonStop))
		svc := NewService(model.client(), nil, Options{Model: "gpt-4o-mini"})
		conv := NewConversation(structured.MenuPrompt(structured.SampleMenuText))

		menu, err := Parse(context.Background(), svc, conv, format).Unwrap()
		require.NoError(t, err)
		require.Len(t, menu.Items, 1)
		assert.Equal(t, "$4.99", menu.Items[0].Price)
		assert.Equal(t, 2, conv.Len())

		sent := model.sent()
		require.Len(t, sent, 1)
		require.NotNil(t, sent[0].ResponseFormat)
		assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONSchema, sent[0].ResponseFormat.Type)
		assert.Empty(t, sent[0].Tools)
	})

	t.Run("content filter", func(t *testing.T) {
		model := newFakeModel(t, answered(textMessage(""), openai.FinishReasonContentFilter))
		svc := NewService(model.client(), nil, Options{Model: "gpt-4o-mini"})
		conv := NewConversation("parse")

		res := Parse(context.Background(), svc, conv, format)
		assert.ErrorIs(t, res.Err, ErrContentFiltered)
		assert.Equal(t, 1, conv.Len())
	})

	t.Run("schema mismatch", func(t *testing.T) {
		model := newFakeModel(t, answered(textMessage(`{"items":[{"item":"Espresso"}]}`), openai.FinishReasonStop))
		svc := NewService(model.client(), nil, Options{Model: "gpt-4o-mini"})

		res := Parse(context.Background(), svc, NewConversation("parse"), format)
		var verr *structured.ValidationError
		assert.True(t, errors.As(res.Err, &verr))
	})
}
