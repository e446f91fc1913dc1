package llm

import (
	"github.com/sashabaranov/go-openai"
)

const scientificReport = `Researchers at the University of Oslo published a peer-reviewed study in Nature on Tuesday describing a 4% decline in Arctic sea ice over the past decade, citing satellite data from the Norwegian Polar Institute.`

const realArguments = `{"verdict":"REAL","confidence":0.92,"summary":"Neutral, well-sourced report citing a named journal and institution.","indicators":[{"label":"Cites peer-reviewed journal","type":"positive"},{"label":"Neutral tone","type":"positive"},{"label":"Specific verifiable figures","type":"positive"}]}`

// toolCallResponse builds a gateway response carrying one tool call
func toolCallResponse(name, arguments string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:      "chatcmpl-123",
		Object:  "chat.completion",
		Created: 1677652288,
		Model:   DefaultModel,
		Choices: []openai.ChatCompletionChoice{
			{
				Index: 0,
				Message: openai.ChatCompletionMessage{
					Role: openai.ChatMessageRoleAssistant,
					ToolCalls: []openai.ToolCall{
						{
							ID:   "call_1",
							Type: openai.ToolTypeFunction,
							Function: openai.FunctionCall{
								Name:      name,
								Arguments: arguments,
							},
						},
					},
				},
				FinishReason: openai.FinishReasonToolCalls,
			},
		},
		Usage: openai.Usage{TotalTokens: 321},
	}
}
