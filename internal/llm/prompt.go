package llm

import (
	"github.com/ppiankov/verdict/internal/model"
	"github.com/sashabaranov/go-openai"
)

// ClassifyToolName is the single function the model is forced to call
const ClassifyToolName = "classify_news"

// SystemPrompt is the fixed classification policy
const SystemPrompt = `You are a fake news detection AI classifier. Analyze the given news text and determine if it is REAL or FAKE news.

Consider these factors:
- Sensationalist or emotionally manipulative language
- Lack of credible sources or attribution
- Logical inconsistencies or factual errors
- Clickbait-style headlines or exaggerated claims
- Use of absolute statements without evidence
- Grammar and writing quality
- Whether claims can be verified

You MUST respond using the ` + ClassifyToolName + ` tool.`

const userPromptPrefix = "Analyze this news text:\n\n"

// BuildUserMessage prefixes the validated text with the analysis instruction
func BuildUserMessage(text string) string {
	return userPromptPrefix + text
}

// ClassifyTool declares ClassificationSchema as the tool signature
func ClassifyTool() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        ClassifyToolName,
			Description: "Classify news text as real or fake with confidence and reasoning",
			Parameters:  ClassificationSchema,
		},
	}
}

// BuildRequest constructs the chat completion request for one article.
// The tool choice names ClassifyToolName so the reply cannot be free text.
func BuildRequest(modelName string, req model.AnalysisRequest) openai.ChatCompletionRequest {
	if modelName == "" {
		modelName = DefaultModel
	}

	return openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildUserMessage(req.Text),
			},
		},
		Tools: []openai.Tool{ClassifyTool()},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: ClassifyToolName},
		},
	}
}
