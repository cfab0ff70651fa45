// This file declares the tool schema the resolution engine exposes to
// the LLM. functions.go says WHAT each function does; prompts.go says
// WHEN to call it.
//
// Gemini declarations use genai.Type* constants (genai.TypeString =
// "STRING"). buildOpenAITools lowercases them to match the JSON Schema
// spec for OpenAI-compatible providers.
package intent

import (
	"strings"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// campusParam is shared by every search function.
func campusParam() *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeString,
		Description: "校区。songjiang（松江）或 yanan（延安路）。用户未提及时省略。",
	}
}

// requirementsParam captures feature keywords for the scorer.
func requirementsParam() *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeString,
		Description: "设施或特性关键词，空格或逗号分隔。范例：「投影 白板」「音响」",
	}
}

// minCapacityParam captures the required headcount.
func minCapacityParam() *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeInteger,
		Description: "最少容纳人数。范例：「能坐6个人」→ 6",
	}
}

// BuildFunctions returns the function declarations for intent
// resolution. Exactly one function call is expected per turn.
func BuildFunctions() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        "search_sports",
			Description: "查询运动场地（羽毛球、篮球、台球、游泳等）的可预约时段。",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"campus": campusParam(),
					"sport": {
						Type:        genai.TypeString,
						Description: "运动项目名称。范例：「羽毛球」「台球」。未提及时省略。",
					},
					"requirements": requirementsParam(),
					"min_capacity": minCapacityParam(),
				},
			},
		},
		{
			Name:        "search_meeting",
			Description: "查询会议室、研讨间的可预约时段。",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"campus":       campusParam(),
					"requirements": requirementsParam(),
					"min_capacity": minCapacityParam(),
				},
			},
		},
		{
			Name:        "search_classroom",
			Description: "查询空教室、自习教室的可用时段。",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"campus":       campusParam(),
					"requirements": requirementsParam(),
					"min_capacity": minCapacityParam(),
				},
			},
		},
		{
			Name:        "search_library",
			Description: "查询图书馆各区域剩余座位。",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"campus": campusParam(),
				},
			},
		},
		{
			Name:        "search_counseling",
			Description: "查询心理咨询的值班安排与可预约时段。",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"campus": campusParam(),
				},
			},
		},
		{
			Name:        "search_canteen",
			Description: "查询食堂当前拥挤程度与推荐就餐时间。",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"campus": campusParam(),
				},
			},
		},
		{
			Name:        "find_entity",
			Description: "查询学院、研究院或部门的主页入口。仅在用户明确提到单位名称时使用。",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: "单位名称。范例：「计算机学院」「体育部」",
					},
				},
				Required: []string{"name"},
			},
		},
		{
			Name:        "request_campus_selection",
			Description: "用户想切换校区、或明确询问有哪些校区时，请求校区选择。",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
		},
	}
}

// buildOpenAITools converts the declarations to the OpenAI v3 tool
// format. Schema types are lowercased per JSON Schema Draft 2020-12.
func buildOpenAITools() []openai.ChatCompletionToolUnionParam {
	funcDecls := BuildFunctions()
	result := make([]openai.ChatCompletionToolUnionParam, 0, len(funcDecls))

	for _, fd := range funcDecls {
		properties := make(map[string]any)
		for name, schema := range fd.Parameters.Properties {
			properties[name] = map[string]string{
				"type":        strings.ToLower(string(schema.Type)),
				"description": schema.Description,
			}
		}

		tool := openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        fd.Name,
			Description: openai.String(fd.Description),
			Parameters: openai.FunctionParameters{
				"type":       "object",
				"properties": properties,
				"required":   fd.Parameters.Required,
			},
		})
		result = append(result, tool)
	}

	return result
}
