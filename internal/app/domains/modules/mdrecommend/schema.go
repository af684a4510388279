package mdrecommend

import (
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/egnd-2025/krishi-backend/internal/app/pkg/errorx"
)

// 咨询输出的 JSON Schema
// AI 输出只有通过 schema 校验才进入后续环节，校验失败整体走兜底，
// 不做字段级的部分信任
const cropSchemaText = `{
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["name", "score"],
    "properties": {
      "name": {"type": "string", "minLength": 1},
      "score": {"type": "integer", "minimum": 0, "maximum": 100},
      "reasons": {"type": "array", "items": {"type": "string"}},
      "yieldPotential": {"type": "string"},
      "risks": {"type": "array", "items": {"type": "string"}}
    }
  }
}`

const productSchemaText = `{
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["type", "product", "quantity", "priority"],
    "properties": {
      "type": {"enum": ["seed", "fertilizer", "tool", "pesticide"]},
      "product": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1}
        }
      },
      "quantity": {"type": "integer", "minimum": 1},
      "priority": {"enum": ["high", "medium", "low"]},
      "reason": {"type": "string"}
    }
  }
}`

var (
	cropSchema    = jsonschema.MustCompileString("crop_recommendations.json", cropSchemaText)
	productSchema = jsonschema.MustCompileString("product_recommendations.json", productSchemaText)
)

// decodeValidated 剥离代码围栏后按 schema 校验并反序列化
// 任何偏差（非 JSON、结构不符）都返回 Validation 错误，由调用方路由到兜底
func decodeValidated(raw string, schema *jsonschema.Schema, out interface{}) error {
	text := stripCodeFence(raw)

	var doc interface{}
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return errorx.Wrap(errorx.KindValidation, "advisory output is not valid JSON", err)
	}

	if err := schema.Validate(doc); err != nil {
		return errorx.Wrap(errorx.KindValidation, "advisory output failed schema validation", err)
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return errorx.Wrap(errorx.KindValidation, "decode advisory output failed", err)
	}
	return nil
}

// stripCodeFence 剥离模型偶尔带上的 Markdown 代码围栏
func stripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
