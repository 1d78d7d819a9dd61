package ai

import (
	"github.com/neo-arclight/roundtable/internal/model/persona"
	"github.com/neo-arclight/roundtable/internal/model/relation"
)

// BuildSystemPrompt 在居民的固定人设之上，按用户倾向追加一条简短的
// 上下文提示。无倾向数据或未达阈值时返回原始人设。
func BuildSystemPrompt(p persona.Persona, tendency *relation.Tendency) string {
	return p.SystemPrompt + contextualHint(p.ID, tendency)
}

func contextualHint(personaID string, t *relation.Tendency) string {
	if t == nil {
		return ""
	}

	switch personaID {
	case persona.IDAlex:
		if t.Tech > t.Human {
			return "\n\n(用户似乎对技术持积极态度，你可以更深入地探讨技术话题)"
		}
	case persona.IDRachel:
		if t.Human > t.Tech {
			return "\n\n(用户重视人情，你可以分享更多关于人际关系的感悟)"
		}
	case persona.IDNova:
		if t.Philosophy > 0 {
			return "\n\n(用户在进行哲学思考，你可以提出更深层的问题)"
		}
	}
	return ""
}
