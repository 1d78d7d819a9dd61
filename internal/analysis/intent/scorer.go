package intent

import "strings"

// Result 给出一条用户消息在三个价值轴上的得分。
type Result struct {
	Tech       int `json:"tech"`
	Human      int `json:"human"`
	Philosophy int `json:"philosophy"`
}

// IsZero reports whether no keyword on any axis matched.
func (r Result) IsZero() bool {
	return r.Tech == 0 && r.Human == 0 && r.Philosophy == 0
}

var techKeywords = []string{
	"技术", "ai", "人工智能", "数据", "效率", "算法", "理性", "逻辑",
}

var humanKeywords = []string{
	"情感", "人情", "温暖", "直觉", "感觉", "心灵", "连接", "理解",
}

var philosophyKeywords = []string{
	"意义", "存在", "思考", "哲学", "为什么", "本质", "真理",
}

// Score 对用户消息做关键词倾向分析。每个轴统计命中的关键词个数，
// 匹配为小写化后的子串包含，不做分词。无命中时全轴为零。
func Score(text string) Result {
	normalized := strings.ToLower(text)

	return Result{
		Tech:       countMatches(normalized, techKeywords),
		Human:      countMatches(normalized, humanKeywords),
		Philosophy: countMatches(normalized, philosophyKeywords),
	}
}

func countMatches(normalized string, keywords []string) int {
	count := 0
	for _, word := range keywords {
		if strings.Contains(normalized, word) {
			count++
		}
	}
	return count
}
