package relation

import (
	"github.com/neo-arclight/roundtable/internal/analysis/intent"
	"github.com/neo-arclight/roundtable/internal/model/persona"
)

// Tendency 累计用户在三个价值轴上的倾向，只增不减。
type Tendency struct {
	Tech       int `json:"tech"`
	Human      int `json:"human"`
	Philosophy int `json:"philosophy"`
}

// Map 记录每位居民对用户的好感度，键固定为三位居民。
type Map map[string]int

// Seed 返回初始关系值。瑞秋作为酒保天然更亲近来客，诺娃对任何
// 对话者都抱有好奇，艾克斯则从零开始。
func Seed() Map {
	return Map{
		persona.IDAlex:   0,
		persona.IDRachel: 20,
		persona.IDNova:   10,
	}
}

// Clone returns an independent copy of the map.
func (m Map) Clone() Map {
	copied := make(Map, len(m))
	for id, v := range m {
		copied[id] = v
	}
	return copied
}

// Apply 根据一次倾向分析结果推进累计倾向与好感度，返回更新后的副本。
//
// 每位居民绑定一个价值轴：艾克斯-技术、瑞秋-人情、诺娃-哲思。
// 绑定轴有得分时好感度增加得分的五倍；诺娃在毫无哲思信号时仍会
// 无条件 +1（天生的亲和漂移）；艾克斯与瑞秋在对方轴得分反超时 -2。
// 三条规则刻意不对称，属于角色设定而非待修正的缺陷。
func Apply(t Tendency, m Map, score intent.Result) (Tendency, Map) {
	updated := Tendency{
		Tech:       t.Tech + score.Tech,
		Human:      t.Human + score.Human,
		Philosophy: t.Philosophy + score.Philosophy,
	}

	next := m.Clone()
	next[persona.IDAlex] += rivalAdjust(score.Tech, score.Human)
	next[persona.IDRachel] += rivalAdjust(score.Human, score.Tech)
	if score.Philosophy > 0 {
		next[persona.IDNova] += score.Philosophy * 5
	} else {
		next[persona.IDNova]++
	}

	return updated, next
}

func rivalAdjust(linked, rival int) int {
	if linked > 0 {
		return linked * 5
	}
	if rival > linked {
		return -2
	}
	return 0
}

// Level 将好感度分值映射为展示层使用的冷暖档位。
func Level(affinity int) string {
	switch {
	case affinity > 20:
		return "close"
	case affinity < -10:
		return "strained"
	default:
		return "neutral"
	}
}

// Standing 是快照中单个居民的好感度条目。
type Standing struct {
	PersonaID string `json:"personaId"`
	Affinity  int    `json:"affinity"`
	Level     string `json:"level"`
}

// Standings 按固定居民顺序展开好感度映射。
func (m Map) Standings() []Standing {
	order := persona.Order()
	standings := make([]Standing, 0, len(order))
	for _, id := range order {
		standings = append(standings, Standing{
			PersonaID: id,
			Affinity:  m[id],
			Level:     Level(m[id]),
		})
	}
	return standings
}
