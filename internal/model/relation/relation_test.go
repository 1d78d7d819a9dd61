package relation

import (
	"testing"

	"github.com/neo-arclight/roundtable/internal/analysis/intent"
	"github.com/neo-arclight/roundtable/internal/model/persona"
)

func TestSeedHasAllPersonas(t *testing.T) {
	m := Seed()
	if len(m) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(m))
	}
	if m[persona.IDAlex] != 0 || m[persona.IDRachel] != 20 || m[persona.IDNova] != 10 {
		t.Fatalf("unexpected seed values: %v", m)
	}
}

func TestApplyTechSignal(t *testing.T) {
	tendency, m := Apply(Tendency{}, Seed(), intent.Result{Tech: 2})

	if tendency.Tech != 2 || tendency.Human != 0 || tendency.Philosophy != 0 {
		t.Fatalf("unexpected tendency: %+v", tendency)
	}
	if m[persona.IDAlex] != 10 {
		t.Fatalf("alex affinity: got %d want 10", m[persona.IDAlex])
	}
	// 瑞秋的人情轴无得分且技术轴反超，受竞争惩罚。
	if m[persona.IDRachel] != 18 {
		t.Fatalf("rachel affinity: got %d want 18", m[persona.IDRachel])
	}
	// 诺娃无哲思信号时仍有亲和漂移。
	if m[persona.IDNova] != 11 {
		t.Fatalf("nova affinity: got %d want 11", m[persona.IDNova])
	}
}

func TestApplyHumanSignal(t *testing.T) {
	_, m := Apply(Tendency{}, Seed(), intent.Result{Human: 1})

	if m[persona.IDAlex] != -2 {
		t.Fatalf("alex affinity: got %d want -2", m[persona.IDAlex])
	}
	if m[persona.IDRachel] != 25 {
		t.Fatalf("rachel affinity: got %d want 25", m[persona.IDRachel])
	}
}

func TestApplyPhilosophySignal(t *testing.T) {
	_, m := Apply(Tendency{}, Seed(), intent.Result{Philosophy: 3})

	if m[persona.IDNova] != 25 {
		t.Fatalf("nova affinity: got %d want 25", m[persona.IDNova])
	}
	// 竞争惩罚只在技术与人情两轴之间生效。
	if m[persona.IDAlex] != 0 || m[persona.IDRachel] != 20 {
		t.Fatalf("unexpected rival adjustments: %v", m)
	}
}

func TestApplyZeroSignal(t *testing.T) {
	tendency, m := Apply(Tendency{Tech: 4}, Seed(), intent.Result{})

	if tendency.Tech != 4 {
		t.Fatalf("tendency must not decrease: %+v", tendency)
	}
	if m[persona.IDAlex] != 0 || m[persona.IDRachel] != 20 {
		t.Fatalf("no-signal turn must not move alex/rachel: %v", m)
	}
	if m[persona.IDNova] != 11 {
		t.Fatalf("nova baseline drift missing: %v", m)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	original := Seed()
	Apply(Tendency{}, original, intent.Result{Tech: 1})

	if original[persona.IDAlex] != 0 {
		t.Fatal("input map mutated")
	}
}

func TestTendencyMonotonicAcrossTurns(t *testing.T) {
	tendency := Tendency{}
	m := Seed()
	inputs := []intent.Result{
		{Tech: 2}, {}, {Human: 1, Philosophy: 1}, {Philosophy: 2}, {},
	}

	prev := tendency
	for _, in := range inputs {
		tendency, m = Apply(tendency, m, in)
		if tendency.Tech < prev.Tech || tendency.Human < prev.Human || tendency.Philosophy < prev.Philosophy {
			t.Fatalf("tendency decreased: %+v -> %+v", prev, tendency)
		}
		if len(m) != 3 {
			t.Fatalf("relationship map lost an entry: %v", m)
		}
		prev = tendency
	}
}

func TestLevelBands(t *testing.T) {
	cases := []struct {
		affinity int
		want     string
	}{
		{25, "close"},
		{21, "close"},
		{20, "neutral"},
		{0, "neutral"},
		{-10, "neutral"},
		{-11, "strained"},
	}

	for _, tc := range cases {
		if got := Level(tc.affinity); got != tc.want {
			t.Fatalf("Level(%d): got %s want %s", tc.affinity, got, tc.want)
		}
	}
}
