package game

import (
	"testing"
	"time"
)

func TestPerfStatsAveragesAndOrder(t *testing.T) {
	p := NewPerfStats()
	p.Record("slow", 30*time.Millisecond)
	p.Record("slow", 10*time.Millisecond)
	p.Record("fast", 2*time.Millisecond)

	if avg := p.Avg("slow"); avg != 20*time.Millisecond {
		t.Errorf("Avg(slow) = %v, want 20ms", avg)
	}
	if avg := p.Avg("missing"); avg != 0 {
		t.Errorf("Avg of unknown pass = %v, want 0", avg)
	}
	if total := p.Total(); total != 22*time.Millisecond {
		t.Errorf("Total = %v, want 22ms", total)
	}

	names := p.SortedNames()
	if len(names) != 2 || names[0] != "slow" || names[1] != "fast" {
		t.Errorf("SortedNames = %v, want [slow fast]", names)
	}
}

func TestPerfStatsSampleWindowBounded(t *testing.T) {
	p := NewPerfStats()
	for i := 0; i < 500; i++ {
		p.Record("pass", time.Millisecond)
	}
	if len(p.samples["pass"]) != p.maxSamples {
		t.Errorf("sample count = %d, want capped at %d", len(p.samples["pass"]), p.maxSamples)
	}
}

func TestSimulationStepRecordsPassTimings(t *testing.T) {
	g := newTestGame(t, 1)
	g.simulationStep()

	for _, name := range []string{
		"players", "trail", "collect", "flying", "reposition", "pulse",
		"collision", "cascade", "react_anim", "merge", "merge_anim", "cleanup",
	} {
		if len(g.perf.samples[name]) == 0 {
			t.Errorf("pass %q has no recorded samples", name)
		}
	}
}
