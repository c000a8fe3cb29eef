package scroll

import "testing"

func fixedCfg(count, height, viewport, overscan int) Config {
	return Config{
		ItemCount:      count,
		ItemHeight:     height,
		ViewportHeight: viewport,
		Overscan:       overscan,
	}
}

func TestComputeFixedScenario(t *testing.T) {
	cfg := fixedCfg(1000, 40, 400, 3)
	w := Compute(cfg, 2000)
	if w.Start != 47 {
		t.Fatalf("Start = %d, want 47", w.Start)
	}
	if w.End != 63 {
		t.Fatalf("End = %d, want 63", w.End)
	}
	if w.OffsetY != 1880 {
		t.Fatalf("OffsetY = %d, want 1880", w.OffsetY)
	}
	if w.TotalHeight != 40000 {
		t.Fatalf("TotalHeight = %d, want 40000", w.TotalHeight)
	}
}

func TestComputeEmptyList(t *testing.T) {
	w := Compute(fixedCfg(0, 40, 400, 3), 1234)
	if w != (Window{}) {
		t.Fatalf("window = %+v, want zero", w)
	}
}

func TestComputeNegativeOffsetClamped(t *testing.T) {
	w := Compute(fixedCfg(100, 10, 50, 2), -500)
	if w.Start != 0 || w.OffsetY != 0 {
		t.Fatalf("Start = %d, OffsetY = %d, want 0, 0", w.Start, w.OffsetY)
	}

	heights := func(i int) int { return 10 + i }
	wv := Compute(Config{ItemCount: 100, HeightFor: heights, ViewportHeight: 50, Overscan: 2}, -500)
	if wv.Start != 0 || wv.OffsetY != 0 {
		t.Fatalf("variable Start = %d, OffsetY = %d, want 0, 0", wv.Start, wv.OffsetY)
	}
}

func TestComputeFixedTotalHeight(t *testing.T) {
	for _, count := range []int{1, 7, 250} {
		cfg := fixedCfg(count, 3, 20, 0)
		if got := Compute(cfg, 0).TotalHeight; got != count*3 {
			t.Fatalf("count %d: TotalHeight = %d, want %d", count, got, count*3)
		}
	}
}

func TestComputeRangeInvariant(t *testing.T) {
	cfg := fixedCfg(50, 4, 30, 3)
	for offset := -10; offset <= 250; offset += 7 {
		w := Compute(cfg, offset)
		if w.Start < 0 || w.Start > w.End || w.End > cfg.ItemCount {
			t.Fatalf("offset %d: invalid range [%d, %d)", offset, w.Start, w.End)
		}
	}
}

func TestComputeVariableAtZero(t *testing.T) {
	heights := func(i int) int { return 10 * (i + 1) }
	cfg := Config{ItemCount: 20, HeightFor: heights, ViewportHeight: 60, Overscan: 3}
	w := Compute(cfg, 0)
	if w.Start != 0 {
		t.Fatalf("Start = %d, want 0", w.Start)
	}
	if w.OffsetY != 0 {
		t.Fatalf("OffsetY = %d, want 0", w.OffsetY)
	}
}

func TestComputeVariableOffsetYExact(t *testing.T) {
	heights := func(i int) int { return 5 + i%7 }
	cfg := Config{ItemCount: 120, HeightFor: heights, ViewportHeight: 48, Overscan: 2}
	for offset := 0; offset <= 900; offset += 13 {
		w := Compute(cfg, offset)
		sum := 0
		for i := 0; i < w.Start; i++ {
			sum += heights(i)
		}
		if sum != w.OffsetY {
			t.Fatalf("offset %d: OffsetY = %d, cumulative = %d", offset, w.OffsetY, sum)
		}
		if w.Start < 0 || w.Start > w.End || w.End > cfg.ItemCount {
			t.Fatalf("offset %d: invalid range [%d, %d)", offset, w.Start, w.End)
		}
	}
}

func TestComputeFixedOffsetYExact(t *testing.T) {
	cfg := fixedCfg(80, 6, 36, 4)
	for offset := 0; offset <= 480; offset += 11 {
		w := Compute(cfg, offset)
		if w.OffsetY != w.Start*6 {
			t.Fatalf("offset %d: OffsetY = %d, want %d", offset, w.OffsetY, w.Start*6)
		}
	}
}

func TestComputeIdempotent(t *testing.T) {
	heights := func(i int) int { return 3 + i%5 }
	cfg := Config{ItemCount: 40, HeightFor: heights, ViewportHeight: 25, Overscan: 1}
	a := Compute(cfg, 77)
	b := Compute(cfg, 77)
	if a != b {
		t.Fatalf("repeat compute differs: %+v vs %+v", a, b)
	}
}

func TestComputeOffsetPastEnd(t *testing.T) {
	cfg := fixedCfg(10, 5, 20, 2)
	w := Compute(cfg, 10_000)
	if w.Start > w.End || w.End != cfg.ItemCount {
		t.Fatalf("window = %+v, want End clamped to %d", w, cfg.ItemCount)
	}
}

func TestOffsetOfIndex(t *testing.T) {
	cfg := fixedCfg(100, 8, 40, 0)
	if got := OffsetOfIndex(cfg, 12); got != 96 {
		t.Fatalf("fixed offset = %d, want 96", got)
	}
	heights := func(i int) int { return i + 1 }
	vcfg := Config{ItemCount: 10, HeightFor: heights, ViewportHeight: 10}
	// 1+2+3 = 6
	if got := OffsetOfIndex(vcfg, 3); got != 6 {
		t.Fatalf("variable offset = %d, want 6", got)
	}
	if got := OffsetOfIndex(vcfg, -4); got != 0 {
		t.Fatalf("negative index offset = %d, want 0", got)
	}
}

func TestTotalHeightVariable(t *testing.T) {
	heights := func(i int) int { return 2 }
	cfg := Config{ItemCount: 9, HeightFor: heights, ViewportHeight: 5}
	if got := TotalHeight(cfg); got != 18 {
		t.Fatalf("TotalHeight = %d, want 18", got)
	}
}
