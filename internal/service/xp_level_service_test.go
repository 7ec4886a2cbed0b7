package service

import (
	"testing"

	"habitflow_backend/internal/repository"
)

func TestGenerateLevelTable(t *testing.T) {
	table := GenerateLevelTable()

	if len(table) != MaxLevel+1 {
		t.Fatalf("table has %d rows, want %d", len(table), MaxLevel+1)
	}
	if table[0].Level != 0 || table[0].RequiredXP != 0 {
		t.Fatalf("level 0 should start at 0 xp, got %+v", table[0])
	}

	for i := 1; i < len(table); i++ {
		if table[i].Level != i {
			t.Fatalf("row %d has level %d", i, table[i].Level)
		}
		if table[i].RequiredXP <= table[i-1].RequiredXP {
			t.Fatalf("thresholds not strictly increasing at level %d: %d <= %d",
				i, table[i].RequiredXP, table[i-1].RequiredXP)
		}
	}

	// 前几级按 0.5 步长：L1=50, L2=150, L3=300
	if table[1].RequiredXP != 50 {
		t.Errorf("level 1 threshold = %d, want 50", table[1].RequiredXP)
	}
	if table[2].RequiredXP != 150 {
		t.Errorf("level 2 threshold = %d, want 150", table[2].RequiredXP)
	}
	if table[3].RequiredXP != 300 {
		t.Errorf("level 3 threshold = %d, want 300", table[3].RequiredXP)
	}
}

func TestSeedLevelsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewXpLevelService(repository.NewXpByLevelRepository(db), db)

	n, err := svc.SeedLevels()
	if err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if n != MaxLevel+1 {
		t.Fatalf("first seed wrote %d rows, want %d", n, MaxLevel+1)
	}

	n, err = svc.SeedLevels()
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if n != 0 {
		t.Fatalf("second seed wrote %d rows, want 0", n)
	}
}

func TestLevelFor(t *testing.T) {
	db := newTestDB(t)
	svc := NewXpLevelService(repository.NewXpByLevelRepository(db), db)
	if _, err := svc.SeedLevels(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	table := GenerateLevelTable()

	tests := []struct {
		name      string
		xp        int
		wantLevel int
	}{
		{"zero xp", 0, 0},
		{"just below level 1", 49, 0},
		{"exactly level 1", 50, 1},
		{"mid level 2", 200, 2},
		{"negative clamps to zero", -10, 0},
		{"beyond max threshold", table[MaxLevel].RequiredXP + 99999, MaxLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.LevelFor(tt.xp)
			if err != nil {
				t.Fatalf("LevelFor(%d): %v", tt.xp, err)
			}
			if got.Level != tt.wantLevel {
				t.Errorf("LevelFor(%d).Level = %d, want %d", tt.xp, got.Level, tt.wantLevel)
			}
		})
	}

	// 每一级的门槛经验正好落回该级
	for _, row := range table {
		got, err := svc.LevelFor(row.RequiredXP)
		if err != nil {
			t.Fatalf("LevelFor(%d): %v", row.RequiredXP, err)
		}
		if got.Level != row.Level {
			t.Errorf("LevelFor(threshold of %d) = %d, want %d", row.Level, got.Level, row.Level)
		}
	}
}

func TestLevelForProgressFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewXpLevelService(repository.NewXpByLevelRepository(db), db)
	if _, err := svc.SeedLevels(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// 60 xp 处于 L1(50) 与 L2(150) 之间
	got, err := svc.LevelFor(60)
	if err != nil {
		t.Fatalf("LevelFor: %v", err)
	}
	if got.Level != 1 {
		t.Fatalf("Level = %d, want 1", got.Level)
	}
	if got.ActualLevelXP != 10 {
		t.Errorf("ActualLevelXP = %d, want 10", got.ActualLevelXP)
	}
	if got.NextLevelXP != 100 {
		t.Errorf("NextLevelXP = %d, want 100", got.NextLevelXP)
	}

	// 满级没有下一级步长
	table := GenerateLevelTable()
	top, err := svc.LevelFor(table[MaxLevel].RequiredXP)
	if err != nil {
		t.Fatalf("LevelFor max: %v", err)
	}
	if top.Level != MaxLevel {
		t.Fatalf("Level = %d, want %d", top.Level, MaxLevel)
	}
	if top.NextLevelXP != 0 {
		t.Errorf("NextLevelXP at max level = %d, want 0", top.NextLevelXP)
	}
}
